// Package invalidation shares cache invalidations between agent instances
// over Kafka, so a seeker's agent drops its cached bookings as soon as an
// owner's agent changes one.
package invalidation

import (
	"context"
	"fmt"
	"strconv"

	"stayease/internal/cache"
	"stayease/pkg/config"
	"stayease/pkg/kafka"
	"stayease/pkg/logger"
	"stayease/pkg/middleware"
)

const schemaVersion = "1"

// Publisher announces a successful mutation to other agents.
type Publisher interface {
	Publish(ctx context.Context, m cache.Mutation) error
}

// Nop is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, cache.Mutation) error { return nil }

type publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type consumer interface {
	Start(ctx context.Context) error
	Close() error
}

type Bridge struct {
	producer publisher
	consumer consumer
	store    *cache.Store
	source   string
	metrics  *kafka.Metrics
	log      *logger.Logger
}

// NewBridge wires a producer and a consumer on the invalidation topic.
// source identifies this agent instance so its own events are ignored.
func NewBridge(cfg config.KafkaConfig, store *cache.Store, source string, log *logger.Logger) (*Bridge, error) {
	b := &Bridge{
		store:   store,
		source:  source,
		metrics: &kafka.Metrics{},
		log:     log,
	}

	producer, err := kafka.NewProducer(cfg, cfg.InvalidationTopic, log)
	if err != nil {
		return nil, fmt.Errorf("create invalidation producer: %w", err)
	}
	producer.Use(b.metrics.ProducerMiddleware())
	producer.Use(kafka.LoggingProducerMiddleware(log))

	consumer, err := kafka.NewConsumer(cfg, cfg.InvalidationTopic, cfg.GroupID, b.Handle, log)
	if err != nil {
		_ = producer.Close()
		return nil, fmt.Errorf("create invalidation consumer: %w", err)
	}
	consumer.Use(b.metrics.ConsumerMiddleware())
	consumer.Use(kafka.LoggingConsumerMiddleware(log))

	b.producer = producer
	b.consumer = consumer
	return b, nil
}

func (b *Bridge) Publish(ctx context.Context, m cache.Mutation) error {
	msg, err := NewEvent(m, b.source, middleware.RequestIDFromContext(ctx))
	if err != nil {
		return err
	}
	return b.producer.Publish(ctx, msg)
}

// NewEvent encodes a mutation as an invalidation message.
func NewEvent(m cache.Mutation, source, correlationID string) (kafka.Message, error) {
	return kafka.NewMessage().
		WithKey(eventKey(m)).
		WithValue(m).
		WithEventType(string(m.Type)).
		WithSource(source).
		WithCorrelationID(correlationID).
		WithSchemaVersion(schemaVersion).
		Build()
}

// Keyed by property so every event about one property lands on one partition.
func eventKey(m cache.Mutation) string {
	switch {
	case m.PropertyID > 0:
		return "property-" + strconv.FormatInt(m.PropertyID, 10)
	case m.BookingID > 0:
		return "booking-" + strconv.FormatInt(m.BookingID, 10)
	default:
		return string(m.Type)
	}
}

// Handle applies an event from another agent to the local cache.
func (b *Bridge) Handle(_ context.Context, msg kafka.Message) error {
	if msg.GetSource() == b.source {
		return nil
	}

	var m cache.Mutation
	if err := msg.DecodeValue(&m); err != nil {
		return kafka.NewPermanentError("decode invalidation event", err)
	}
	if m.Type == "" {
		m.Type = cache.MutationType(msg.GetEventType())
	}
	// A session ending elsewhere says nothing about this agent's data.
	if m.Type == cache.SessionEnded {
		return nil
	}

	removed := b.store.Invalidate(m)
	b.log.Debug("Applied remote invalidation",
		"event_id", msg.GetEventID(),
		"source", msg.GetSource(),
		"mutation", m.Type,
		"removed", removed,
	)
	return nil
}

// Run consumes until ctx is done or the bridge is closed.
func (b *Bridge) Run(ctx context.Context) error {
	return b.consumer.Start(ctx)
}

func (b *Bridge) Metrics() kafka.MetricsSnapshot {
	return b.metrics.Snapshot()
}

func (b *Bridge) Close() error {
	consumerErr := b.consumer.Close()
	producerErr := b.producer.Close()
	if consumerErr != nil {
		return consumerErr
	}
	return producerErr
}
