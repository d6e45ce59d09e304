package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"stayease/pkg/logger"
)

func LoggingProducerMiddleware(log *logger.Logger) ProducerMiddleware {
	return func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			log.Warn("Kafka publish failed", append(attrs, "error", err)...)
		} else {
			log.Debug("Kafka message published", attrs...)
		}
		return err
	}
}

func LoggingConsumerMiddleware(log *logger.Logger) ConsumerMiddleware {
	return func(ctx context.Context, msg Message, next MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			log.Warn("Kafka message processing failed", append(attrs, "error", err)...)
		} else {
			log.Debug("Kafka message processed", attrs...)
		}
		return err
	}
}

// Metrics counts publish and consume outcomes for one bridge.
type Metrics struct {
	published       atomic.Int64
	publishedFailed atomic.Int64
	consumed        atomic.Int64
	consumedFailed  atomic.Int64
}

type MetricsSnapshot struct {
	Published       int64 `json:"published"`
	PublishedFailed int64 `json:"publishedFailed"`
	Consumed        int64 `json:"consumed"`
	ConsumedFailed  int64 `json:"consumedFailed"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Published:       m.published.Load(),
		PublishedFailed: m.publishedFailed.Load(),
		Consumed:        m.consumed.Load(),
		ConsumedFailed:  m.consumedFailed.Load(),
	}
}

func (m *Metrics) ProducerMiddleware() ProducerMiddleware {
	return func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error {
		err := next(ctx, msg)
		if err != nil {
			m.publishedFailed.Add(1)
		} else {
			m.published.Add(1)
		}
		return err
	}
}

func (m *Metrics) ConsumerMiddleware() ConsumerMiddleware {
	return func(ctx context.Context, msg Message, next MessageHandler) error {
		err := next(ctx, msg)
		if err != nil {
			m.consumedFailed.Add(1)
		} else {
			m.consumed.Add(1)
		}
		return err
	}
}
