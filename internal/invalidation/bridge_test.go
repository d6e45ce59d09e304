package invalidation

import (
	"context"
	"testing"
	"time"

	"stayease/internal/cache"
	"stayease/pkg/kafka"
	"stayease/pkg/logger"
	"stayease/pkg/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	msgs []kafka.Message
}

func (p *recordingProducer) Publish(_ context.Context, msg kafka.Message) error {
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func newTestBridge(t *testing.T, source string) (*Bridge, *cache.Store, *recordingProducer) {
	t.Helper()
	store := cache.NewStore(logger.Discard(), time.Minute, time.Hour)
	t.Cleanup(store.Stop)
	producer := &recordingProducer{}
	return &Bridge{
		producer: producer,
		store:    store,
		source:   source,
		metrics:  &kafka.Metrics{},
		log:      logger.Discard(),
	}, store, producer
}

func TestPublish_EncodesMutation(t *testing.T) {
	b, _, producer := newTestBridge(t, "agent-a")
	ctx := middleware.WithRequestID(context.Background(), "3f1c2b7e-0000-4000-8000-000000000001")

	err := b.Publish(ctx, cache.Mutation{Type: cache.BookingStatusChanged, BookingID: 42, PropertyID: 10, Status: "CONFIRMED"})
	require.NoError(t, err)

	require.Len(t, producer.msgs, 1)
	msg := producer.msgs[0]
	assert.Equal(t, "property-10", msg.Key)
	assert.Equal(t, "BOOKING_STATUS_CHANGED", msg.GetEventType())
	assert.Equal(t, "agent-a", msg.GetSource())
	assert.Equal(t, "3f1c2b7e-0000-4000-8000-000000000001", msg.GetCorrelationID())
	assert.JSONEq(t, `{"type":"BOOKING_STATUS_CHANGED","bookingId":42,"propertyId":10,"status":"CONFIRMED"}`, string(msg.Value))
}

func TestHandle_AppliesRemoteEvents(t *testing.T) {
	b, store, _ := newTestBridge(t, "agent-b")
	store.Set(cache.MyBookingsKey(0, 10), "stale")
	store.Set(cache.PropertyRoomsKey(10), "stale")

	msg, err := NewEvent(cache.Mutation{Type: cache.BookingCreated, BookingID: 1, PropertyID: 10}, "agent-a", "")
	require.NoError(t, err)

	require.NoError(t, b.Handle(context.Background(), msg))
	assert.Equal(t, 0, store.Len())
}

func TestHandle_SkipsOwnEventsAndSessionEnds(t *testing.T) {
	b, store, _ := newTestBridge(t, "agent-a")
	store.Set(cache.MyBookingsKey(0, 10), "fresh")

	own, err := NewEvent(cache.Mutation{Type: cache.BookingCancelled, BookingID: 1}, "agent-a", "")
	require.NoError(t, err)
	require.NoError(t, b.Handle(context.Background(), own))

	remoteLogout, err := NewEvent(cache.Mutation{Type: cache.SessionEnded}, "agent-c", "")
	require.NoError(t, err)
	require.NoError(t, b.Handle(context.Background(), remoteLogout))

	assert.Equal(t, 1, store.Len())
}

func TestHandle_UndecodableIsPermanent(t *testing.T) {
	b, _, _ := newTestBridge(t, "agent-a")

	err := b.Handle(context.Background(), kafka.Message{Value: []byte("{"), Headers: map[string]string{}})

	assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
}
