package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "stayease/internal/bookings/errors"
	"stayease/internal/bookings/validator"
	"stayease/internal/cache"
	"stayease/internal/invalidation"
	"stayease/internal/session"
	"stayease/pkg/client"
	"stayease/pkg/config"
	apperrors "stayease/pkg/errors"
	"stayease/pkg/logger"
	"stayease/pkg/model"
	"stayease/pkg/sanitizer"
)

// base carries what every service shares: the upstream client, the query
// cache, the signed-in session and the invalidation publisher.
type base struct {
	client    *client.Client
	store     *cache.Store
	session   *session.Manager
	publisher invalidation.Publisher
	cfg       *config.Config
	log       *logger.Logger
}

func newBase(c *client.Client, store *cache.Store, sess *session.Manager, publisher invalidation.Publisher, cfg *config.Config, component string) base {
	if publisher == nil {
		publisher = invalidation.Nop{}
	}
	return base{
		client:    c,
		store:     store,
		session:   sess,
		publisher: publisher,
		cfg:       cfg,
		log:       cfg.Log.Component(component),
	}
}

func (b *base) requireUser() (*model.User, error) {
	user := b.session.User()
	if user == nil {
		return nil, apperrors.Unauthorized(bookingserrors.ErrNotSignedIn.Error())
	}
	return user, nil
}

func (b *base) requireOwner() (*model.User, error) {
	user, err := b.requireUser()
	if err != nil {
		return nil, err
	}
	if role := b.session.Role(); role != model.RoleOwner && role != model.RoleAdmin {
		return nil, apperrors.Forbidden(bookingserrors.ErrOwnerOnly.Error())
	}
	return user, nil
}

func (b *base) normalizePage(page, size int) (int, int) {
	return sanitizer.NormalizePage(page, size, b.cfg.DefaultPageSize, b.cfg.MaxPageSize)
}

func (b *base) property(ctx context.Context, id int64) (*model.Property, error) {
	return cache.GetOrLoad(ctx, b.store, cache.PropertyKey(id), func(ctx context.Context) (*model.Property, error) {
		return b.client.Properties.Get(ctx, id)
	})
}

// rooms returns the property's rooms with beds embedded. The slice is shared
// with the cache and must not be modified.
func (b *base) rooms(ctx context.Context, propertyID int64) ([]model.Room, error) {
	return cache.GetOrLoad(ctx, b.store, cache.PropertyRoomsKey(propertyID), func(ctx context.Context) ([]model.Room, error) {
		return b.client.Properties.Rooms(ctx, propertyID)
	})
}

// mutated drops every cached query the mutation made stale and tells other
// agents about it. Publishing is bounded by the Kafka publish timeout, and
// failures are logged, never returned.
func (b *base) mutated(ctx context.Context, m cache.Mutation) {
	n := b.store.Invalidate(m)
	b.log.Debug("Invalidated cached queries", "type", m.Type, "booking_id", m.BookingID, "entries", n)

	ctx, cancel := context.WithTimeout(ctx, b.publishTimeout())
	defer cancel()
	if err := b.publisher.Publish(ctx, m); err != nil {
		b.log.Warn("Failed to publish cache invalidation", "type", m.Type, "booking_id", m.BookingID, "error", err)
	}
}

func (b *base) publishTimeout() time.Duration {
	if b.cfg.Kafka.PublishTimeout > 0 {
		return b.cfg.Kafka.PublishTimeout
	}
	return config.DefaultKafkaPublishTimeout
}

func validationError(message string, err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return apperrors.Validation(message, errs.Details())
	}
	return apperrors.Internal("Failed to validate request", err)
}
