package service

import (
	"context"
	"encoding/json"

	"stayease/internal/bookings/availability"
	bookingserrors "stayease/internal/bookings/errors"
	"stayease/internal/bookings/lifecycle"
	"stayease/internal/bookings/validator"
	"stayease/internal/cache"
	"stayease/internal/invalidation"
	"stayease/internal/session"
	"stayease/pkg/client"
	"stayease/pkg/config"
	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
)

const (
	actionCancel       = "Cancel booking"
	actionUpdateStatus = "Update booking status"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*BookingView, error)
	Get(ctx context.Context, id int64) (*BookingView, error)
	ListMine(ctx context.Context, page, size int) (*model.Page[BookingView], error)
	Cancel(ctx context.Context, id int64) error
	ListOwner(ctx context.Context, filter model.BookingFilter) (*model.Page[BookingView], error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*BookingView, error)
}

type bookingService struct {
	base
	validator *validator.BookingValidator
	guard     *actionGuard
}

func NewBookingService(
	c *client.Client,
	store *cache.Store,
	sess *session.Manager,
	publisher invalidation.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		base:      newBase(c, store, sess, publisher, cfg, "bookings"),
		validator: validator,
		guard:     newActionGuard(),
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*BookingView, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}

	s.validator.Normalize(req)
	if err := s.validator.Validate(req); err != nil {
		s.log.Warn("Booking validation failed", "error", err)
		return nil, validationError("Invalid booking request", err)
	}

	rooms, err := s.rooms(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if room := availability.FindRoom(rooms, req.RoomID); room != nil && !availability.CanSubmit(room) {
		return nil, apperrors.SubmitDisabled(bookingserrors.ErrNoOpenBeds.Error())
	}
	if err := s.validator.ValidateForProperty(req, nil, rooms); err != nil {
		return nil, validationError("Invalid booking request", err)
	}

	// Identical requests are issued at most once, and never aborted once issued.
	detached := context.WithoutCancel(ctx)
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.Internal("Failed to encode booking request", err)
	}
	v, err := s.guard.collapse("create:"+string(payload), func() (any, error) {
		return s.client.Bookings.Create(detached, req)
	})
	if err != nil {
		s.log.Warn("Failed to create booking",
			"property_id", req.PropertyID,
			"room_id", req.RoomID,
			"bed_id", req.BedID,
			"error", err,
		)
		if apperrors.HasCode(err, apperrors.CodeConflict) {
			s.store.Delete(cache.PropertyRoomsKey(req.PropertyID))
			s.store.Delete(cache.PropertyKey(req.PropertyID))
		}
		return nil, err
	}

	booking := v.(*model.Booking)
	s.mutated(detached, cache.Mutation{
		Type:       cache.BookingCreated,
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		RoomID:     booking.RoomID,
		Status:     booking.Status,
	})

	s.log.Info("Booking created successfully",
		"id", booking.ID,
		"reference", booking.BookingReference,
		"property_id", booking.PropertyID,
		"room_id", booking.RoomID,
		"bed_id", booking.BedID,
	)
	view := newBookingView(*booking, lifecycle.ActorSeeker)
	return &view, nil
}

func (s *bookingService) Get(ctx context.Context, id int64) (*BookingView, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput(bookingserrors.ErrInvalidID.Error())
	}
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	booking, err := s.client.Bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	actor := lifecycle.ActorSeeker
	if booking.UserID != user.ID && user.Role != model.RoleUser {
		actor = lifecycle.ActorOwner
	}
	view := newBookingView(*booking, actor)
	return &view, nil
}

func (s *bookingService) ListMine(ctx context.Context, page, size int) (*model.Page[BookingView], error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	page, size = s.normalizePage(page, size)

	bookings, err := cache.GetOrLoad(ctx, s.store, cache.MyBookingsKey(page, size), func(ctx context.Context) (*model.Page[model.Booking], error) {
		return s.client.Bookings.ListMine(ctx, page, size)
	})
	if err != nil {
		s.log.Error("Failed to list bookings", "page", page, "size", size, "error", err)
		return nil, err
	}
	return newBookingPage(bookings, lifecycle.ActorSeeker), nil
}

// Cancel forwards the seeker's cancellation. The server decides whether the
// booking can still be cancelled; a refusal comes back as a conflict.
func (s *bookingService) Cancel(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput(bookingserrors.ErrInvalidID.Error())
	}
	if _, err := s.requireUser(); err != nil {
		return err
	}

	detached := context.WithoutCancel(ctx)
	_, err := s.guard.do(id, actionCancel, func() (any, error) {
		return nil, s.client.Bookings.Cancel(detached, id)
	})
	if err != nil {
		s.log.Warn("Failed to cancel booking", "id", id, "error", err)
		return err
	}

	s.mutated(detached, cache.Mutation{
		Type:      cache.BookingCancelled,
		BookingID: id,
		Status:    model.BookingCancelled,
	})
	s.log.Info("Booking cancelled successfully", "id", id)
	return nil
}

func (s *bookingService) ListOwner(ctx context.Context, filter model.BookingFilter) (*model.Page[BookingView], error) {
	if _, err := s.requireOwner(); err != nil {
		return nil, err
	}
	if filter.Status != "" && !lifecycle.IsKnown(filter.Status) {
		return nil, apperrors.InvalidInput(bookingserrors.ErrInvalidStatus.Error())
	}
	filter.Page, filter.Size = s.normalizePage(filter.Page, filter.Size)

	bookings, err := cache.GetOrLoad(ctx, s.store, cache.OwnerBookingsKey(filter.Status, filter.Page, filter.Size), func(ctx context.Context) (*model.Page[model.Booking], error) {
		return s.client.Bookings.ListOwner(ctx, filter)
	})
	if err != nil {
		s.log.Error("Failed to list owner bookings", "status", filter.Status, "error", err)
		return nil, err
	}
	return newBookingPage(bookings, lifecycle.ActorOwner), nil
}

// UpdateStatus forwards an owner transition. It is not checked against the
// locally known status, which may be stale; the server decides.
func (s *bookingService) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*BookingView, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput(bookingserrors.ErrInvalidID.Error())
	}
	if _, err := s.requireOwner(); err != nil {
		return nil, err
	}
	if !lifecycle.IsKnown(status) {
		return nil, apperrors.InvalidInput(bookingserrors.ErrInvalidStatus.Error())
	}

	detached := context.WithoutCancel(ctx)
	v, err := s.guard.do(id, actionUpdateStatus+" to "+string(status), func() (any, error) {
		return s.client.Bookings.UpdateStatus(detached, id, status)
	})
	if err != nil {
		s.log.Warn("Failed to update booking status", "id", id, "status", status, "error", err)
		return nil, err
	}

	booking := v.(*model.Booking)
	s.mutated(detached, cache.Mutation{
		Type:       cache.BookingStatusChanged,
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		RoomID:     booking.RoomID,
		Status:     booking.Status,
	})

	s.log.Info("Booking status updated", "id", id, "status", booking.Status)
	view := newBookingView(*booking, lifecycle.ActorOwner)
	return &view, nil
}
