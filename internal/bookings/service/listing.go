package service

import (
	"context"

	"stayease/internal/bookings/validator"
	"stayease/internal/cache"
	"stayease/internal/invalidation"
	"stayease/internal/session"
	"stayease/pkg/client"
	"stayease/pkg/config"
	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
)

// ListingService manages an owner's properties and rooms. Every write runs
// detached from the caller and invalidates what it touched.
type ListingService interface {
	CreateProperty(ctx context.Context, req *model.PropertyRequest) (*model.Property, error)
	UpdateProperty(ctx context.Context, id int64, req *model.PropertyRequest) (*model.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
	SetPropertyActive(ctx context.Context, id int64, active bool) error

	Rooms(ctx context.Context, propertyID int64) ([]model.Room, error)
	CreateRoom(ctx context.Context, propertyID int64, req *model.RoomRequest) (*model.Room, error)
	UpdateRoom(ctx context.Context, id int64, req *model.RoomRequest) (*model.Room, error)
	DeleteRoom(ctx context.Context, id int64) error
	SetRoomActive(ctx context.Context, id int64, active bool) error
}

type listingService struct {
	base
	validator *validator.ListingValidator
}

func NewListingService(
	c *client.Client,
	store *cache.Store,
	sess *session.Manager,
	publisher invalidation.Publisher,
	validator *validator.ListingValidator,
	cfg *config.Config,
) ListingService {
	return &listingService{
		base:      newBase(c, store, sess, publisher, cfg, "listings"),
		validator: validator,
	}
}

func (s *listingService) CreateProperty(ctx context.Context, req *model.PropertyRequest) (*model.Property, error) {
	if _, err := s.requireOwner(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateProperty(req); err != nil {
		s.log.Warn("Property validation failed", "error", err)
		return nil, validationError("Invalid property", err)
	}

	detached := context.WithoutCancel(ctx)
	property, err := s.client.Properties.Create(detached, req)
	if err != nil {
		s.log.Warn("Failed to create property", "name", req.Name, "error", err)
		return nil, err
	}

	s.mutated(detached, cache.Mutation{Type: cache.PropertyChanged, PropertyID: property.ID})
	s.log.Info("Property created successfully", "id", property.ID, "city", property.City)
	return property, nil
}

func (s *listingService) UpdateProperty(ctx context.Context, id int64, req *model.PropertyRequest) (*model.Property, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("Invalid property ID")
	}
	if _, err := s.requireOwner(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateProperty(req); err != nil {
		s.log.Warn("Property validation failed", "id", id, "error", err)
		return nil, validationError("Invalid property", err)
	}

	detached := context.WithoutCancel(ctx)
	property, err := s.client.Properties.Update(detached, id, req)
	if err != nil {
		s.log.Warn("Failed to update property", "id", id, "error", err)
		return nil, err
	}

	s.mutated(detached, cache.Mutation{Type: cache.PropertyChanged, PropertyID: id})
	s.log.Info("Property updated successfully", "id", id)
	return property, nil
}

// DeleteProperty deactivates the listing; the server keeps its history.
func (s *listingService) DeleteProperty(ctx context.Context, id int64) error {
	return s.propertyWrite(ctx, id, "delete", func(ctx context.Context) error {
		return s.client.Properties.Delete(ctx, id)
	})
}

func (s *listingService) SetPropertyActive(ctx context.Context, id int64, active bool) error {
	return s.propertyWrite(ctx, id, "toggle", func(ctx context.Context) error {
		return s.client.Properties.SetActive(ctx, id, active)
	})
}

func (s *listingService) propertyWrite(ctx context.Context, id int64, op string, fn func(context.Context) error) error {
	if id <= 0 {
		return apperrors.InvalidInput("Invalid property ID")
	}
	if _, err := s.requireOwner(); err != nil {
		return err
	}

	detached := context.WithoutCancel(ctx)
	if err := fn(detached); err != nil {
		s.log.Warn("Property write failed", "op", op, "id", id, "error", err)
		return err
	}
	s.mutated(detached, cache.Mutation{Type: cache.PropertyChanged, PropertyID: id})
	return nil
}

// Rooms lists every room of an owned property, inactive ones included.
func (s *listingService) Rooms(ctx context.Context, propertyID int64) ([]model.Room, error) {
	if propertyID <= 0 {
		return nil, apperrors.InvalidInput("Invalid property ID")
	}
	if _, err := s.requireOwner(); err != nil {
		return nil, err
	}
	return cache.GetOrLoad(ctx, s.store, cache.OwnerRoomsKey(propertyID), func(ctx context.Context) ([]model.Room, error) {
		return s.client.Rooms.List(ctx, propertyID)
	})
}

func (s *listingService) CreateRoom(ctx context.Context, propertyID int64, req *model.RoomRequest) (*model.Room, error) {
	if propertyID <= 0 {
		return nil, apperrors.InvalidInput("Invalid property ID")
	}
	if _, err := s.requireOwner(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRoom(req); err != nil {
		s.log.Warn("Room validation failed", "property_id", propertyID, "error", err)
		return nil, validationError("Invalid room", err)
	}

	detached := context.WithoutCancel(ctx)
	room, err := s.client.Rooms.Create(detached, propertyID, req)
	if err != nil {
		s.log.Warn("Failed to create room", "property_id", propertyID, "room_number", req.RoomNumber, "error", err)
		return nil, err
	}

	s.mutated(detached, cache.Mutation{Type: cache.RoomChanged, PropertyID: propertyID, RoomID: room.ID})
	s.log.Info("Room created successfully", "id", room.ID, "property_id", propertyID, "beds", room.TotalBeds)
	return room, nil
}

// UpdateRoom can grow the room's beds but never shrinks them.
func (s *listingService) UpdateRoom(ctx context.Context, id int64, req *model.RoomRequest) (*model.Room, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("Invalid room ID")
	}
	if _, err := s.requireOwner(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRoom(req); err != nil {
		s.log.Warn("Room validation failed", "id", id, "error", err)
		return nil, validationError("Invalid room", err)
	}

	detached := context.WithoutCancel(ctx)
	room, err := s.client.Rooms.Update(detached, id, req)
	if err != nil {
		s.log.Warn("Failed to update room", "id", id, "error", err)
		return nil, err
	}

	s.mutated(detached, cache.Mutation{Type: cache.RoomChanged, PropertyID: room.PropertyID, RoomID: id})
	s.log.Info("Room updated successfully", "id", id, "property_id", room.PropertyID, "beds", room.TotalBeds)
	return room, nil
}

// DeleteRoom is refused upstream while any bed is occupied.
func (s *listingService) DeleteRoom(ctx context.Context, id int64) error {
	return s.roomWrite(ctx, id, "delete", func(ctx context.Context) error {
		return s.client.Rooms.Delete(ctx, id)
	})
}

func (s *listingService) SetRoomActive(ctx context.Context, id int64, active bool) error {
	return s.roomWrite(ctx, id, "toggle", func(ctx context.Context) error {
		return s.client.Rooms.SetActive(ctx, id, active)
	})
}

// roomWrite publishes without a property id since the server does not return
// the room; every property's room entries are dropped.
func (s *listingService) roomWrite(ctx context.Context, id int64, op string, fn func(context.Context) error) error {
	if id <= 0 {
		return apperrors.InvalidInput("Invalid room ID")
	}
	if _, err := s.requireOwner(); err != nil {
		return err
	}

	detached := context.WithoutCancel(ctx)
	if err := fn(detached); err != nil {
		s.log.Warn("Room write failed", "op", op, "id", id, "error", err)
		return err
	}
	s.mutated(detached, cache.Mutation{Type: cache.RoomChanged, RoomID: id})
	return nil
}
