package service

import (
	"context"

	"stayease/internal/bookings/availability"
	"stayease/internal/cache"
	"stayease/internal/invalidation"
	"stayease/internal/session"
	"stayease/pkg/client"
	"stayease/pkg/config"
	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
	"stayease/pkg/sanitizer"

	"golang.org/x/sync/errgroup"
)

type PropertyService interface {
	BookingForm(ctx context.Context, propertyID, roomID int64) (*BookingForm, error)
	Search(ctx context.Context, search model.PropertySearch) (*model.Page[model.Property], error)
	OwnerProperties(ctx context.Context, page, size int) (*model.Page[model.Property], error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	Featured(ctx context.Context) ([]model.Property, error)
	Cities(ctx context.Context) ([]string, error)
	Amenities(ctx context.Context) ([]model.Amenity, error)
}

type propertyService struct {
	base
}

func NewPropertyService(
	c *client.Client,
	store *cache.Store,
	sess *session.Manager,
	publisher invalidation.Publisher,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		base: newBase(c, store, sess, publisher, cfg, "properties"),
	}
}

// BookingForm loads the property and its rooms concurrently. With a roomID it
// also projects the open beds of that room and whether submit is enabled.
func (s *propertyService) BookingForm(ctx context.Context, propertyID, roomID int64) (*BookingForm, error) {
	if propertyID <= 0 {
		return nil, apperrors.InvalidInput("Invalid property ID")
	}

	var (
		property *model.Property
		rooms    []model.Room
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		property, err = s.property(gctx, propertyID)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = s.rooms(gctx, propertyID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to load booking form", "property_id", propertyID, "error", err)
		return nil, err
	}

	s.checkDivergence(propertyID, rooms)

	form := &BookingForm{
		Property: *property,
		Rooms:    rooms,
		OpenBeds: []model.Bed{},
	}
	if roomID == 0 {
		return form, nil
	}

	room := availability.FindRoom(rooms, roomID)
	if room == nil {
		return nil, apperrors.NotFound("Room")
	}
	form.SelectedRoom = room
	form.OpenBeds = availability.OpenBeds(room)
	form.SubmitEnabled = availability.CanSubmit(room)
	return form, nil
}

// checkDivergence drops the cached rooms when a room's count disagrees with
// its beds, so the next read asks the server again.
func (s *propertyService) checkDivergence(propertyID int64, rooms []model.Room) {
	diverged := false
	for i := range rooms {
		if availability.Diverges(&rooms[i]) {
			s.log.Warn("Room available count disagrees with its beds",
				"property_id", propertyID,
				"room_id", rooms[i].ID,
				"available_beds", rooms[i].AvailableBeds,
				"open_beds", len(availability.OpenBeds(&rooms[i])),
			)
			diverged = true
		}
	}
	if diverged {
		s.store.Delete(cache.PropertyRoomsKey(propertyID))
	}
}

func (s *propertyService) Search(ctx context.Context, search model.PropertySearch) (*model.Page[model.Property], error) {
	if search.MinRent < 0 || search.MaxRent < 0 || search.AvailableBeds < 0 {
		return nil, apperrors.InvalidInput("Search filters cannot be negative")
	}
	if search.MaxRent > 0 && search.MinRent > search.MaxRent {
		return nil, apperrors.InvalidInput("minRent cannot exceed maxRent")
	}
	search.City = sanitizer.NormalizeCity(search.City)
	search.Page, search.Size = s.normalizePage(search.Page, search.Size)

	return cache.GetOrLoad(ctx, s.store, cache.PropertySearchKey(search), func(ctx context.Context) (*model.Page[model.Property], error) {
		return s.client.Properties.Search(ctx, search)
	})
}

func (s *propertyService) Featured(ctx context.Context) ([]model.Property, error) {
	return cache.GetOrLoad(ctx, s.store, cache.KeyFeatured, s.client.Properties.Featured)
}

func (s *propertyService) Cities(ctx context.Context) ([]string, error) {
	return cache.GetOrLoad(ctx, s.store, cache.KeyCities, s.client.Properties.Cities)
}

// Amenities is a catalogue lookup; no mutation in this agent changes it.
func (s *propertyService) Amenities(ctx context.Context) ([]model.Amenity, error) {
	return cache.GetOrLoad(ctx, s.store, cache.KeyAmenities, s.client.Properties.Amenities)
}

func (s *propertyService) OwnerProperties(ctx context.Context, page, size int) (*model.Page[model.Property], error) {
	if _, err := s.requireOwner(); err != nil {
		return nil, err
	}
	page, size = s.normalizePage(page, size)

	return cache.GetOrLoad(ctx, s.store, cache.OwnerPropertiesKey(page, size), func(ctx context.Context) (*model.Page[model.Property], error) {
		return s.client.Properties.OwnerProperties(ctx, page, size)
	})
}

func (s *propertyService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if _, err := s.requireOwner(); err != nil {
		return nil, err
	}
	return cache.GetOrLoad(ctx, s.store, cache.KeyOwnerDashboard, s.loadDashboard)
}

// loadDashboard reads the owner's properties and one count per booking
// status concurrently.
func (s *propertyService) loadDashboard(ctx context.Context) (*Dashboard, error) {
	var properties *model.Page[model.Property]
	counts := make([]int64, len(model.BookingStatuses))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		properties, err = s.client.Properties.OwnerProperties(gctx, 0, s.cfg.MaxPageSize)
		return err
	})
	for i, status := range model.BookingStatuses {
		g.Go(func() error {
			page, err := s.client.Bookings.ListOwner(gctx, model.BookingFilter{Status: status, Size: 1})
			if err != nil {
				return err
			}
			counts[i] = page.TotalElements
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to load owner dashboard", "error", err)
		return nil, err
	}

	dashboard := &Dashboard{
		TotalProperties: properties.TotalElements,
		Pipeline:        make(map[model.BookingStatus]int64, len(counts)),
	}
	for _, p := range properties.Content {
		dashboard.TotalBeds += p.TotalBeds
		dashboard.AvailableBeds += p.AvailableBeds
	}
	for i, status := range model.BookingStatuses {
		dashboard.Pipeline[status] = counts[i]
	}
	dashboard.ActiveBookings = dashboard.Pipeline[model.BookingPending] + dashboard.Pipeline[model.BookingConfirmed]
	return dashboard, nil
}
