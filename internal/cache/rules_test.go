package cache

import (
	"testing"
	"time"

	"stayease/pkg/model"

	"github.com/stretchr/testify/assert"
)

func seed(s *Store) {
	for _, key := range []string{
		PropertyKey(10),
		PropertyKey(100),
		PropertyRoomsKey(10),
		PropertyRoomsKey(11),
		MyBookingsKey(0, 10),
		MyBookingsKey(1, 10),
		OwnerBookingsKey("", 0, 20),
		OwnerBookingsKey(model.BookingPending, 0, 20),
		OwnerPropertiesKey(0, 100),
		KeyOwnerDashboard,
		PropertySearchKey(model.PropertySearch{City: "Pune", Size: 10}),
		OwnerRoomsKey(10),
		KeyFeatured,
		KeyCities,
		KeyAmenities,
	} {
		s.Set(key, true)
	}
}

func present(s *Store, key string) bool {
	_, ok := s.Get(key)
	return ok
}

func TestInvalidate_BookingCreated(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	seed(s)

	s.Invalidate(Mutation{Type: BookingCreated, BookingID: 1, PropertyID: 10, RoomID: 5})

	assert.False(t, present(s, PropertyKey(10)))
	assert.False(t, present(s, PropertyRoomsKey(10)))
	assert.False(t, present(s, MyBookingsKey(1, 10)))
	assert.False(t, present(s, OwnerBookingsKey(model.BookingPending, 0, 20)))
	assert.False(t, present(s, KeyOwnerDashboard))
	assert.False(t, present(s, OwnerPropertiesKey(0, 100)))

	assert.True(t, present(s, PropertyKey(100)), "exact property key must not match by prefix")
	assert.True(t, present(s, PropertyRoomsKey(11)))
	assert.True(t, present(s, KeyCities))
	assert.True(t, present(s, KeyAmenities))
}

func TestInvalidate_CancelWithoutProperty(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	seed(s)

	s.Invalidate(Mutation{Type: BookingCancelled, BookingID: 3})

	assert.Equal(t, 2, s.Len())
	assert.True(t, present(s, KeyCities))
	assert.True(t, present(s, KeyAmenities))
}

func TestInvalidate_PropertyChanged(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	seed(s)

	s.Invalidate(Mutation{Type: PropertyChanged, PropertyID: 10})

	assert.False(t, present(s, PropertyKey(10)))
	assert.False(t, present(s, PropertyRoomsKey(10)))
	assert.False(t, present(s, OwnerRoomsKey(10)))
	assert.False(t, present(s, OwnerPropertiesKey(0, 100)))
	assert.False(t, present(s, PropertySearchKey(model.PropertySearch{City: "Pune", Size: 10})))
	assert.False(t, present(s, KeyFeatured))
	assert.False(t, present(s, KeyCities))
	assert.False(t, present(s, KeyOwnerDashboard))

	assert.True(t, present(s, PropertyKey(100)))
	assert.True(t, present(s, MyBookingsKey(0, 10)), "property writes leave booking lists alone")
	assert.True(t, present(s, KeyAmenities))
}

func TestInvalidate_RoomChangedWithoutProperty(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	seed(s)

	s.Invalidate(Mutation{Type: RoomChanged, RoomID: 5})

	assert.False(t, present(s, PropertyRoomsKey(10)))
	assert.False(t, present(s, PropertyRoomsKey(11)))
	assert.False(t, present(s, PropertyKey(100)))
	assert.False(t, present(s, OwnerRoomsKey(10)))
	assert.False(t, present(s, KeyFeatured))

	assert.True(t, present(s, KeyCities))
	assert.True(t, present(s, OwnerBookingsKey("", 0, 20)))
}

func TestInvalidate_SessionEnded(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	seed(s)

	assert.Equal(t, 15, s.Invalidate(Mutation{Type: SessionEnded}))
	assert.Equal(t, 0, s.Len())
}

func TestInvalidate_UnknownTypeKeepsEverything(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	seed(s)

	assert.Equal(t, 0, s.Invalidate(Mutation{Type: "PROPERTY_RENAMED"}))
	assert.Equal(t, 15, s.Len())
}

func TestOwnerBookingsKey(t *testing.T) {
	assert.Equal(t, "owner-bookings:ALL:0:20", OwnerBookingsKey("", 0, 20))
	assert.Equal(t, "owner-bookings:CONFIRMED:2:10", OwnerBookingsKey(model.BookingConfirmed, 2, 10))
}
