package cache

import (
	"fmt"
	"net/url"
	"strconv"

	"stayease/pkg/model"
)

const (
	prefixProperty        = "property:"
	prefixPropertyRooms   = "property-rooms:"
	prefixMyBookings      = "my-bookings:"
	prefixOwnerBookings   = "owner-bookings:"
	prefixOwnerProperties = "owner-properties:"
	prefixPropertySearch  = "property-search:"
	prefixOwnerRooms      = "owner-rooms:"

	KeyOwnerDashboard = "owner-dashboard"
	KeyFeatured       = "featured-properties"
	KeyCities         = "property-cities"
	KeyAmenities      = "amenities"
)

func PropertyKey(id int64) string {
	return prefixProperty + strconv.FormatInt(id, 10)
}

func PropertyRoomsKey(propertyID int64) string {
	return prefixPropertyRooms + strconv.FormatInt(propertyID, 10)
}

func OwnerRoomsKey(propertyID int64) string {
	return prefixOwnerRooms + strconv.FormatInt(propertyID, 10)
}

func MyBookingsKey(page, size int) string {
	return fmt.Sprintf("%s%d:%d", prefixMyBookings, page, size)
}

// OwnerBookingsKey uses "ALL" for an empty status filter.
func OwnerBookingsKey(status model.BookingStatus, page, size int) string {
	if status == "" {
		status = "ALL"
	}
	return fmt.Sprintf("%s%s:%d:%d", prefixOwnerBookings, status, page, size)
}

func OwnerPropertiesKey(page, size int) string {
	return fmt.Sprintf("%s%d:%d", prefixOwnerProperties, page, size)
}

func PropertySearchKey(search model.PropertySearch) string {
	q := url.Values{}
	q.Set("city", search.City)
	q.Set("type", string(search.PropertyType))
	q.Set("gender", string(search.GenderPreference))
	q.Set("min", strconv.FormatFloat(search.MinRent, 'f', -1, 64))
	q.Set("max", strconv.FormatFloat(search.MaxRent, 'f', -1, 64))
	q.Set("beds", strconv.Itoa(search.AvailableBeds))
	q.Set("page", strconv.Itoa(search.Page))
	q.Set("size", strconv.Itoa(search.Size))
	return prefixPropertySearch + q.Encode()
}
