package cache

import (
	"stayease/pkg/model"
)

type MutationType string

const (
	BookingCreated       MutationType = "BOOKING_CREATED"
	BookingStatusChanged MutationType = "BOOKING_STATUS_CHANGED"
	BookingCancelled     MutationType = "BOOKING_CANCELLED"
	// PropertyChanged covers create, update, delete and the active toggle.
	PropertyChanged MutationType = "PROPERTY_CHANGED"
	// RoomChanged covers room writes, which add or remove beds.
	RoomChanged  MutationType = "ROOM_CHANGED"
	SessionEnded MutationType = "SESSION_ENDED"
)

// Mutation describes a successful write. PropertyID may be zero when the
// writer did not know it.
type Mutation struct {
	Type       MutationType        `json:"type"`
	BookingID  int64               `json:"bookingId,omitempty"`
	PropertyID int64               `json:"propertyId,omitempty"`
	RoomID     int64               `json:"roomId,omitempty"`
	Status     model.BookingStatus `json:"status,omitempty"`
}

// Rule selects cache entries by exact key or by key prefix.
type Rule struct {
	Key    string
	Prefix bool
}

func exact(key string) Rule  { return Rule{Key: key} }
func prefix(key string) Rule { return Rule{Key: key, Prefix: true} }

// Rules lists the entries a mutation makes stale. A nil result with a
// SessionEnded mutation means everything.
func Rules(m Mutation) []Rule {
	// Every write moves bed counts, which show up in these.
	counts := []Rule{
		exact(KeyOwnerDashboard),
		prefix(prefixOwnerProperties),
		prefix(prefixPropertySearch),
		exact(KeyFeatured),
	}

	switch m.Type {
	case SessionEnded:
		return nil
	case BookingCreated, BookingStatusChanged, BookingCancelled:
		rules := append(counts, prefix(prefixMyBookings), prefix(prefixOwnerBookings))
		return append(rules, propertyRules(m.PropertyID)...)
	case PropertyChanged:
		rules := append(counts, exact(KeyCities))
		return append(rules, propertyRules(m.PropertyID)...)
	case RoomChanged:
		return append(counts, propertyRules(m.PropertyID)...)
	default:
		return []Rule{}
	}
}

// propertyRules targets one property, or all of them when the id is unknown.
func propertyRules(propertyID int64) []Rule {
	if propertyID > 0 {
		return []Rule{
			exact(PropertyRoomsKey(propertyID)),
			exact(PropertyKey(propertyID)),
			exact(OwnerRoomsKey(propertyID)),
		}
	}
	return []Rule{
		prefix(prefixPropertyRooms),
		prefix(prefixProperty),
		prefix(prefixOwnerRooms),
	}
}

// Invalidate drops every entry the mutation makes stale and reports how many
// were removed.
func (s *Store) Invalidate(m Mutation) int {
	if m.Type == SessionEnded {
		removed := s.Clear()
		s.log.Debug("Cache cleared", "mutation", m.Type, "removed", removed)
		return removed
	}

	removed := 0
	for _, rule := range Rules(m) {
		if rule.Prefix {
			removed += s.DeletePrefix(rule.Key)
		} else if s.Delete(rule.Key) {
			removed++
		}
	}
	s.log.Debug("Cache invalidated",
		"mutation", m.Type,
		"booking_id", m.BookingID,
		"property_id", m.PropertyID,
		"removed", removed,
	)
	return removed
}
