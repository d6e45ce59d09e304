package availability

import (
	"stayease/pkg/model"
)

// OpenBeds returns the beds of room that may be the target of a new booking,
// in their original order. It is the only legal selection domain for a bed.
func OpenBeds(room *model.Room) []model.Bed {
	beds := []model.Bed{}
	if room == nil {
		return beds
	}
	for _, bed := range room.Beds {
		if bed.Status == model.BedAvailable {
			beds = append(beds, bed)
		}
	}
	return beds
}

// CanSubmit reports whether a booking request may be submitted for room.
// A missing room or a room with no open beds disables submission.
func CanSubmit(room *model.Room) bool {
	return len(OpenBeds(room)) > 0
}

func IsOpen(room *model.Room, bedID int64) bool {
	for _, bed := range OpenBeds(room) {
		if bed.ID == bedID {
			return true
		}
	}
	return false
}

func FindRoom(rooms []model.Room, roomID int64) *model.Room {
	for i := range rooms {
		if rooms[i].ID == roomID {
			return &rooms[i]
		}
	}
	return nil
}

// Diverges reports whether the server aggregate count disagrees with the
// embedded bed list. Only meaningful when the bed list was returned.
func Diverges(room *model.Room) bool {
	if room == nil || room.Beds == nil {
		return false
	}
	return room.AvailableBeds != len(OpenBeds(room))
}
