package availability

import (
	"testing"

	"stayease/pkg/model"

	"github.com/stretchr/testify/assert"
)

func roomWith(statuses ...model.BedStatus) *model.Room {
	room := &model.Room{ID: 5, PropertyID: 10, TotalBeds: len(statuses)}
	for i, s := range statuses {
		room.Beds = append(room.Beds, model.Bed{ID: int64(i + 1), BedNumber: string(rune('A' + i)), Status: s})
		if s == model.BedAvailable {
			room.AvailableBeds++
		}
	}
	return room
}

func TestOpenBeds_KeepsOrder(t *testing.T) {
	room := roomWith(model.BedAvailable, model.BedOccupied, model.BedAvailable)

	got := OpenBeds(room)

	ids := make([]int64, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestOpenBeds_ExcludesHeldAndUpkeep(t *testing.T) {
	room := roomWith(model.BedReserved, model.BedMaintenance, model.BedOccupied)

	assert.Empty(t, OpenBeds(room))
	assert.False(t, CanSubmit(room))
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name string
		room *model.Room
		want bool
	}{
		{"no room selected", nil, false},
		{"room without beds", &model.Room{ID: 1}, false},
		{"one open bed", roomWith(model.BedOccupied, model.BedAvailable), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanSubmit(tt.room))
		})
	}
}

func TestIsOpen(t *testing.T) {
	room := roomWith(model.BedAvailable, model.BedOccupied)
	assert.True(t, IsOpen(room, 1))
	assert.False(t, IsOpen(room, 2))
	assert.False(t, IsOpen(room, 99))
}

func TestFindRoom(t *testing.T) {
	rooms := []model.Room{{ID: 4}, {ID: 5}}
	assert.Equal(t, int64(5), FindRoom(rooms, 5).ID)
	assert.Nil(t, FindRoom(rooms, 6))
}

func TestDiverges(t *testing.T) {
	room := roomWith(model.BedAvailable, model.BedAvailable)
	assert.False(t, Diverges(room))

	room.AvailableBeds = 1
	assert.True(t, Diverges(room))

	assert.False(t, Diverges(&model.Room{AvailableBeds: 3}), "no embedded beds means nothing to compare")
}
