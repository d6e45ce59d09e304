package lifecycle

import (
	"testing"

	"stayease/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalOwnerTransitions(t *testing.T) {
	tests := []struct {
		status model.BookingStatus
		want   []model.BookingStatus
	}{
		{model.BookingPending, []model.BookingStatus{model.BookingConfirmed, model.BookingCancelled}},
		{model.BookingConfirmed, []model.BookingStatus{model.BookingCheckedIn, model.BookingCancelled}},
		{model.BookingCheckedIn, []model.BookingStatus{model.BookingCheckedOut}},
		{model.BookingCheckedOut, []model.BookingStatus{}},
		{model.BookingCancelled, []model.BookingStatus{}},
		{model.BookingStatus("APPROVED"), []model.BookingStatus{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := LegalOwnerTransitions(tt.status)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanSeekerCancel(t *testing.T) {
	want := map[model.BookingStatus]bool{
		model.BookingPending:    true,
		model.BookingConfirmed:  true,
		model.BookingCheckedIn:  false,
		model.BookingCheckedOut: false,
		model.BookingCancelled:  false,
	}
	for _, status := range model.BookingStatuses {
		assert.Equal(t, want[status], CanSeekerCancel(status), "status %s", status)
	}
	assert.False(t, CanSeekerCancel("UNKNOWN"))
}

func TestConfirmedNeverOffersPending(t *testing.T) {
	assert.NotContains(t, LegalOwnerTransitions(model.BookingConfirmed), model.BookingPending)
	assert.False(t, CanTransition(ActorOwner, model.BookingConfirmed, model.BookingPending))
	assert.True(t, CanTransition(ActorOwner, model.BookingPending, model.BookingConfirmed))
}

func TestSeekerHasNoOtherTransitions(t *testing.T) {
	for _, from := range model.BookingStatuses {
		for _, to := range model.BookingStatuses {
			if to == model.BookingCancelled {
				continue
			}
			assert.False(t, CanTransition(ActorSeeker, from, to), "%s -> %s", from, to)
		}
	}
}

func TestActions(t *testing.T) {
	owner := Actions(ActorOwner, model.BookingPending)
	assert.Equal(t, []Action{
		{Name: "CONFIRMED", Target: model.BookingConfirmed},
		{Name: "CANCELLED", Target: model.BookingCancelled},
	}, owner)

	assert.Equal(t, []Action{{Name: ActionCancel, Target: model.BookingCancelled}},
		Actions(ActorSeeker, model.BookingConfirmed))
	assert.Empty(t, Actions(ActorSeeker, model.BookingCheckedOut))
	assert.NotNil(t, Actions(ActorSeeker, model.BookingCheckedOut))
	assert.Empty(t, Actions(Actor("GUEST"), model.BookingPending))
}

func TestTerminalAndActive(t *testing.T) {
	assert.True(t, IsTerminal(model.BookingCheckedOut))
	assert.True(t, IsTerminal(model.BookingCancelled))
	assert.False(t, IsTerminal(model.BookingCheckedIn))
	assert.False(t, IsTerminal("BOGUS"))

	assert.True(t, IsActive(model.BookingCheckedIn))
	assert.False(t, IsActive(model.BookingCancelled))
}

func TestParseBookingStatus(t *testing.T) {
	got, err := ParseBookingStatus(" checked_in ")
	require.NoError(t, err)
	assert.Equal(t, model.BookingCheckedIn, got)

	_, err = ParseBookingStatus("approved")
	assert.Error(t, err)
}
