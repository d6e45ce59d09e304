// Package lifecycle holds the booking status state machine. Owner actions and
// seeker cancellation are both answered from the single transition table below.
package lifecycle

import (
	"fmt"
	"slices"
	"strings"

	"stayease/pkg/model"
)

type Actor string

const (
	ActorOwner  Actor = "OWNER"
	ActorSeeker Actor = "SEEKER"
)

// ActionCancel is the only action a seeker can take on a booking.
const ActionCancel = "CANCEL"

type transition struct {
	to     model.BookingStatus
	actors []Actor
}

// Row order is the order actions are offered in.
var table = map[model.BookingStatus][]transition{
	model.BookingPending: {
		{to: model.BookingConfirmed, actors: []Actor{ActorOwner}},
		{to: model.BookingCancelled, actors: []Actor{ActorOwner, ActorSeeker}},
	},
	model.BookingConfirmed: {
		{to: model.BookingCheckedIn, actors: []Actor{ActorOwner}},
		{to: model.BookingCancelled, actors: []Actor{ActorOwner, ActorSeeker}},
	},
	model.BookingCheckedIn: {
		{to: model.BookingCheckedOut, actors: []Actor{ActorOwner}},
	},
	model.BookingCheckedOut: nil,
	model.BookingCancelled:  nil,
}

// Action is something a UI may render for a booking. Target is the status the
// booking moves to when the action succeeds.
type Action struct {
	Name   string              `json:"name"`
	Target model.BookingStatus `json:"target"`
}

func ParseBookingStatus(s string) (model.BookingStatus, error) {
	status := model.BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := table[status]; !ok {
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
	return status, nil
}

func IsKnown(status model.BookingStatus) bool {
	_, ok := table[status]
	return ok
}

// IsTerminal reports whether no actor can move a booking out of status.
// Unknown statuses are reported as non-terminal.
func IsTerminal(status model.BookingStatus) bool {
	rows, ok := table[status]
	return ok && len(rows) == 0
}

// IsActive reports whether a booking in status still holds its bed.
func IsActive(status model.BookingStatus) bool {
	return status == model.BookingPending ||
		status == model.BookingConfirmed ||
		status == model.BookingCheckedIn
}

func next(actor Actor, status model.BookingStatus) []model.BookingStatus {
	var out []model.BookingStatus
	for _, t := range table[status] {
		if slices.Contains(t.actors, actor) {
			out = append(out, t.to)
		}
	}
	return out
}

// LegalOwnerTransitions returns the statuses an owner may move a booking to.
// The result is empty, never nil, for terminal and unknown statuses.
func LegalOwnerTransitions(status model.BookingStatus) []model.BookingStatus {
	out := next(ActorOwner, status)
	if out == nil {
		return []model.BookingStatus{}
	}
	return out
}

// CanSeekerCancel reports whether the seeker who made a booking may cancel it.
func CanSeekerCancel(status model.BookingStatus) bool {
	return CanTransition(ActorSeeker, status, model.BookingCancelled)
}

func CanTransition(actor Actor, from, to model.BookingStatus) bool {
	return slices.Contains(next(actor, from), to)
}

// Actions lists what actor may do with a booking in status.
func Actions(actor Actor, status model.BookingStatus) []Action {
	actions := []Action{}
	switch actor {
	case ActorOwner:
		for _, to := range LegalOwnerTransitions(status) {
			actions = append(actions, Action{Name: string(to), Target: to})
		}
	case ActorSeeker:
		if CanSeekerCancel(status) {
			actions = append(actions, Action{Name: ActionCancel, Target: model.BookingCancelled})
		}
	}
	return actions
}
