package service

import (
	"time"

	"stayease/internal/bookings/lifecycle"
	"stayease/pkg/model"
)

// BookingView is a booking together with the actions the viewer may take on it.
type BookingView struct {
	model.Booking
	Actions []lifecycle.Action `json:"actions"`
}

func newBookingView(b model.Booking, actor lifecycle.Actor) BookingView {
	return BookingView{
		Booking: b,
		Actions: lifecycle.Actions(actor, b.Status),
	}
}

func newBookingPage(page *model.Page[model.Booking], actor lifecycle.Actor) *model.Page[BookingView] {
	views := make([]BookingView, 0, len(page.Content))
	for _, b := range page.Content {
		views = append(views, newBookingView(b, actor))
	}
	return &model.Page[BookingView]{
		Content:       views,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.First,
		Last:          page.Last,
	}
}

// BookingForm is what a seeker needs to book a bed in one property.
// SelectedRoom is nil until a room is chosen; SubmitEnabled is false then.
type BookingForm struct {
	Property      model.Property `json:"property"`
	Rooms         []model.Room   `json:"rooms"`
	SelectedRoom  *model.Room    `json:"selectedRoom"`
	OpenBeds      []model.Bed    `json:"openBeds"`
	SubmitEnabled bool           `json:"submitEnabled"`
}

// Dashboard summarizes an owner's portfolio. ActiveBookings counts bookings
// still waiting on the owner: PENDING and CONFIRMED.
type Dashboard struct {
	TotalProperties int64                         `json:"totalProperties"`
	TotalBeds       int                           `json:"totalBeds"`
	AvailableBeds   int                           `json:"availableBeds"`
	ActiveBookings  int64                         `json:"activeBookings"`
	Pipeline        map[model.BookingStatus]int64 `json:"pipeline"`
}

type InquiryResult struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type SessionView struct {
	User      model.User `json:"user"`
	Role      model.Role `json:"role"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
