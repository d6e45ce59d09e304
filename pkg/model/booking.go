package model

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCancelled  BookingStatus = "CANCELLED"
)

// BookingStatuses lists every status in lifecycle order.
var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
	BookingCheckedIn,
	BookingCheckedOut,
	BookingCancelled,
}

type Booking struct {
	ID               int64         `json:"id"`
	BookingReference string        `json:"bookingReference"`
	UserID           int64         `json:"userId"`
	UserName         string        `json:"userName,omitempty"`
	PropertyID       int64         `json:"propertyId"`
	PropertyName     string        `json:"propertyName,omitempty"`
	RoomID           int64         `json:"roomId"`
	RoomNumber       string        `json:"roomNumber,omitempty"`
	BedID            int64         `json:"bedId"`
	BedNumber        string        `json:"bedNumber,omitempty"`
	CheckInDate      string        `json:"checkInDate"`
	CheckOutDate     *string       `json:"checkOutDate"`
	MonthlyRent      float64       `json:"monthlyRent"`
	SecurityDeposit  *float64      `json:"securityDeposit,omitempty"`
	Status           BookingStatus `json:"status"`
	Notes            string        `json:"notes,omitempty"`
	CreatedAt        string        `json:"createdAt,omitempty"`
}

// BookingRequest is the create payload sent upstream. CheckOutDate is always
// serialized so an open-ended stay is an explicit null.
type BookingRequest struct {
	PropertyID   int64   `json:"propertyId" validate:"required,gt=0"`
	RoomID       int64   `json:"roomId" validate:"required,gt=0"`
	BedID        int64   `json:"bedId" validate:"required,gt=0"`
	CheckInDate  string  `json:"checkInDate" validate:"required,isodate"`
	CheckOutDate *string `json:"checkOutDate" validate:"omitempty,isodate"`
	Notes        string  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingFilter narrows the owner booking list. An empty Status means all.
type BookingFilter struct {
	Status BookingStatus
	Page   int
	Size   int
}
