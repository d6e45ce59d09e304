package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrInvalidStatus = errors.New("invalid booking status")

	ErrNoOpenBeds = errors.New("selected room has no available beds")

	ErrRoomNotSelected = errors.New("no room selected")

	ErrNotSignedIn = errors.New("sign in required")

	ErrOwnerOnly = errors.New("owner role required")

	ErrInquiryUnavailable = errors.New("inquiry endpoint not available")
)
