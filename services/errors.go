package services

import (
	"errors"

	"hotel-booking-backend/utils"
)

// Engine error taxonomy. Controllers map these to HTTP statuses; anything else
// is a server error.
var (
	// ErrInvalidRange: checkout is not after checkin.
	ErrInvalidRange = utils.ErrInvalidRange

	// ErrRoomNotFound: a referenced room ID does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomUnavailable: an overlapping, non-canceled booking exists, either
	// at pre-check or at the authoritative write.
	ErrRoomUnavailable = errors.New("room not available for the requested dates")

	// ErrBookingNotFound: a referenced booking ID does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrValidation: missing or malformed guest/payment fields.
	ErrValidation = errors.New("validation failed")
)
