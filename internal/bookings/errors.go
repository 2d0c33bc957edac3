package bookings

import "errors"

// Validation errors are user-correctable and map to 4xx responses.
var (
	ErrInvalidDate      = errors.New("date is not available for booking")
	ErrInvalidCategory  = errors.New("unknown ticket category")
	ErrNegativeQuantity = errors.New("ticket quantity must not be negative")
	ErrEmptyBooking     = errors.New("booking must contain at least one ticket")
)

// Store integrity errors indicate a programming or concurrency defect. They
// fail the request but never the process.
var (
	ErrDuplicateID = errors.New("booking id already exists")
	ErrNotFound    = errors.New("booking not found")
)
