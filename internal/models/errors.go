package models

import "errors"

// Domain failures handlers translate into HTTP statuses. Anything else
// bubbling out of a repo is treated as a store failure.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("record not found")
	ErrForbidden        = errors.New("user not authorized for this resource")
	ErrDuplicateAddress = errors.New("address already registered")
	ErrSelfBooking      = errors.New("cannot book your own accommodation")
)
