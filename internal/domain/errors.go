package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, page size below one).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would break a relationship invariant,
// such as a duplicate registration or deleting a client that still has trips.
var ErrConflict = errors.New("conflict")

// ErrClientHasTrips is returned when removing a client that still has at
// least one trip registration.
var ErrClientHasTrips = fmt.Errorf("%w: client has trips assigned", ErrConflict)

// ErrAlreadyRegistered is returned when a client is already registered for
// the requested trip.
var ErrAlreadyRegistered = fmt.Errorf("%w: client is already registered for this trip", ErrConflict)

// ErrTripUnavailable is returned when a registration targets a trip that does
// not exist or whose start date has already passed.
var ErrTripUnavailable = fmt.Errorf("%w: trip does not exist or has already occurred", ErrValidation)
