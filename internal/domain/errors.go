package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// trip does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a trip
// rule (e.g. non-contiguous days, check-out before check-in, unknown zone).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
