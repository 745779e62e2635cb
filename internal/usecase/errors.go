package usecase

import "errors"

// Sentinel error kinds. Services wrap these with fmt.Errorf("%w: ...") so
// handlers can pick the response class with errors.Is while the message stays
// human-readable. Anything not wrapping one of these is a server-side failure.
var (
	ErrAuthorization = errors.New("authorization failed")
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrSeatConflict  = errors.New("seat conflict")
)
