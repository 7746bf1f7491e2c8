package service

import "errors"

// ErrCapacityExceeded is returned by the reservation write path when
// every conference seat is already taken.  Handlers translate it into
// an HTTP 409 response; it is a business rejection, not a bug.
var ErrCapacityExceeded = errors.New("lo sentimos, todos los asientos están ocupados. Te avisaremos si se libera algún cupo")

// ErrDuplicateEmail is returned when a reservation already exists for
// the normalized email.  Handlers translate it into an HTTP 409.
var ErrDuplicateEmail = errors.New("ya tienes una reserva con este email. Revisa tu bandeja de entrada")

// ValidationError reports a malformed or missing input field.  The
// message is user-facing and names the offending field so the form can
// surface it directly.  Handlers translate it into an HTTP 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
