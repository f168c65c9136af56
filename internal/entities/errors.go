package entities

import (
	"errors"
	"fmt"
)

var (
	ErrReservationNotFound       = errors.New("reservation not found")
	ErrReservationNotCancellable = errors.New("reservation is not cancellable")
	ErrSettingsNotFound          = errors.New("settings row missing")
)

// CapacityExceededError is returned by the admission protocol when the
// requested party does not fit in the slot. Remaining carries the seats still
// available so the caller can tell the guest what would fit.
type CapacityExceededError struct {
	Remaining int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded: only %d seats remaining", e.Remaining)
}

// InvalidRequestError names the first field that failed validation.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
