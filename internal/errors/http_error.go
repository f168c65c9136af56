package errors

import (
	"errors"
	"net/http"

	"mesalibre/internal/entities"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// FromBusinessError maps service-layer errors onto HTTP status codes.
// Anything unrecognized is treated as a transient storage failure (503) so
// the UI never mistakes an outage for "fully booked".
func FromBusinessError(err error) *HTTPError {
	var capErr *entities.CapacityExceededError
	if errors.As(err, &capErr) {
		return NewHTTPError(http.StatusConflict, capErr.Error())
	}
	var invErr *entities.InvalidRequestError
	if errors.As(err, &invErr) {
		return NewHTTPError(http.StatusUnprocessableEntity, invErr.Error())
	}
	switch {
	case errors.Is(err, entities.ErrReservationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrReservationNotCancellable):
		return NewHTTPError(http.StatusConflict, err.Error())
	default:
		return NewHTTPError(http.StatusServiceUnavailable, "storage temporarily unavailable")
	}
}
