package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrReservationNotFound is returned when no reservation matches the given id.
	ErrReservationNotFound = errors.New("Reservation not found")
	// ErrDuplicateReservation is returned when an active booking already holds the slot.
	ErrDuplicateReservation = errors.New("A reservation already exists for this email at the same date and time")
)

// ValidationError marks malformed, missing, or out-of-range input. The
// message is safe to return to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a client-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse is the envelope returned on every failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: e.Message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized
// becomes a generic 500 so internal detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return NewHTTPError(http.StatusBadRequest, verr.Message)
	case errors.Is(err, ErrDuplicateReservation):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrReservationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
