package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned for a missing or invalid session, bad credentials or an insufficient role.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadRequest is returned when a required field is missing or malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrConflict is returned when a write affected no rows: duplicate key or dangling reference.
	ErrConflict = errors.New("conflict")
	// ErrNotFound is returned when a target is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Only the sentinel text
// reaches the client; wrapped causes stay server side.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrBadRequest):
		return NewHTTPError(http.StatusBadRequest, ErrBadRequest.Error(), "BAD_REQUEST")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
