package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNewsNotFound is returned when no news item exists for the given id.
	ErrNewsNotFound = errors.New("no news with such id")
	// ErrNotAuthor is returned when the caller does not own the news item.
	ErrNotAuthor = errors.New("you are not the author")
	// ErrMissingFields is returned when a required field is empty or absent.
	ErrMissingFields = errors.New("required field is missing")
	// ErrSecretNotConfigured is returned when the JWT signing secret is unset.
	ErrSecretNotConfigured = errors.New("JWT secret is not defined")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNewsNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrNotAuthor):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrSecretNotConfigured):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "CONFIG_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
