package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrIdeaNotFound is returned when an idea does not exist or is not
	// owned by the requester. Ownership misses deliberately report not-found
	// rather than forbidden so existence is not leaked to non-owners.
	ErrIdeaNotFound = errors.New("idea not found")
	// ErrNoteNotFound is returned when a note does not exist or its parent
	// idea is not owned by the requester.
	ErrNoteNotFound = errors.New("note not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrAccountNotFound is returned when a linked account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrSelfDemotion is returned when an admin tries to remove their own
	// admin status.
	ErrSelfDemotion = errors.New("you cannot remove your own admin status")
	// ErrInvalidNoteType is returned when a note type is outside the closed set.
	ErrInvalidNoteType = errors.New("invalid note type")
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
	switch err {
	case ErrIdeaNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "IDEA_NOT_FOUND")
	case ErrNoteNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTE_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrSessionNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "SESSION_NOT_FOUND")
	case ErrAccountNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case ErrSelfDemotion:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DEMOTION")
	case ErrInvalidNoteType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_NOTE_TYPE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
