package errors

import (
	"errors"
	"net/http"
)

// Error kinds surfaced by the link lifecycle engine.

// ErrEmptyURL is returned when the submitted URL is empty or blank
var ErrEmptyURL = errors.New("URL cannot be empty")

// ErrURLMustBeAccessible is returned when neither the http nor the https probe got a response
var ErrURLMustBeAccessible = errors.New("URL must be accessible")

// ErrURLRestricted is returned when the link exists but has been deactivated
var ErrURLRestricted = errors.New("URL restricted")

// ErrURLNotFound is returned when a short code (or full URL) has no matching record
var ErrURLNotFound = errors.New("URL not found")

// ErrStoreUnavailable wraps every failure coming from the persistence layer
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrCodespaceExhausted is returned when an identifier no longer fits in the short code width
var ErrCodespaceExhausted = errors.New("short code space exhausted")

// ErrUnexpected is the single kind every unrecognized failure is folded into at the boundary
var ErrUnexpected = errors.New("unexpected error")

// AppError is the rendering of an error kind for a request-handling boundary.
type AppError struct {
	Message string
	Code    string
	Status  int
}

func (e AppError) Error() string {
	return e.Message
}

var (
	emptyURLError      = AppError{Message: "URL cannot be empty", Code: "url_empty", Status: http.StatusBadRequest}
	inaccessibleError  = AppError{Message: "URL must be accessible", Code: "url_must_be_accessible", Status: http.StatusBadRequest}
	restrictedError    = AppError{Message: "URL restricted", Code: "url_restricted", Status: http.StatusForbidden}
	notFoundError      = AppError{Message: "URL not found", Code: "url_not_found", Status: http.StatusNotFound}
	unexpectedAppError = AppError{Message: "Internal Server Error", Code: "unexpected_error", Status: http.StatusInternalServerError}
)

// FromError maps any error to its AppError. Errors outside the user-facing
// taxonomy, store failures included, all become the same opaque internal error.
func FromError(err error) AppError {
	var appErr AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, ErrEmptyURL):
		return emptyURLError
	case errors.Is(err, ErrURLMustBeAccessible):
		return inaccessibleError
	case errors.Is(err, ErrURLRestricted):
		return restrictedError
	case errors.Is(err, ErrURLNotFound):
		return notFoundError
	default:
		return unexpectedAppError
	}
}

// IsUserError reports whether err belongs to the user-correctable kinds.
func IsUserError(err error) bool {
	return errors.Is(err, ErrEmptyURL) ||
		errors.Is(err, ErrURLMustBeAccessible) ||
		errors.Is(err, ErrURLRestricted) ||
		errors.Is(err, ErrURLNotFound)
}
