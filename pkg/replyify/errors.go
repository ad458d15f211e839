package replyify

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
)

// ErrorCategory classifies an Error.
type ErrorCategory string

// Error categories returned by the client.
const (
	// ConnectionError means the request never produced a usable HTTP response.
	ConnectionError ErrorCategory = "connection"
	// APIError covers malformed responses and unclassified non-2xx statuses.
	APIError ErrorCategory = "api"
	// InvalidRequestError is returned for 400 and 404 responses.
	InvalidRequestError ErrorCategory = "invalid_request"
	// PermissionError is returned for 403 responses.
	PermissionError ErrorCategory = "permission"
	// AuthenticationError is returned for 401 responses or a missing credential.
	AuthenticationError ErrorCategory = "authentication"
	// RateLimitError is returned for 429 responses.
	RateLimitError ErrorCategory = "rate_limit"
)

// Category sentinels for use with errors.Is.
var (
	ErrConnection     = &Error{Category: ConnectionError}
	ErrAPI            = &Error{Category: APIError}
	ErrInvalidRequest = &Error{Category: InvalidRequestError}
	ErrPermission     = &Error{Category: PermissionError}
	ErrAuthentication = &Error{Category: AuthenticationError}
	ErrRateLimit      = &Error{Category: RateLimitError}
)

// Common static errors that can be wrapped with context.
var (
	ErrEmptyString          = errors.New("empty string is not a valid value; use nil to clear a field")
	ErrFieldNotFound        = errors.New("field not found")
	ErrTransientField       = errors.New("field was removed by the last refresh")
	ErrNoMoreItems          = errors.New("no more items")
	ErrUnsupportedOperation = errors.New("operation not supported by resource")
	ErrUnknownResource      = errors.New("unknown resource kind")
	ErrUnexpectedResponse   = errors.New("unexpected response shape")
	ErrConfigRequired       = errors.New("config is required")
)

// Error is returned by every operation that talks to the API.
type Error struct {
	Category   ErrorCategory
	Message    string
	HTTPBody   string
	HTTPStatus int
	JSONBody   any
	Headers    http.Header
	RequestID  string
	// ErrorList holds the structured field errors of an invalid request.
	ErrorList any
	Cause     error
}

// NewError creates an Error of the given category.
func NewError(category ErrorCategory, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	message := e.Message
	if message == "" {
		message = "<empty message>"
	}

	if e.RequestID != "" {
		return fmt.Sprintf("Request %s: %s", e.RequestID, message)
	}

	return message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an Error of the same category. A target with
// a message must also match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error) //nolint:errorlint // Is compares a single level
	if !ok {
		return false
	}

	if t.Category != e.Category {
		return false
	}

	return t.Message == "" || t.Message == e.Message
}

// WithResponse attaches the HTTP response details to e and returns it.
func (e *Error) WithResponse(status int, body string, jsonBody any, headers http.Header) *Error {
	e.HTTPStatus = status
	e.HTTPBody = body
	e.JSONBody = jsonBody
	e.Headers = headers

	if headers != nil {
		e.RequestID = headers.Get(constants.HeaderRequestID)
	}

	return e
}

// ErrorForStatus maps an HTTP status code to an error category.
func ErrorForStatus(status int) ErrorCategory {
	switch status {
	case http.StatusBadRequest, http.StatusNotFound:
		return InvalidRequestError
	case http.StatusUnauthorized:
		return AuthenticationError
	case http.StatusForbidden:
		return PermissionError
	case http.StatusTooManyRequests:
		return RateLimitError
	default:
		return APIError
	}
}

// IsCategory checks whether err is an Error of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var typed *Error
	if !errors.As(err, &typed) {
		return false
	}

	return typed.Category == category
}

// IsConnection checks if the error is a connection error.
func IsConnection(err error) bool { return IsCategory(err, ConnectionError) }

// IsAPI checks if the error is a generic API error.
func IsAPI(err error) bool { return IsCategory(err, APIError) }

// IsInvalidRequest checks if the error is an invalid request error.
func IsInvalidRequest(err error) bool { return IsCategory(err, InvalidRequestError) }

// IsPermission checks if the error is a permission error.
func IsPermission(err error) bool { return IsCategory(err, PermissionError) }

// IsAuthentication checks if the error is an authentication error.
func IsAuthentication(err error) bool { return IsCategory(err, AuthenticationError) }

// IsRateLimit checks if the error is a rate limit error.
func IsRateLimit(err error) bool { return IsCategory(err, RateLimitError) }

// IsNotFound checks if the error is an invalid request error with a 404 status.
func IsNotFound(err error) bool {
	var typed *Error
	if !errors.As(err, &typed) {
		return false
	}

	return typed.Category == InvalidRequestError && typed.HTTPStatus == http.StatusNotFound
}

// transientFieldError builds the lookup error for a key dropped by a refresh.
func transientFieldError(key string, available []string) error {
	return fmt.Errorf(
		"%w: %q; it was set to an empty value and is no longer present. available fields: %s",
		ErrTransientField, key, strings.Join(available, ", "),
	)
}
