package gettranslated

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the error type surfaced by all SDK callbacks.
//
// Code is the HTTP status for server-side failures and 0 for
// network, parse and validation failures, matching the error contract
// shared with the other SDK ports.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Code == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// ErrorCode extracts the numeric code from an SDK error, returning 0
// for any non-SDK error.
func ErrorCode(err error) int {
	var sdkErr *Error
	if errors.As(err, &sdkErr) {
		return sdkErr.Code
	}
	return 0
}

func newNetworkError(err error) *Error {
	return &Error{Code: 0, Message: err.Error()}
}

func newParseError(message string) *Error {
	return &Error{Code: 0, Message: message}
}

func newValidationError(message string) *Error {
	return &Error{Code: 0, Message: message}
}

func newHTTPError(status int) *Error {
	return &Error{Code: status, Message: statusMessage(status)}
}

// statusMessage converts an HTTP status to the canned human-readable
// message used across all SDK implementations.
func statusMessage(status int) string {
	switch status {
	case 0:
		return "Network error or connection failed"
	case http.StatusBadRequest:
		return "Bad request - invalid parameters"
	case http.StatusUnauthorized:
		return "Unauthorized - invalid API key"
	case http.StatusForbidden:
		return "Permission denied - API key lacks required permissions"
	case http.StatusNotFound:
		return "Not found - endpoint or resource not found"
	case http.StatusInternalServerError:
		return "Internal server error"
	case http.StatusServiceUnavailable:
		return "Service unavailable"
	default:
		return fmt.Sprintf("HTTP error %d", status)
	}
}
