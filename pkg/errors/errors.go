package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed boundary error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined boundary errors. Only structural validation failures, wrong
// methods and rate limiting ever reach the caller; every other failure is
// absorbed at the handler and preserved in the log stream.
var (
	ErrInvalidFormData  = New("INVALID_FORM_DATA", http.StatusBadRequest, "Invalid form data")
	ErrMethodNotAllowed = New("METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed, "Method not allowed")
	ErrRateLimited      = New("RATE_LIMITED", http.StatusTooManyRequests, "Too many requests")
	ErrServiceInit      = New("SERVICE_INIT", http.StatusInternalServerError, "sheets service not initialised")
	ErrDeliveryFailed   = New("DELIVERY_FAILED", http.StatusBadGateway, "spreadsheet delivery failed")
	ErrAuditUnavailable = New("AUDIT_UNAVAILABLE", http.StatusServiceUnavailable, "submission audit store not configured")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrDeliveryFailed.Code, ErrDeliveryFailed.Status, ErrDeliveryFailed.Message)
}
