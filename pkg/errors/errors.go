// Package errors defines the failure taxonomy shared by the FIAS client
// and the retry wrapper. Every failure the library surfaces is an *Error
// carrying one of the ErrorType kinds, so callers can classify without
// string matching.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// ErrorType identifies the kind of failure
type ErrorType string

const (
	// ErrorTypeToken means the bootstrap response did not contain the
	// expected token marker.
	ErrorTypeToken ErrorType = "token"
	// ErrorTypeTransport covers connection-level failures: DNS, reset,
	// timeout, anything before an HTTP status was received.
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeStatus is a completed HTTP exchange with a non-2xx status.
	ErrorTypeStatus ErrorType = "status"
	// ErrorTypeDecode means the body was not valid JSON where JSON was
	// promised.
	ErrorTypeDecode ErrorType = "decode"
	// ErrorTypeCancelled means the call was aborted via its context.
	ErrorTypeCancelled ErrorType = "cancelled"
)

// Error is the failure type returned by all client operations
type Error struct {
	Type    ErrorType
	Message string
	// StatusCode is set for status errors (and for decode errors where a
	// status was received before decoding failed); 0 otherwise.
	StatusCode int
	// Body holds the raw response body for status errors
	Body string
	// Err is the underlying cause, if any
	Err error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fias %s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fias %s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains
func (e *Error) Unwrap() error {
	return e.Err
}

// NewToken creates a token acquisition error
func NewToken(message string) *Error {
	return &Error{Type: ErrorTypeToken, Message: message}
}

// NewTransport wraps a connection-level failure
func NewTransport(err error) *Error {
	return &Error{Type: ErrorTypeTransport, Message: err.Error(), Err: err}
}

// NewStatus creates an error for a non-2xx HTTP response
func NewStatus(statusCode int, body string) *Error {
	return &Error{
		Type:       ErrorTypeStatus,
		Message:    fmt.Sprintf("server returned status %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewDecode wraps a JSON decoding failure
func NewDecode(err error, statusCode int) *Error {
	return &Error{
		Type:       ErrorTypeDecode,
		Message:    fmt.Sprintf("failed to decode JSON: %v", err),
		StatusCode: statusCode,
		Err:        err,
	}
}

// NewCancelled wraps a context cancellation or deadline expiry
func NewCancelled(err error) *Error {
	return &Error{Type: ErrorTypeCancelled, Message: err.Error(), Err: err}
}

// FromContextError classifies err as a cancellation when it stems from a
// context, and as a transport failure otherwise.
func FromContextError(err error) *Error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return NewCancelled(err)
	}
	return NewTransport(err)
}

// TypeOf returns the ErrorType of err, or an empty string when err is not
// an *Error from this package.
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// StatusCodeOf returns the HTTP status attached to err, or 0.
func StatusCodeOf(err error) int {
	var e *Error
	if stderrors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsRetryable reports whether err is a transient failure worth retrying:
// transport failures and server-side 5xx statuses. Client errors,
// decode failures and cancellations are not transient.
func IsRetryable(err error) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	switch e.Type {
	case ErrorTypeTransport:
		return true
	case ErrorTypeStatus:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// IsNotFound reports whether err is a 404 status error
func IsNotFound(err error) bool {
	return StatusCodeOf(err) == 404
}

// IsUnauthorized reports whether err is a 401 status error
func IsUnauthorized(err error) bool {
	return StatusCodeOf(err) == 401
}

// IsCancelled reports whether err is a cancellation
func IsCancelled(err error) bool {
	return TypeOf(err) == ErrorTypeCancelled
}
