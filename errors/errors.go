package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the structured error surfaced by the SDK.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// Message is a human-readable error message.
	Message string
	// Code is the machine-readable error code from the API, if any
	// (e.g. "INVALID_ADDRESS", "AUTH_FAILED").
	Code string
	// StatusCode is the HTTP status code (0 for transport-level failures).
	StatusCode int
	// RequestID correlates the failure with server-side logs
	// (from the x-request-id header).
	RequestID string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s (code: %s, status: %d, request_id: %s)", e.Message, e.Code, e.StatusCode, e.RequestID)
	}
	if e.StatusCode > 0 || e.Code != "" {
		return fmt.Sprintf("%s (code: %s, status: %d)", e.Message, e.Code, e.StatusCode)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient.
func (e *Error) Retryable() bool { return e.Kind == KindTransient }

// WithRequestID sets the request id and returns the receiver.
func (e *Error) WithRequestID(id string) *Error {
	e.RequestID = id
	return e
}

// Configuration creates a configuration error.
func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Authentication creates an authentication error.
func Authentication(message string, cause error) *Error {
	return &Error{Kind: KindAuthentication, Message: message, Code: "AUTH_FAILED", Err: cause}
}

// Transient creates a transient error with no status code, used for
// transport-level failures (connection refused, timeout).
func Transient(message string, cause error) *Error {
	return &Error{Kind: KindTransient, Message: message, Err: cause}
}

// FromStatus creates a classified error from an HTTP status code.
func FromStatus(status int, message, code, requestID string) *Error {
	return &Error{
		Kind:       kindForStatus(status),
		Message:    message,
		Code:       code,
		StatusCode: status,
		RequestID:  requestID,
	}
}

// MaxRetriesExceeded creates a synthetic error for an exhausted retry loop
// that captured no attempt error.
func MaxRetriesExceeded(attempts int) *Error {
	return &Error{
		Kind:    KindTransient,
		Message: fmt.Sprintf("max retries exceeded after %d attempts", attempts),
		Code:    "MAX_RETRIES_EXCEEDED",
	}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}

// IsConfiguration checks if an error is a configuration error.
func IsConfiguration(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindConfiguration
}

// IsAuthentication checks if an error is an authentication error.
func IsAuthentication(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindAuthentication
}

// IsTransient checks if an error is a transient server or transport error.
func IsTransient(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindTransient
}

// IsClient checks if an error is a non-retryable client error.
func IsClient(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindClient
}

// IsRetryable checks if an error should be retried.
func IsRetryable(err error) bool {
	e, ok := As(err)
	return ok && e.Retryable()
}
