package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected conditions that callers check with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel or typed errors for expected conditions
// 2. Unexpected errors are wrapped in CreationServiceError
// 3. The API layer maps service errors to response envelopes and status codes
var (
	// ErrEmptyPrompt indicates the request carried no prompt text.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidLength indicates a non-positive article length was requested.
	ErrInvalidLength = errors.New("length must be positive")

	// ErrEmptyImagePath indicates no input image was provided for a removal
	// operation.
	ErrEmptyImagePath = errors.New("image path cannot be empty")

	// ErrEmptyObject indicates no object description was provided for object
	// removal.
	ErrEmptyObject = errors.New("object description cannot be empty")
)

// QuotaDeniedError indicates the request was declined by the quota gate
// before any provider was contacted. It is a business decline, not a
// failure: the API layer renders it as an unsuccessful envelope with a
// 200 status.
type QuotaDeniedError struct {
	// Reason categorizes the decline (limit reached vs. plan too low).
	Reason DenialReason
	// Message is the user-facing decline text.
	Message string
}

// Error implements the error interface for QuotaDeniedError.
func (e *QuotaDeniedError) Error() string {
	return e.Message
}

// AsQuotaDenied extracts a QuotaDeniedError from an error chain.
func AsQuotaDenied(err error) (*QuotaDeniedError, bool) {
	var qe *QuotaDeniedError
	ok := errors.As(err, &qe)
	return qe, ok
}

// CreationServiceError wraps unexpected failures from the creation service
// with operation context. Consumers differentiate failures with errors.As
// instead of string matching.
type CreationServiceError struct {
	// Operation is the operation that failed (e.g., "generate_article")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for CreationServiceError.
func (e *CreationServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CreationServiceError) Unwrap() error {
	return e.Err
}

// NewCreationServiceError creates a new CreationServiceError.
func NewCreationServiceError(operation, message string, err error) *CreationServiceError {
	return &CreationServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
