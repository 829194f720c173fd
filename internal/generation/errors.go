package generation

import (
	"errors"
	"fmt"
	"net/http"
)

// ProviderError is the normalized failure returned by every provider adapter.
// Transport and provider-side faults are caught inside the adapter and
// converted to this type; they never propagate as unhandled faults.
type ProviderError struct {
	// StatusCode is the HTTP status the gateway should respond with.
	// Defaults to 500 unless the underlying transport supplied one.
	StatusCode int

	// Message is a short, user-presentable description of the failure.
	Message string

	// Detail carries the raw provider response or error text for diagnostics.
	Detail string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface for ProviderError.
func (e *ProviderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("provider error (%d): %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("provider error (%d): %s", e.StatusCode, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a ProviderError, defaulting the status code to
// 500 when the caller has none from the transport.
func NewProviderError(statusCode int, message, detail string, err error) *ProviderError {
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	return &ProviderError{
		StatusCode: statusCode,
		Message:    message,
		Detail:     detail,
		Err:        err,
	}
}

// AsProviderError extracts a *ProviderError from the error chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
