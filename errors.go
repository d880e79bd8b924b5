package iftracer

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of error for metrics and logging.
type ErrorCode string

// Error codes for categorization.
const (
	ErrCodeConfig     ErrorCode = "CONFIG"     // Configuration errors
	ErrCodeValidation ErrorCode = "VALIDATION" // Request validation errors
	ErrCodeNetwork    ErrorCode = "NETWORK"    // Network/connection errors
	ErrCodeAPI        ErrorCode = "API"        // API response errors
	ErrCodeAuth       ErrorCode = "AUTH"       // Authentication/authorization errors
	ErrCodeRateLimit  ErrorCode = "RATE_LIMIT" // Rate limiting errors
	ErrCodeTimeout    ErrorCode = "TIMEOUT"    // Timeout errors
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal SDK errors
)

// TracerError is the common interface for all SDK errors.
// Use this interface to handle errors generically while still accessing
// error-specific information.
//
// Example:
//
//	var tracerErr TracerError
//	if errors.As(err, &tracerErr) {
//	    log.Printf("code=%s retryable=%v", tracerErr.Code(), tracerErr.IsRetryable())
//	}
type TracerError interface {
	error

	// Code returns a machine-readable error code for categorization.
	Code() ErrorCode

	// IsRetryable returns true if the operation can be retried.
	IsRetryable() bool
}

// IsRetryable returns true if the error represents a retryable condition.
// This works with any error type produced by the SDK.
//
// Retryable conditions include server errors (5xx) and transient network
// failures such as timeouts. Client errors (4xx, including 429) are
// permanent and never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var tracerErr TracerError
	if errors.As(err, &tracerErr) {
		return tracerErr.IsRetryable()
	}

	return IsRetryableNetworkError(err)
}

// Sentinel errors for configuration validation.
var (
	ErrMissingAPIKey   = errors.New("iftracer: API key is required")
	ErrMissingUsername = errors.New("iftracer: username is required")
	ErrMissingBaseURL  = errors.New("iftracer: base URL is required")
	ErrInvalidConfig   = errors.New("iftracer: invalid configuration")
	ErrNilRequest      = errors.New("iftracer: request cannot be nil")
	ErrNotInitialized  = errors.New("iftracer: default evaluator is not initialized; call Init first")
)

// Sentinel APIError values for use with errors.Is().
// These match on status code only.
var (
	ErrUnauthorized = &APIError{StatusCode: 401}
	ErrForbidden    = &APIError{StatusCode: 403}
	ErrNotFound     = &APIError{StatusCode: 404}
	ErrRateLimited  = &APIError{StatusCode: 429}
)

// APIError represents a non-2xx response from the evaluation service.
// It supports error wrapping via Unwrap() and comparison via Is().
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Body       string `json:"-"` // Raw response body for debugging
	Err        error  `json:"-"` // Underlying error for wrapping
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if msg != "" {
		return fmt.Sprintf("iftracer: API error (status %d): %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("iftracer: API error (status %d)", e.StatusCode)
}

// Unwrap returns the underlying error for error chain support.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for errors.Is().
// It matches on status code, allowing comparisons like:
//
//	if errors.Is(err, iftracer.ErrRateLimited) { ... }
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// IsClientError returns true if the error is a 4xx client error.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError returns true if the error is a 5xx server error.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRateLimited returns true if the error is a 429 Too Many Requests error.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsRetryable returns true if the request should be retried.
// Client errors, 429 included, are permanent and never retried; only
// server errors are.
func (e *APIError) IsRetryable() bool {
	return e.IsServerError()
}

// Code returns the error code for the API error.
// Implements the TracerError interface.
func (e *APIError) Code() ErrorCode {
	switch {
	case e.StatusCode == 401, e.StatusCode == 403:
		return ErrCodeAuth
	case e.IsRateLimited():
		return ErrCodeRateLimit
	default:
		return ErrCodeAPI
	}
}

// Ensure APIError implements TracerError.
var _ TracerError = (*APIError)(nil)

// AsAPIError extracts an APIError from the error chain.
// Returns the APIError and true if found, nil and false otherwise.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ValidationError represents malformed or incomplete input to a
// request-building operation. Validation errors are raised before any
// network call is attempted and are never retried.
type ValidationError struct {
	Field   string
	Message string
	Err     error // Underlying error for wrapping
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("iftracer: validation error for field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Code returns the error code for the validation error.
// Implements the TracerError interface.
func (e *ValidationError) Code() ErrorCode {
	return ErrCodeValidation
}

// IsRetryable returns false for validation errors (they should be fixed,
// not retried). Implements the TracerError interface.
func (e *ValidationError) IsRetryable() bool {
	return false
}

// Ensure ValidationError implements TracerError.
var _ TracerError = (*ValidationError)(nil)

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewValidationErrorWithCause creates a new validation error with an
// underlying cause.
func NewValidationErrorWithCause(field, message string, cause error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     cause,
	}
}

// AsValidationError extracts a ValidationError from the error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}
