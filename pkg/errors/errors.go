package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an error so callers can decide user-facing behavior
// (retry later, fix input, alert operators) without string matching.
type ErrorType string

const (
	// Caller errors
	ErrorTypeInvalidInput ErrorType = "INVALID_INPUT"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"

	// Operator errors
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// Upstream gateway errors
	ErrorTypeRateLimited     ErrorType = "RATE_LIMITED"
	ErrorTypePaymentRequired ErrorType = "PAYMENT_REQUIRED"
	ErrorTypeGateway         ErrorType = "GATEWAY"

	// Model output errors
	ErrorTypeEmptyCompletion ErrorType = "EMPTY_COMPLETION"
	ErrorTypeMalformedOutput ErrorType = "MALFORMED_OUTPUT"
	ErrorTypeValidation      ErrorType = "VALIDATION"

	// Infrastructure errors
	ErrorTypeDatabase ErrorType = "DATABASE"
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError is the application error carried across layers. The Type is
// preserved all the way to the HTTP handler; kinds are never collapsed.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds diagnostic details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Constructor functions for the error taxonomy

// NewInvalidInputError reports a request the caller can fix.
func NewInvalidInputError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewConfigurationError reports a misconfigured deployment. It should alert
// operators, not users; the wire response stays a generic 500.
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConfiguration,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewRateLimitedError reports upstream throttling. Retryable by the caller;
// the service itself never retries.
func NewRateLimitedError() *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimited,
		Message:    "Rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewPaymentRequiredError reports an upstream quota or billing failure.
// Not retryable by waiting.
func NewPaymentRequiredError() *AppError {
	return &AppError{
		Type:       ErrorTypePaymentRequired,
		Message:    "Payment required",
		HTTPStatus: http.StatusPaymentRequired,
	}
}

// NewGatewayError reports any other upstream or network failure, keeping the
// status and body snippet for diagnostics.
func NewGatewayError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeGateway,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewEmptyCompletionError reports a provider envelope with no assistant content.
func NewEmptyCompletionError() *AppError {
	return &AppError{
		Type:       ErrorTypeEmptyCompletion,
		Message:    "model returned no content",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewMalformedOutputError reports model content that did not parse. The raw
// string is kept in details; this case is never silently swallowed into an
// empty result.
func NewMalformedOutputError(raw string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedOutput,
		Message:    "model output is not valid JSON",
		Details:    map[string]interface{}{"raw": raw},
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewValidationError reports model output that parsed but cannot be repaired
// into the mindmap schema.
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeDatabase,
		Message:    fmt.Sprintf("database operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Helper functions

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsInvalidInput checks if an error is an invalid input error
func IsInvalidInput(err error) bool {
	return IsType(err, ErrorTypeInvalidInput)
}

// IsRateLimited checks if an error is an upstream rate limit error
func IsRateLimited(err error) bool {
	return IsType(err, ErrorTypeRateLimited)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}
