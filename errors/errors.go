package errors

import (
	"fmt"
	"net/http"
)

// AppError is the error type returned in JSON bodies by the mock scene service.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// ServiceUnavailable creates an AppError for a service that is temporarily unavailable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// NotFound creates an AppError for a path that is not served.
func NotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: "Not Found",
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"path": path},
	}
}

// MethodNotAllowed creates an AppError for a known path hit with the wrong method.
func MethodNotAllowed(method, path string) *AppError {
	return &AppError{
		Code: ErrCodeMethodNotAllowed, Message: fmt.Sprintf("Method %s is not allowed.", method),
		HTTPStatus: http.StatusMethodNotAllowed, Retryable: false,
		Details: map[string]any{"method": method, "path": path},
	}
}

// InvalidInput creates an AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	e := &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Unauthorized creates an AppError for a request without a verified client identity.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Client certificate required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// Internal creates an AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// FromStatus maps an HTTP status to the closest AppError. Used for injected
// failures in the mock service.
func FromStatus(status int, service string) *AppError {
	switch {
	case status == http.StatusNotFound:
		return NotFound("")
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e := Unauthorized("")
		e.HTTPStatus = status
		return e
	case status == http.StatusServiceUnavailable:
		return ServiceUnavailable(service)
	case status >= 400 && status < 500:
		return New(ErrCodeInvalidInput, http.StatusText(status), status)
	default:
		return New(ErrCodeInternal, http.StatusText(status), status)
	}
}
