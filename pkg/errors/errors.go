package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"

	// Application errors
	ErrorTypeInternal  ErrorType = "INTERNAL"
	ErrorTypeTimeout   ErrorType = "TIMEOUT"
	ErrorTypeRateLimit ErrorType = "RATE_LIMIT"
	ErrorTypeBusy      ErrorType = "BUSY"

	// Generation errors (LLM capability boundary)
	ErrorTypeGeneration ErrorType = "GENERATION"

	// Store errors. The sub-kinds matter to callers: a missing index and a
	// permission failure need different remediation guidance.
	ErrorTypeStorePermission   ErrorType = "STORE_PERMISSION"
	ErrorTypeStoreMissingIndex ErrorType = "STORE_MISSING_INDEX"
	ErrorTypeStoreUnknown      ErrorType = "STORE_UNKNOWN"

	// Auth errors
	ErrorTypeAuthCredential    ErrorType = "AUTH_CREDENTIAL"
	ErrorTypeAuthExists        ErrorType = "AUTH_ALREADY_EXISTS"
	ErrorTypeAuthWeakSecret    ErrorType = "AUTH_WEAK_SECRET"
	ErrorTypeAuthBadIdentifier ErrorType = "AUTH_MALFORMED_IDENTIFIER"
	ErrorTypeAuthUnknown       ErrorType = "AUTH_UNKNOWN"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
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

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// captureStackTrace captures the current stack trace
func captureStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := ""
	for {
		frame, more := frames.Next()
		stack += fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack
}

// Constructor functions for common error types

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		StackTrace: captureStackTrace(),
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
		StackTrace: captureStackTrace(),
	}
}

// NewBusyError signals that an operation of the same kind is already in flight
func NewBusyError(operation string) *AppError {
	return &AppError{
		Type:       ErrorTypeBusy,
		Message:    fmt.Sprintf("%s already in progress", operation),
		HTTPStatus: http.StatusConflict,
		StackTrace: captureStackTrace(),
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
		StackTrace: captureStackTrace(),
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
		StackTrace: captureStackTrace(),
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(operation string) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    fmt.Sprintf("operation '%s' timed out", operation),
		HTTPStatus: http.StatusRequestTimeout,
		StackTrace: captureStackTrace(),
	}
}

// NewRateLimitError creates a rate limit error
func NewRateLimitError(limit int, window string) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimit,
		Message:    fmt.Sprintf("rate limit exceeded: %d requests per %s", limit, window),
		HTTPStatus: http.StatusTooManyRequests,
		StackTrace: captureStackTrace(),
	}
}

// NewGenerationError creates a generation-capability error
func NewGenerationError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeGeneration,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// NewStorePermissionError creates a permission-denied store error
func NewStorePermissionError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorePermission,
		Message:    fmt.Sprintf("store operation '%s' denied; check the credentials' access policy", operation),
		Cause:      err,
		HTTPStatus: http.StatusForbidden,
		StackTrace: captureStackTrace(),
	}
}

// NewStoreMissingIndexError creates a missing-index store error
func NewStoreMissingIndexError(index string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeStoreMissingIndex,
		Message:    fmt.Sprintf("store index '%s' is missing; ordered listing requires it to be provisioned", index),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewStoreError creates a store error of unknown sub-kind
func NewStoreError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeStoreUnknown,
		Message:    fmt.Sprintf("store operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewAuthError creates an auth error of the given sub-kind
func NewAuthError(kind ErrorType, message string) *AppError {
	status := http.StatusUnauthorized
	switch kind {
	case ErrorTypeAuthExists:
		status = http.StatusConflict
	case ErrorTypeAuthWeakSecret, ErrorTypeAuthBadIdentifier:
		status = http.StatusBadRequest
	case ErrorTypeAuthUnknown:
		status = http.StatusInternalServerError
	}
	return &AppError{
		Type:       kind,
		Message:    message,
		HTTPStatus: status,
		StackTrace: captureStackTrace(),
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

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

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsUnauthorized checks if an error is an unauthorized error
func IsUnauthorized(err error) bool {
	return IsType(err, ErrorTypeUnauthorized)
}

// IsBusy checks if an error is a busy error
func IsBusy(err error) bool {
	return IsType(err, ErrorTypeBusy)
}

// IsGeneration checks if an error is a generation error
func IsGeneration(err error) bool {
	return IsType(err, ErrorTypeGeneration)
}

// IsStoreError checks if an error is any store error sub-kind
func IsStoreError(err error) bool {
	appErr := GetAppError(err)
	if appErr == nil {
		return false
	}
	switch appErr.Type {
	case ErrorTypeStorePermission, ErrorTypeStoreMissingIndex, ErrorTypeStoreUnknown:
		return true
	}
	return false
}

// IsAuthError checks if an error is any auth error sub-kind
func IsAuthError(err error) bool {
	appErr := GetAppError(err)
	if appErr == nil {
		return false
	}
	switch appErr.Type {
	case ErrorTypeAuthCredential, ErrorTypeAuthExists, ErrorTypeAuthWeakSecret,
		ErrorTypeAuthBadIdentifier, ErrorTypeAuthUnknown:
		return true
	}
	return false
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	// Otherwise create a new internal error
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
