package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for Inkwell engine errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Store error codes
const (
	STORE_OPEN_FAILED    ErrorCode = "STORE_OPEN_FAILED"
	STORE_QUERY_FAILED   ErrorCode = "STORE_QUERY_FAILED"
	STORE_NOT_FOUND      ErrorCode = "STORE_NOT_FOUND"
	STORE_MIGRATE_FAILED ErrorCode = "STORE_MIGRATE_FAILED"
)

// Project lifecycle error codes
const (
	PROJECT_NOT_FOUND        ErrorCode = "PROJECT_NOT_FOUND"
	PROJECT_INVALID_STATE    ErrorCode = "PROJECT_INVALID_STATE"
	PROJECT_ALREADY_RUNNING  ErrorCode = "PROJECT_ALREADY_RUNNING"
	SECTION_NOT_FOUND        ErrorCode = "SECTION_NOT_FOUND"
	SECTION_INVALID_STATE    ErrorCode = "SECTION_INVALID_STATE"
	EXPORT_EMPTY_DOCUMENT    ErrorCode = "EXPORT_EMPTY_DOCUMENT"
	EXPORT_RENDER_FAILED     ErrorCode = "EXPORT_RENDER_FAILED"
	PLANNING_NO_SECTIONS     ErrorCode = "PLANNING_NO_SECTIONS"
)

// InkwellError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints.
type InkwellError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *InkwellError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *InkwellError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *InkwellError) Is(target error) bool {
	var inkErr *InkwellError
	if errors.As(target, &inkErr) {
		return e.Code == inkErr.Code
	}
	return false
}

// NewError creates a new non-retryable InkwellError with the given code and message.
func NewError(code ErrorCode, message string) *InkwellError {
	return &InkwellError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable InkwellError with the given code
// and message. Use this for transient errors that may succeed on retry.
func NewRetryableError(code ErrorCode, message string) *InkwellError {
	return &InkwellError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable InkwellError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *InkwellError {
	return &InkwellError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// CodeOf extracts the ErrorCode from an error chain.
// Returns an empty code if the chain contains no InkwellError.
func CodeOf(err error) ErrorCode {
	var inkErr *InkwellError
	if errors.As(err, &inkErr) {
		return inkErr.Code
	}
	return ""
}
