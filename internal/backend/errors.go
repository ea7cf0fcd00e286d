package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/types"
)

// Backend error codes follow the Inkwell error pattern
const (
	// Backend errors
	ErrBackendNotFound      types.ErrorCode = "BACKEND_NOT_FOUND"
	ErrBackendInitFailed    types.ErrorCode = "BACKEND_INIT_FAILED"
	ErrBackendUnavailable   types.ErrorCode = "BACKEND_UNAVAILABLE"
	ErrBackendUnauthorized  types.ErrorCode = "BACKEND_UNAUTHORIZED"
	ErrBackendRateLimited   types.ErrorCode = "BACKEND_RATE_LIMITED"
	ErrBackendAlreadyExists types.ErrorCode = "BACKEND_ALREADY_EXISTS"
	ErrBackendInvalidInput  types.ErrorCode = "BACKEND_INVALID_INPUT"
	ErrNoCandidates         types.ErrorCode = "BACKEND_NO_CANDIDATES"

	// Request errors
	ErrInvalidRequest types.ErrorCode = "BACKEND_INVALID_REQUEST"

	// Generation errors
	ErrGenerationFailed types.ErrorCode = "BACKEND_GENERATION_FAILED"
	ErrEmptyResponse    types.ErrorCode = "BACKEND_EMPTY_RESPONSE"
	ErrTimeoutExceeded  types.ErrorCode = "BACKEND_TIMEOUT_EXCEEDED"

	// Network errors
	ErrNetworkFailed types.ErrorCode = "BACKEND_NETWORK_FAILED"
)

// IsRetryable determines if an error is transient and may succeed with a
// different backend or on retry. Candidate iteration treats every failure
// the same way, but callers can use this to decide whether escalation is
// worth logging as unexpected.
func IsRetryable(err error) bool {
	var inkErr *types.InkwellError
	if !errors.As(err, &inkErr) {
		return false
	}

	if inkErr.Retryable {
		return true
	}

	switch inkErr.Code {
	case ErrNetworkFailed, ErrBackendRateLimited, ErrBackendUnavailable,
		ErrTimeoutExceeded, ErrEmptyResponse:
		return true
	default:
		return false
	}
}

// NewAuthError creates an authentication error for a backend
func NewAuthError(backend string, cause error) *types.InkwellError {
	return &types.InkwellError{
		Code:    ErrBackendUnauthorized,
		Message: fmt.Sprintf("backend %q authentication failed", backend),
		Cause:   cause,
	}
}

// NewUnavailableError creates a retryable error for a temporarily unreachable backend
func NewUnavailableError(backend string, cause error) *types.InkwellError {
	return &types.InkwellError{
		Code:      ErrBackendUnavailable,
		Message:   fmt.Sprintf("backend %q temporarily unavailable", backend),
		Retryable: true,
		Cause:     cause,
	}
}

// NewRateLimitError creates a retryable error for rate limiting
func NewRateLimitError(backend string) *types.InkwellError {
	return &types.InkwellError{
		Code:      ErrBackendRateLimited,
		Message:   fmt.Sprintf("rate limit exceeded for backend %q", backend),
		Retryable: true,
	}
}

// NewTimeoutError creates a retryable error for timeout failures
func NewTimeoutError(backend string, cause error) *types.InkwellError {
	return &types.InkwellError{
		Code:      ErrTimeoutExceeded,
		Message:   fmt.Sprintf("backend %q timed out", backend),
		Retryable: true,
		Cause:     cause,
	}
}

// NewEmptyResponseError marks a successful call that returned no usable text
func NewEmptyResponseError(backend string) *types.InkwellError {
	return &types.InkwellError{
		Code:      ErrEmptyResponse,
		Message:   fmt.Sprintf("backend %q returned an empty response", backend),
		Retryable: true,
	}
}

// TranslateError translates raw provider errors into Inkwell errors based
// on error message content. Errors already carrying a code pass through.
func TranslateError(backend string, err error) error {
	if err == nil {
		return nil
	}

	var inkErr *types.InkwellError
	if errors.As(err, &inkErr) {
		return err
	}

	lowerMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lowerMsg, "unauthorized") ||
		strings.Contains(lowerMsg, "authentication") ||
		strings.Contains(lowerMsg, "api key"):
		return NewAuthError(backend, err)
	case strings.Contains(lowerMsg, "rate limit") ||
		strings.Contains(lowerMsg, "too many requests"):
		return NewRateLimitError(backend)
	case strings.Contains(lowerMsg, "timeout") ||
		strings.Contains(lowerMsg, "deadline"):
		return NewTimeoutError(backend, err)
	case strings.Contains(lowerMsg, "network") ||
		strings.Contains(lowerMsg, "connection"):
		return &types.InkwellError{
			Code:      ErrNetworkFailed,
			Message:   fmt.Sprintf("backend %q network failure", backend),
			Retryable: true,
			Cause:     err,
		}
	default:
		return NewUnavailableError(backend, err)
	}
}
