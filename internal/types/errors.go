package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for coach framework errors.
type ErrorCode string

// Tool lifecycle error codes
const (
	TOOL_NOT_FOUND      ErrorCode = "TOOL_NOT_FOUND"
	TOOL_ALREADY_EXISTS ErrorCode = "TOOL_ALREADY_EXISTS"
	TOOL_INVALID        ErrorCode = "TOOL_INVALID"
)

// Tool execution error codes
const (
	TOOL_DISABLED         ErrorCode = "TOOL_DISABLED"
	TOOL_BUSY             ErrorCode = "TOOL_BUSY"
	TOOL_RATE_LIMITED     ErrorCode = "TOOL_RATE_LIMITED"
	INVALID_INPUT         ErrorCode = "INVALID_INPUT"
	TOOL_EXECUTION_FAILED ErrorCode = "TOOL_EXECUTION_FAILED"
	TOOL_TIMEOUT          ErrorCode = "TOOL_TIMEOUT"
)

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// CoachError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type CoachError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *CoachError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
// This enables using errors.Is() and errors.As() with wrapped errors.
func (e *CoachError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a CoachError with the same Code.
func (e *CoachError) Is(target error) bool {
	var coachErr *CoachError
	if errors.As(target, &coachErr) {
		return e.Code == coachErr.Code
	}
	return false
}

// NewError creates a new non-retryable CoachError with the given code and message.
func NewError(code ErrorCode, message string) *CoachError {
	return &CoachError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable CoachError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *CoachError {
	return &CoachError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable CoachError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *CoachError {
	return &CoachError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// CodeOf extracts the ErrorCode from an error chain.
// Returns TOOL_EXECUTION_FAILED if the chain carries no CoachError.
func CodeOf(err error) ErrorCode {
	var coachErr *CoachError
	if errors.As(err, &coachErr) {
		return coachErr.Code
	}
	return TOOL_EXECUTION_FAILED
}
