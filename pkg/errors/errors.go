package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Preconditions. These abort the run before anything is touched.
	ErrMissingSource ErrorCode = "MISSING_SOURCE"
	ErrEnvironment   ErrorCode = "ENVIRONMENT"
	ErrSourceOverlap ErrorCode = "SOURCE_OVERLAP"

	// Per-entry failures, accumulated into the run summary
	ErrCopy         ErrorCode = "COPY"
	ErrBackup       ErrorCode = "BACKUP"
	ErrProfileWrite ErrorCode = "PROFILE_WRITE"
	ErrUserEnv      ErrorCode = "USER_ENV"

	// Run control
	ErrInterrupted ErrorCode = "INTERRUPTED"
)

// VimdotError represents a structured error with code and details
type VimdotError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *VimdotError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *VimdotError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *VimdotError) Is(target error) bool {
	var targetErr *VimdotError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new VimdotError with the given code and message
func New(code ErrorCode, message string) *VimdotError {
	return &VimdotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new VimdotError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VimdotError {
	return &VimdotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a VimdotError
func Wrap(err error, code ErrorCode, message string) *VimdotError {
	if err == nil {
		return nil
	}
	return &VimdotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VimdotError {
	if err == nil {
		return nil
	}
	return &VimdotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *VimdotError) WithDetail(key string, value interface{}) *VimdotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var vimdotErr *VimdotError
	if errors.As(err, &vimdotErr) {
		return vimdotErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a VimdotError
func GetErrorCode(err error) ErrorCode {
	var vimdotErr *VimdotError
	if errors.As(err, &vimdotErr) {
		return vimdotErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a VimdotError
func GetErrorDetails(err error) map[string]interface{} {
	var vimdotErr *VimdotError
	if errors.As(err, &vimdotErr) {
		return vimdotErr.Details
	}
	return nil
}

// IsFatal reports whether err must abort the run. Copy, backup and profile
// failures are not fatal; they end up in the summary instead.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrCopy, ErrBackup, ErrProfileWrite, ErrUserEnv:
		return false
	}
	return err != nil
}
