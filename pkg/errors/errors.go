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
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Elevation errors
	ErrElevationDeclined ErrorCode = "ELEVATION_DECLINED"
	ErrElevationLaunch   ErrorCode = "ELEVATION_LAUNCH"

	// Manifest errors
	ErrManifestLoad    ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Step errors
	ErrStepHardFailure ErrorCode = "STEP_HARD_FAILURE"
	ErrStepAction      ErrorCode = "STEP_ACTION"

	// External command errors
	ErrCommandStart ErrorCode = "COMMAND_START"
	ErrCommandExit  ErrorCode = "COMMAND_EXIT"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// BenchkitError represents a structured error with code and details
type BenchkitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BenchkitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BenchkitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BenchkitError) Is(target error) bool {
	var targetErr *BenchkitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BenchkitError with the given code and message
func New(code ErrorCode, message string) *BenchkitError {
	return &BenchkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BenchkitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BenchkitError {
	return &BenchkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BenchkitError
func Wrap(err error, code ErrorCode, message string) *BenchkitError {
	if err == nil {
		return nil
	}
	return &BenchkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BenchkitError {
	if err == nil {
		return nil
	}
	return &BenchkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BenchkitError) WithDetail(key string, value interface{}) *BenchkitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var kitErr *BenchkitError
	if errors.As(err, &kitErr) {
		return kitErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if
// not a BenchkitError
func GetErrorCode(err error) ErrorCode {
	var kitErr *BenchkitError
	if errors.As(err, &kitErr) {
		return kitErr.Code
	}
	return ErrUnknown
}
