// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, configuration, timezone or session bounds
//   - Data/Resource errors (200-299): Missing data, unreadable sources, store failures
//   - Parse errors (300-399): Malformed halt lines, reason/flag codes and timestamps
//   - Halt interval errors (400-499): Intervals whose end precedes their start
//   - Host integration errors (500-599): Host engine version mismatches
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeInvalidReason, "unknown halt reason %q", raw)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeInvalidTimestamp, "failed to parse halt start", originalErr)
//
//	// Check error code
//	if errors.IsParseError(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsParseError reports whether err carries any code of the parse family (300-399).
func IsParseError(err error) bool {
	code := GetCode(err)

	return code >= ErrCodeParseError && code < ErrCodeInvalidInterval
}

// LineError attaches the position of a failing line to a load error.
type LineError struct {
	Source string // Path or name of the file being read
	Line   int    // 1-based line number
	Err    error  // Underlying failure
}

// NewLineError creates a new LineError.
func NewLineError(source string, line int, err error) *LineError {
	return &LineError{
		Source: source,
		Line:   line,
		Err:    err,
	}
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

// Unwrap returns the underlying error so codes stay reachable through GetCode.
func (e *LineError) Unwrap() error {
	return e.Err
}
