// Package errors provides structured error types for graphplot.
//
// Every plotting entry point validates its inputs before drawing anything and
// reports failures with one of the codes below, so that callers (and the CLI)
// can distinguish a wrong kind of argument from a wrong value.
//
// # Error Codes
//
//   - INVALID_TYPE: a parameter has the wrong kind (array vs key, list vs map)
//   - INVALID_VALUE: a parameter is outside its enumeration or range
//   - KEY_NOT_FOUND: a named column or variable does not exist
//   - DIMENSION_MISMATCH: vector or matrix shapes disagree
//   - INVALID_INPUT / INVALID_FORMAT: malformed files or flags
//   - UNSUPPORTED: requested output format or feature is not available
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidValue, "context must be one of %v, not %q", names, ctx)
//	if errors.Is(err, errors.ErrCodeInvalidValue) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read matrix %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Parameter validation errors
	ErrCodeInvalidType       Code = "INVALID_TYPE"
	ErrCodeInvalidValue      Code = "INVALID_VALUE"
	ErrCodeKeyNotFound       Code = "KEY_NOT_FOUND"
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"

	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
