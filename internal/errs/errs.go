// Package errs provides structured error types for conan-build.
//
// Every failure mode of the resolver carries a machine-readable code so
// callers can tell configuration mistakes apart from I/O failures or a
// missing dependency without string matching.
package errs

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// ErrCodeConfig covers missing or invalid build configuration, such as
	// an unset TARGET variable or an unsupported arch/os pair.
	ErrCodeConfig Code = "CONFIG"

	// ErrCodeParse covers malformed build-info documents.
	ErrCodeParse Code = "PARSE"

	// ErrCodeIO covers filesystem failures, contextualized with the
	// offending path.
	ErrCodeIO Code = "IO"

	// ErrCodeMissingDependency is returned when a required package is not
	// declared in the build info.
	ErrCodeMissingDependency Code = "MISSING_DEPENDENCY"

	// ErrCodeNoTarget is returned when no build info exists for the
	// requested target triple.
	ErrCodeNoTarget Code = "NO_TARGET"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
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

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, or "" if it has none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
