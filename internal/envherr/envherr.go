// Package envherr defines the closed error taxonomy shared by the state
// store, the shim installer, and the library API: the errors those
// packages return are, or wrap, an *Error carrying one of the codes
// declared here. The launcher does not use this type; it maps the same
// failure kinds onto its own exit codes.
package envherr

import (
	"errors"
	"fmt"
)

// Code identifies which of the six documented failure kinds an error
// belongs to.
type Code string

const (
	// ParseError means the state file exists but its contents could not
	// be decoded as valid JSON or did not satisfy the schema.
	ParseError Code = "parse_error"
	// NotFound means a referenced alias or profile does not exist.
	NotFound Code = "not_found"
	// AlreadyExists means an operation would clobber an existing alias
	// or profile that the caller did not ask to replace.
	AlreadyExists Code = "already_exists"
	// Permission means an operation was denied by the filesystem or
	// registry for lack of privilege.
	Permission Code = "permission"
	// PathNotOnPath means an install directory is valid but not present
	// on the current PATH, so the installed shim would not be found.
	PathNotOnPath Code = "path_not_on_path"
	// IoError covers filesystem failures not otherwise classified above.
	IoError Code = "io_error"
)

// Error is the concrete error type returned by the state, shim, and
// library packages. It carries a closed Code plus a human-readable
// Message, and optionally wraps an underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code, so that
// errors.Is(err, envherr.New(envherr.NotFound, "")) style sentinel checks
// work without comparing Message or Cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New builds an *Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an *Error around an existing error, preserving it for
// errors.Unwrap and errors.As while classifying it under code.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Is is a convenience wrapper around errors.Is for the given code,
// matching any *Error in err's chain that carries that code.
func Is(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

// CodeOf extracts the Code of the first *Error in err's chain, or ""
// if err does not wrap one.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
