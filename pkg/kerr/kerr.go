// Package kerr defines the stable error categories surfaced to users.
package kerr

import (
	"errors"
	"fmt"
)

// Code represents a stable error category that callers can switch on.
type Code string

const (
	CodeUnknown        Code = "unknown"
	CodeNoCredentials  Code = "no_credentials"
	CodeCliUnavailable Code = "cli_unavailable"
	CodeCliError       Code = "cli_error"
	CodeNotInitialized Code = "not_initialized"
)

// Error is a simple value type that carries a Code plus the underlying error.
type Error struct {
	Code Code
	err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// New wraps an error with the provided code. If err is nil a nil is returned.
func New(code Code, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, err: err}
}

// Newf wraps a formatted message with the provided code.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, err: fmt.Errorf(format, args...)}
}

// IsCode helps callers compare codes without type assertions. It walks
// wrapped chains so codes survive fmt.Errorf("%w") decoration.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or CodeUnknown if none is.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
