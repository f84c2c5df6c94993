// Package errors provides structured error types for og-creator.
//
// Every failing step of a run (resolving the output directory, loading the
// input, encoding an asset) returns an *Error carrying a machine-readable
// code. The CLI maps codes to exit status and prints the human message.
//
// # Error Codes
//
//   - DIRECTORY_EXISTS: the og-images target is already present
//   - MISSING_CAPABILITY: no SVG rasterizer is available
//   - UNSUPPORTED_FORMAT: the input matches no registered decoder
//   - DECODE_ERROR: the input could not be read or is corrupt
//   - ENCODE_ERROR: an asset could not be encoded or written
//   - IO_ERROR: any other filesystem failure
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDirectoryExists, "%s already exists", dir)
//	if errors.Is(err, errors.ErrCodeDirectoryExists) {
//	    // Abort without touching the directory
//	}
//
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the og-creator run.
const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeDirectoryExists   Code = "DIRECTORY_EXISTS"
	ErrCodeMissingCapability Code = "MISSING_CAPABILITY"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	ErrCodeDecode            Code = "DECODE_ERROR"
	ErrCodeEncode            Code = "ENCODE_ERROR"
	ErrCodeIO                Code = "IO_ERROR"
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
// The code prefix is dropped and the cause, when present, is appended.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode maps an error to a process exit status. Every classified
// failure of a run exits with 1; success is 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
