// Package errors provides structured error types for tilewire.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so the CLI and the HTTP API can map it to an exit status or a
// response code without string matching.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad orientation, bad diagram file)
//   - *_NOT_FOUND: Missing nodes, boards or files
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidOrientation, "side %q has no anchor", side)
//	if errors.Is(err, errors.ErrCodeInvalidOrientation) {
//	    // reject the request
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDiagram, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidOrientation Code = "INVALID_ORIENTATION"
	ErrCodeInvalidTarget      Code = "INVALID_TARGET"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidDiagram     Code = "INVALID_DIAGRAM"
	ErrCodeInvalidRecord      Code = "INVALID_RECORD"
	ErrCodeInvalidState       Code = "INVALID_STATE"

	// Conflicts
	ErrCodeDuplicateNode       Code = "DUPLICATE_NODE"
	ErrCodeDuplicateConnection Code = "DUPLICATE_CONNECTION"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeNodeNotFound  Code = "NODE_NOT_FOUND"
	ErrCodeBoardNotFound Code = "BOARD_NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeStorage Code = "STORAGE_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// HTTPStatus maps an error code to the HTTP status the API answers with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidOrientation, ErrCodeInvalidTarget,
		ErrCodeInvalidFormat, ErrCodeInvalidDiagram, ErrCodeInvalidRecord, ErrCodeInvalidState:
		return 400
	case ErrCodeNotFound, ErrCodeNodeNotFound, ErrCodeBoardNotFound, ErrCodeFileNotFound:
		return 404
	case ErrCodeDuplicateNode, ErrCodeDuplicateConnection:
		return 409
	case ErrCodeUnsupported:
		return 501
	case ErrCodeTimeout:
		return 504
	default:
		return 500
	}
}
