// Package errors provides structured error types for the linea application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// Domain packages (edition, linear) keep their own typed errors; this
// package classifies them into application-level codes at the boundary via
// [Classify].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid edition file: %s", path)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStore, origErr, "load edition %s", id)
package errors

import (
	"errors"
	"fmt"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
	"github.com/Scripta-Qumranica-Electronica/linea/pkg/linear"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidFilter Code = "INVALID_FILTER"

	// Graph construction errors
	ErrCodeMalformedGraph Code = "MALFORMED_GRAPH"

	// Enumeration conditions
	ErrCodeTooManyOrderings Code = "TOO_MANY_ORDERINGS"
	ErrCodeCancelled        Code = "CANCELLED"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeEditionNotFound Code = "EDITION_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Storage errors
	ErrCodeStore Code = "STORE_ERROR"

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

// Classify maps a domain error onto an application-level code, preserving
// the original error as the cause. Errors that already carry a code pass
// through unchanged; unrecognized errors classify as internal.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var app *Error
	if errors.As(err, &app) {
		return app
	}

	switch {
	case errors.Is(err, edition.ErrMalformedGraph):
		return Wrap(ErrCodeMalformedGraph, err, "input document violates graph invariants")
	case errors.Is(err, linear.ErrTooManyOrderings):
		return Wrap(ErrCodeTooManyOrderings, err, "ordering enumeration hit its cap")
	case errors.Is(err, linear.ErrCancelled):
		return Wrap(ErrCodeCancelled, err, "enumeration cancelled")
	default:
		return Wrap(ErrCodeInternal, err, "unexpected error")
	}
}
