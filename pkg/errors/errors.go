// Package errors provides structured error types for the plotgram library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the build pipeline and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages naming the offending layer or aesthetic
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: plot specification failures, reported before any computation
//   - UNKNOWN_*: lookups of stats, positions, geoms or scales that do not exist
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingAes, "geom_point requires the %s aesthetic", "y")
//	if errors.Is(err, errors.ErrCodeMissingAes) {
//	    // Handle specification error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidData, origErr, "layer %d data", i)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Specification errors, detected before any computation
	ErrCodeInvalidSpec    Code = "INVALID_SPEC"
	ErrCodeInvalidData    Code = "INVALID_DATA"
	ErrCodeInvalidMapping Code = "INVALID_MAPPING"
	ErrCodeInvalidFacet   Code = "INVALID_FACET"
	ErrCodeMissingAes     Code = "MISSING_AESTHETIC"

	// Unknown component names in a plot specification
	ErrCodeUnknownStat     Code = "UNKNOWN_STAT"
	ErrCodeUnknownPosition Code = "UNKNOWN_POSITION"
	ErrCodeUnknownGeom     Code = "UNKNOWN_GEOM"
	ErrCodeUnknownScale    Code = "UNKNOWN_SCALE"
	ErrCodeUnknownCoord    Code = "UNKNOWN_COORD"

	// Resource errors for the CLI boundary
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

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
