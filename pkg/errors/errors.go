// Package errors provides structured error types for sectiongrid.
//
// Every failure the engine, the stores and the API can report carries a
// machine-readable [Code] so callers can decide how to fall back without
// parsing messages. The HTTP layer maps codes to status codes; the CLI prints
// [UserMessage].
//
// # Error Codes
//
//   - INVALID_*: input validation failures (spans, anchors, ids)
//   - NOT_FOUND / BOARD_NOT_FOUND: unknown block or board
//   - PLACEMENT_EXHAUSTED: no free anchor within the row horizon
//   - INVALID_STATE / DRAG_IN_PROGRESS: drag session misuse
//   - STORAGE: a persistence backend failed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSpan, "column span %d not in {4,6,12}", n)
//	if errors.Is(err, errors.ErrCodePlacementExhausted) {
//	    // fall back to the default anchor
//	}
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidSpan   Code = "INVALID_SPAN"
	ErrCodeInvalidAnchor Code = "INVALID_ANCHOR"
	ErrCodeInvalidWidth  Code = "INVALID_WIDTH"
	ErrCodeDuplicateID   Code = "DUPLICATE_ID"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeBoardNotFound Code = "BOARD_NOT_FOUND"

	// Engine conditions
	ErrCodePlacementExhausted Code = "PLACEMENT_EXHAUSTED"
	ErrCodeOverlap            Code = "OVERLAP"

	// Drag session errors
	ErrCodeInvalidState   Code = "INVALID_STATE"
	ErrCodeDragInProgress Code = "DRAG_IN_PROGRESS"

	// Persistence errors
	ErrCodeStorage Code = "STORAGE"

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

// IsNotFound reports whether err denotes a missing block or board.
func IsNotFound(err error) bool {
	return Is(err, ErrCodeNotFound) || Is(err, ErrCodeBoardNotFound)
}

// IsValidation reports whether err is a caller-side input problem.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidSpan, ErrCodeInvalidAnchor,
		ErrCodeInvalidWidth, ErrCodeDuplicateID, ErrCodeOverlap:
		return true
	}
	return false
}
