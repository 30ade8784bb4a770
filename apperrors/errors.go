package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies the failures the stores and services can report.
type Kind string

const (
	// KindNotFound indicates a record was not found
	KindNotFound Kind = "NOT_FOUND"

	// KindDuplicateKey indicates a record with the same key already exists
	KindDuplicateKey Kind = "DUPLICATE_KEY"

	// KindInvalidTransition indicates a status change the state machine forbids
	KindInvalidTransition Kind = "INVALID_TRANSITION"

	// KindInsufficientStock indicates a stock decrease larger than the stock on hand
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"

	// KindTerminalState indicates a mutation of a record in a terminal status
	KindTerminalState Kind = "TERMINAL_STATE"

	// KindValidation indicates rejected user input
	KindValidation Kind = "VALIDATION"

	// KindUnauthorized indicates a failed login or a forbidden action
	KindUnauthorized Kind = "UNAUTHORIZED"

	// KindIOFailure indicates a persistence read or write failure
	KindIOFailure Kind = "IO_FAILURE"
)

// Error carries a Kind alongside the message so callers can branch on the
// failure class without string matching.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap implements the unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, unwrapping as needed. Errors without a
// Kind report the zero value.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// NewNotFound creates a not found error
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewDuplicateKey creates a duplicate key error
func NewDuplicateKey(message string) *Error {
	return &Error{Kind: KindDuplicateKey, Message: message}
}

// NewInvalidTransition creates an invalid transition error
func NewInvalidTransition(message string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: message}
}

// NewInsufficientStock creates an insufficient stock error
func NewInsufficientStock(message string) *Error {
	return &Error{Kind: KindInsufficientStock, Message: message}
}

// NewTerminalState creates a terminal state error
func NewTerminalState(message string) *Error {
	return &Error{Kind: KindTerminalState, Message: message}
}

// NewValidation creates a validation error
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewUnauthorized creates an unauthorized error
func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewIOFailure creates a persistence failure error wrapping the cause
func NewIOFailure(message string, err error) *Error {
	return &Error{Kind: KindIOFailure, Message: message, Err: err}
}
