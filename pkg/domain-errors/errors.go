// Package domainerrors provides coded errors shared across verticals so
// handlers can map failures to transport responses without string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

const (
	// CodeConfig marks missing or invalid startup configuration. Fatal, no retry.
	CodeConfig Code = "config"
	// CodeBadRequest marks malformed caller input.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks a missing envelope or document.
	CodeNotFound Code = "not_found"
	// CodeInvalidTransition marks a lifecycle command issued against a
	// document whose current state does not permit it.
	CodeInvalidTransition Code = "invalid_transition"
	// CodeConflict marks an optimistic-concurrency failure on event append.
	CodeConflict Code = "conflict"
	// CodeInternal marks everything else.
	CodeInternal Code = "internal"
)

// Error carries a code alongside a human-readable message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a coded error preserving the underlying cause for errors.Is/As.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}
