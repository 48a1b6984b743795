package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the business-rule violation class of an error.
// The HTTP layer maps each kind to exactly one status code, the same
// mapping for every entity type.
type Kind string

const (
	KindAuthRequired        Kind = "AUTH_REQUIRED"
	KindNotFound            Kind = "NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
	KindInvalidTransition   Kind = "INVALID_TRANSITION"
	KindForbiddenTransition Kind = "FORBIDDEN_TRANSITION"
	KindInvalidInput        Kind = "INVALID_INPUT"
	KindDuplicateNumber     Kind = "DUPLICATE_NUMBER"
	KindEmailTaken          Kind = "EMAIL_TAKEN"
	KindHasDependents       Kind = "HAS_DEPENDENTS"
)

// Error is a typed business error carrying its kind and a human-readable message
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

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new typed error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new typed error with a formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new typed error wrapping an underlying cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain; returns "" for untyped errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether the error chain contains a typed error of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
