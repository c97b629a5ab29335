package plan

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies operation failures so callers can map them to a
// transport status without string-matching messages.
type ErrorKind string

const (
	// KindValidation covers missing, malformed, or out-of-range input.
	KindValidation ErrorKind = "validation"
	// KindNotFound covers unknown handles, terms, and course codes.
	// Expired handles surface as KindNotFound — callers cannot tell an
	// expired schedule from one that never existed.
	KindNotFound ErrorKind = "not_found"
	// KindConflict covers duplicate course codes on add.
	KindConflict ErrorKind = "conflict"
	// KindConstraint covers operations that are illegal given current
	// state, like adding a course to a co-op semester.
	KindConstraint ErrorKind = "constraint"
	// KindInternal covers genuine programming errors; reported generically.
	KindInternal ErrorKind = "internal"
)

// Error is a structured operation failure: a kind, the field that caused
// it, and a human-readable message safe to hand back to the caller.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status maps the kind to its conventional HTTP-equivalent status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConstraint:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Errf builds a structured Error with a formatted message.
func Errf(kind ErrorKind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a *Error from err, wrapping unknown errors as
// KindInternal so nothing escapes the structured envelope.
func AsError(err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return &Error{Kind: KindInternal, Message: err.Error()}
}
