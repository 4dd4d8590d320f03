package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies failures that may cross the storage boundary.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindValidation   ErrorKind = "validation"
	KindInternal     ErrorKind = "internal"
)

// Sentinels for errors.Is matching against any *Error of the same kind.
var (
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "conflict"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "not authorized"}
	ErrValidation   = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrInternal     = &Error{Kind: KindInternal, Message: "internal error"}
)

// Error is the single error type returned by stores and the app core.
// Field and Allowed describe what was rejected so callers can report it.
type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
	Allowed []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %s", e.Field)
		if len(e.Allowed) > 0 {
			fmt.Fprintf(&b, ", allowed: %s", strings.Join(e.Allowed, ", "))
		}
		b.WriteString(")")
	}
	return b.String()
}

// Is matches on Kind so wrapped errors compare equal to the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func NotFound(entity string, id int64) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %d not found", entity, id)}
}

func Conflict(field, msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg, Field: field}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Forbidden is an authorization failure scoped to a field and its allowed set.
func Forbidden(field, msg string, allowed []string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg, Field: field, Allowed: allowed}
}

func Invalid(field, msg string, allowed ...string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Field: field, Allowed: allowed}
}

// Internal flattens a backend fault into the taxonomy. Only the message
// is kept so driver error types stay behind the storage boundary.
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf("%s: %v", op, err)}
}

// KindOf extracts the kind of err, or "" when err carries none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// AsError unwraps err into a *Error when possible.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
