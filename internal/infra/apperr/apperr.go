// Package apperr defines the error kinds every module returns so the HTTP
// layer can map them to status codes without inspecting message text.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrReference marks a foreign reference that does not resolve.
	ErrReference = errors.New("referenced entity not found")
	// ErrNotFound marks an absent primary entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a delete blocked by dependent records.
	ErrConflict = errors.New("dependent records exist")
)

// Error carries a user-facing message and the kind it belongs to.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) error {
	return newf(ErrValidation, format, args...)
}

// Required is shorthand for the most common validation failure.
func Required(field string) error {
	return newf(ErrValidation, "%s is required", field)
}

func Reference(format string, args ...interface{}) error {
	return newf(ErrReference, format, args...)
}

func NotFound(entity string, id interface{}) error {
	return newf(ErrNotFound, "%s %v not found", entity, id)
}

func Conflict(format string, args ...interface{}) error {
	return newf(ErrConflict, format, args...)
}

// Message returns the user-facing text of err when it is one of ours.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg, true
	}
	return "", false
}
