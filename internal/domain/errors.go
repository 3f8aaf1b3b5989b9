package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
	KindEmptyResult
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation failed"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindEmptyResult:
		return "empty result"
	default:
		return "internal error"
	}
}

// Error is a domain rule violation. It travels unchanged from the service
// that detected it to the API boundary, which maps Kind to a status code.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrEmptyResult  = &Error{Kind: KindEmptyResult}
)

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewValidationError(format string, args ...interface{}) error {
	return newError(KindValidation, format, args...)
}

func NewNotFoundError(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

func NewConflictError(format string, args ...interface{}) error {
	return newError(KindConflict, format, args...)
}

func NewForbiddenError(format string, args ...interface{}) error {
	return newError(KindForbidden, format, args...)
}

func NewUnauthorizedError(format string, args ...interface{}) error {
	return newError(KindUnauthorized, format, args...)
}

func NewEmptyResultError(format string, args ...interface{}) error {
	return newError(KindEmptyResult, format, args...)
}

// KindOf returns KindInternal for anything that is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
