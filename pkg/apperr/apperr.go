// Package apperr defines the closed error taxonomy shared by all services.
// Handlers map each kind to exactly one HTTP status; anything that is not an
// *apperr.Error degrades to a generic server error.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindValidation - malformed input (out-of-range rating, missing field)
	KindValidation Kind = iota
	// KindNotFound - referenced user/store/rating absent
	KindNotFound
	// KindAuthentication - missing or invalid credential
	KindAuthentication
	// KindAuthorization - valid identity, disallowed operation
	KindAuthorization
	// KindConflict - duplicate unique-key violation (e.g. email already registered)
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an error of the given kind with a formatted caller-visible message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause while keeping the caller-visible message.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Authentication(format string, args ...any) *Error {
	return New(KindAuthentication, format, args...)
}

func Authorization(format string, args ...any) *Error {
	return New(KindAuthorization, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// KindOf reports the kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
