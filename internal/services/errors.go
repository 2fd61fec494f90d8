package services

import (
	"errors"
	"fmt"

	"github.com/anonto42/nano-link/backend/internal/repositories"
)

// Kind classifies a service failure. Handlers map it onto a status code.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindUnauthenticated
)

// Error is an expected failure whose Message is safe to show to the client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func unauthenticated(msg string) error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// ErrForbidden is returned when the caller is authenticated but not entitled.
var ErrForbidden = &Error{Kind: KindForbidden, Message: "Forbidden"}

// KindOf returns the Kind of err, KindUnexpected for anything not an *Error.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnexpected
}

// lookupError turns a repository miss into a NotFound with msg and wraps
// everything else.
func lookupError(err error, msg, op string) error {
	if repositories.IsNotFound(err) {
		return notFound(msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
