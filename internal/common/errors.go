// Package common defines shared constants and sentinel errors used across
// client and server layers of the placement portal. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")
	ErrorConflict     = errors.New("conflict")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// Error pairs one of the sentinel kinds above with a message that is safe to
// show to API clients.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// NewError returns an error that matches kind under errors.Is and reports msg
// as its text.
func NewError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Message returns the client-facing text of err: the message of the first
// *Error in the chain, or the text of the matching sentinel otherwise.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	for _, kind := range []error{ErrorValidation, ErrorConflict, ErrorUnauthorized, ErrorNotFound} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ErrorInternal.Error()
}
