// Package apperr defines the closed set of domain error kinds the HTTP
// boundary maps to transport responses. Every service failure that should
// reach a client is one of these; anything else is treated as Internal.
package apperr

import (
	"errors"
	"net/http"
)

// Kind tags an Error with its transport meaning.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthorized
	KindNotFound
	KindConflict
	KindInternal
)

// Error is a tagged domain error carrying a human-readable message and the
// HTTP status the boundary layer should respond with.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(msg string) *Error   { return &Error{Kind: KindBadRequest, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Msg: msg} }

// Internal wraps an unexpected failure. The cause is kept for logging but
// never rendered to clients.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// From extracts an *Error from err's chain, or nil if there is none.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	ae := From(err)
	return ae != nil && ae.Kind == k
}
