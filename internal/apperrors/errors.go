// Package apperrors defines the error kinds services return and the HTTP
// layer maps to status codes.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Error is a classified error with a client-facing message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error kind
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

// BadRequest reports invalid client input
func BadRequest(msg string) *Error { return &Error{Kind: KindBadRequest, Message: msg} }

// Unauthorized reports missing or rejected credentials
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// NotFound reports a missing resource
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict reports a uniqueness violation
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Internal wraps cause; cause is kept for logs and never sent to clients
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf reports the kind of err, KindInternal for unclassified errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
