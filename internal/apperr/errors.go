// Package apperr defines the request-scoped error vocabulary. Services raise
// these; the HTTP boundary translates them to a status code and message.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a request error with an HTTP status attached.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// BadRequest returns a 400 error with the given message.
func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Msg: msg}
}

// Unauthorized returns a 401 error with the given message.
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Msg: msg}
}

// NotFound returns a 404 error with the given message.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Msg: msg}
}

// StatusOf maps an error to an HTTP status code. Unclassified errors are
// treated as internal failures.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for an error. Unclassified
// errors get a generic message so internals never leak to the client.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal server error"
}
