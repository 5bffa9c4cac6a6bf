// Package apperr defines the error taxonomy shared by services and handlers.
// Services return these typed errors; the server's error handler maps them to
// an HTTP status and an {"error": message} body. Anything unclassified
// surfaces as a 500 with a generic message.
package apperr

import (
	"errors"
	"net/http"
)

// Kind discriminates failure categories.
type Kind int

const (
	KindInternal Kind = iota
	// KindValidation covers missing or malformed required input. This API
	// reports it as 401 rather than 400, matching its published contract.
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
)

// Error is a classified application failure with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a missing/malformed-input error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Auth builds a bad-credentials or missing/invalid-token error.
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// NotFound builds a missing-resource error. Ownership mismatches use the same
// kind and message as genuinely absent records so existence never leaks.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict builds a duplicate-identity error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// From extracts an *Error from err's chain, or nil.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
