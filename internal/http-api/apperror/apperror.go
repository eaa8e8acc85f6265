// Package apperror is the error taxonomy shared by every component. Each
// service operation translates store and library failures into exactly one
// of these kinds; the HTTP layer maps kinds to status codes in one place.
package apperror

import (
	"context"
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindUnavailable
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(msg string) error     { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) error       { return &Error{Kind: KindConflict, Message: msg} }
func Authentication(msg string) error { return &Error{Kind: KindAuthentication, Message: msg} }
func Authorization(msg string) error  { return &Error{Kind: KindAuthorization, Message: msg} }
func NotFound(msg string) error       { return &Error{Kind: KindNotFound, Message: msg} }
func Unavailable(msg string) error    { return &Error{Kind: KindUnavailable, Message: msg} }
func Internal(msg string) error       { return &Error{Kind: KindInternal, Message: msg} }

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// Status returns the HTTP status code for err. Unclassified errors map to
// 500; a store call that ran out of time maps to 503.
func Status(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message safe to expose to clients. Raw errors
// never leak their text outward.
func UserMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "Service temporarily unavailable."
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal server error."
}
