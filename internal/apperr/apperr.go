package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for HTTP mapping
type Kind int

const (
	KindValidation Kind = iota
	KindDuplicate
	KindNotFound
	KindSelfReference
	KindUnknownTag
	KindUnknownIngredient
	KindDuplicateIngredient
	KindEmptyCart
	KindPermission
	KindUnauthorized
	KindInternal
)

// Error is the single application error type. Services return it (possibly
// wrapped); the error middleware maps Kind to an HTTP status and renders the
// message. Internal errors never expose their cause to the client.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Status returns the HTTP status code for the error kind
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new error. The cause is kept for logs only.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Internal wraps an unexpected error behind a generic client message
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", cause: cause}
}

// Validation is a shorthand for field validation failures
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound is a shorthand for absent entities or relations
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Duplicate is a shorthand for unique-pair conflicts
func Duplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Message: message}
}

// Permission is a shorthand for author/admin ownership failures
func Permission(message string) *Error {
	return &Error{Kind: KindPermission, Message: message}
}

// As extracts an *Error from an error chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	if appErr, ok := As(err); ok {
		return appErr.Kind == kind
	}
	return false
}
