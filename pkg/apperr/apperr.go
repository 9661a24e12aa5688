// Package apperr defines the tagged error taxonomy shared by services and
// HTTP controllers.
//
// Every business-rule violation is converted into an *Error carrying a
// machine-distinguishable Kind and the HTTP status it maps to. Anything
// else that escapes a service is wrapped as KindInternal so unexpected
// persistence failures are never silently swallowed.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates error categories independently of message text.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidOperation  Kind = "invalid_operation"
	KindOutOfStock        Kind = "out_of_stock"
	KindInsufficientStock Kind = "insufficient_stock"
	KindPriceMismatch     Kind = "price_mismatch"
	KindValidation        Kind = "validation"
	KindAuth              Kind = "auth"
	KindForbidden         Kind = "forbidden"
	KindInternal          Kind = "internal"
)

// Error is a tagged application error.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// Internal reports whether the error is an unexpected internal fault
// (as opposed to a caller-correctable failure).
func (e *Error) Internal() bool { return e.Kind == KindInternal }

// ── Constructors ─────────────────────────────────────────────────────────────

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: what + " not found"}
}

func InvalidOperation(msg string) *Error {
	return &Error{Kind: KindInvalidOperation, Status: http.StatusBadRequest, Message: msg}
}

func OutOfStock() *Error {
	return &Error{Kind: KindOutOfStock, Status: http.StatusBadRequest, Message: "Product is out of stock"}
}

func InsufficientStock() *Error {
	return &Error{Kind: KindInsufficientStock, Status: http.StatusBadRequest, Message: "Not enough quantity in stock"}
}

func PriceMismatch() *Error {
	return &Error{Kind: KindPriceMismatch, Status: http.StatusBadRequest, Message: "Incorrect price provided"}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "Internal server error", err: err}
}

// ── Inspection ───────────────────────────────────────────────────────────────

// From extracts an *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
