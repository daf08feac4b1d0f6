package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

/* =========================================================
   Domain error taxonomy

   Services return *Error; controllers translate to the JSON
   envelope via helper.JsonAppError. Transport-level failures
   keep using fiber.NewError directly.
========================================================= */

type Kind string

const (
	KindValidation        Kind = "VALIDATION_ERROR"    // bad input shape/range
	KindInvariant         Kind = "INVARIANT_VIOLATION" // would break a stored invariant
	KindInvalidTransition Kind = "INVALID_STATE_TRANSITION"
	KindPrecondition      Kind = "PRECONDITION_FAILED" // dependent stage not satisfied
	KindNotFound          Kind = "NOT_FOUND"
	KindTransient         Kind = "TRANSIENT" // retries exhausted on lock/serialization conflict
)

type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func Validation(msg string) *Error        { return New(KindValidation, msg) }
func Invariant(msg string) *Error         { return New(KindInvariant, msg) }
func InvalidTransition(msg string) *Error { return New(KindInvalidTransition, msg) }
func Precondition(msg string) *Error      { return New(KindPrecondition, msg) }
func NotFound(msg string) *Error          { return New(KindNotFound, msg) }
func Transient(msg string, cause error) *Error {
	return Wrap(KindTransient, msg, cause)
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// HTTPStatus maps a kind to the response status used by the JSON envelope.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindInvariant, KindInvalidTransition:
		return fiber.StatusConflict
	case KindPrecondition:
		return fiber.StatusPreconditionFailed
	case KindNotFound:
		return fiber.StatusNotFound
	case KindTransient:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
