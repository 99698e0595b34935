// Package apperr defines the caller-facing error kinds for the service and
// their HTTP mapping.
//
// Kinds:
//   - Validation: malformed input (unknown workspace type, empty name,
//     invalid status) -> 400
//   - NotFound: membership, institute, or resource absent, including
//     "exists but caller lacks visibility" -> 404
//   - Forbidden: identity mismatch on an individual-workspace mutation -> 403
//   - Conflict: duplicate personal workspace for the same user+type -> 409
//   - PartialFailure: a cascading delete completed some but not all steps;
//     carries per-category counts of what was actually removed -> 500 with a
//     structured breakdown
//
// None of these are retried automatically. Anything that is not an apperr
// is treated as an internal server error and logged with context.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the caller-facing error categories.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindConflict
	KindPartialFailure
)

// Error is a typed, caller-facing error.
type Error struct {
	Kind    Kind
	Message string
	// Counts holds per-category deleted counts for PartialFailure errors.
	Counts map[string]int64
	// Err is the underlying cause, if any. Not exposed to callers.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation constructs a 400-mapped error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound constructs a 404-mapped error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden constructs a 403-mapped error.
func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Conflict constructs a 409-mapped error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// PartialFailure constructs an error carrying the per-category counts that
// completed before the failure, plus the underlying cause.
func PartialFailure(msg string, counts map[string]int64, err error) *Error {
	return &Error{Kind: KindPartialFailure, Message: msg, Counts: counts, Err: err}
}

// Internal wraps an unexpected failure. The message is caller-safe; the
// cause is for logs only.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// As extracts an *Error from err, if present.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
