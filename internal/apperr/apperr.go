package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for callers. Eligibility kinds are expected
// business outcomes; IntegrityFault is a defect and must reach operators.
type Kind string

const (
	KindInternal          Kind = "internal"
	KindNotFound          Kind = "not_found"
	KindWindowClosed      Kind = "window_closed"
	KindAlreadyCompleted  Kind = "already_completed"
	KindAttemptsExhausted Kind = "attempts_exhausted"
	KindInvalidArgument   Kind = "invalid_argument"
	KindIntegrityFault    Kind = "integrity_fault"
	KindPermissionDenied  Kind = "permission_denied"
	KindConflict          Kind = "conflict"
)

var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrWindowClosed      = &Error{Kind: KindWindowClosed}
	ErrAlreadyCompleted  = &Error{Kind: KindAlreadyCompleted}
	ErrAttemptsExhausted = &Error{Kind: KindAttemptsExhausted}
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
	ErrIntegrityFault    = &Error{Kind: KindIntegrityFault}
	ErrPermissionDenied  = &Error{Kind: KindPermissionDenied}
	ErrConflict          = &Error{Kind: KindConflict}
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := string(e.Kind)
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in the chain, KindInternal otherwise.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsEligibility reports whether the kind is an expected gate outcome.
func IsEligibility(kind Kind) bool {
	switch kind {
	case KindWindowClosed, KindAlreadyCompleted, KindAttemptsExhausted:
		return true
	}
	return false
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindWindowClosed, KindAlreadyCompleted, KindAttemptsExhausted, KindConflict:
		return http.StatusConflict
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindPermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
