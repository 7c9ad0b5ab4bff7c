// file: internals/helpers/errs/errs.go
package errs

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

/* ===============================
   Application error taxonomy
=================================*/

type Kind string

const (
	KindValidation    Kind = "VALIDATION"     // bad input (non-positive amount, missing ids)
	KindNotFound      Kind = "NOT_FOUND"      // school/student/class/fee structure absent
	KindConfiguration Kind = "CONFIGURATION"  // no active criteria, no progression rule, dangling rule target
	KindConflict      Kind = "CONFLICT"       // duplicate alumni row, duplicate payment reference
	KindState         Kind = "STATE"          // operation not allowed in current state
	KindInternal      Kind = "INTERNAL"       // store failure and everything else fatal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

/* ===============================
   Constructors
=================================*/

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Configuration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func State(format string, args ...any) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

/* ===============================
   Inspection
=================================*/

// KindOf returns the taxonomy kind of err, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// Fatal reports whether err should abort a whole batch instead of being
// recorded as a per-item result.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == KindInternal
}

// IsUniqueViolation detects a Postgres unique_violation (23505), the backstop
// for check-then-insert idempotency keys.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
