// ABOUTME: Error taxonomy shared by the auth core and its HTTP surface
// ABOUTME: Classifies failures into kinds that map 1:1 to transport statuses

package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Every error that crosses a service boundary
// carries exactly one kind; the HTTP layer maps kinds to status codes and
// never inspects anything else.
type Kind int

const (
	// KindUnauthenticated covers missing, malformed, expired, or
	// badly-signed credentials. Token-level detail stays internal.
	KindUnauthenticated Kind = iota

	// KindForbidden covers a valid credential that lacks a membership row
	// or whose role does not grant the requested capability.
	KindForbidden

	// KindNotFound covers a target entity that does not exist after the
	// caller's access has already been established.
	KindNotFound

	// KindConflict covers uniqueness violations (duplicate email,
	// duplicate membership).
	KindConflict

	// KindInvalidOperation covers structurally disallowed actions, such
	// as an owner removing their own membership.
	KindInvalidOperation

	// KindValidation covers malformed request payloads.
	KindValidation

	// KindInternal covers store or hasher failures. The caller sees a
	// generic message; the cause is logged with full detail.
	KindInternal
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindValidation:
		return "validation"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Message is safe to show to the caller;
// Err holds the internal cause (if any) and is never serialized.
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

// Unwrap exposes the internal cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a caller-facing message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a classified error around an internal cause. The message is
// what the caller sees; the cause is preserved for logging.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Unauthenticated creates a KindUnauthenticated error.
func Unauthenticated(format string, args ...any) *Error {
	return New(KindUnauthenticated, format, args...)
}

// Forbidden creates a KindForbidden error.
func Forbidden(format string, args ...any) *Error {
	return New(KindForbidden, format, args...)
}

// NotFound creates a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Conflict creates a KindConflict error.
func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// InvalidOperation creates a KindInvalidOperation error.
func InvalidOperation(format string, args ...any) *Error {
	return New(KindInvalidOperation, format, args...)
}

// Validation creates a KindValidation error.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// Internal wraps an internal cause behind a generic caller-facing message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf returns the kind of a classified error, or KindInternal for any
// unclassified error so that raw causes never leak to callers.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message of a classified error. For
// unclassified or internal errors it returns a generic message.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) && fe.Kind != KindInternal {
		return fe.Message
	}
	return "internal error"
}
