package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an operation failure so controllers can map it to a
// transport status without inspecting message text.
type Kind string

const (
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindPermissionDenied   Kind = "PERMISSION_DENIED"
	KindInvalidArgument    Kind = "INVALID_ARGUMENT"
	KindNotFound           Kind = "NOT_FOUND"
	KindFailedPrecondition Kind = "FAILED_PRECONDITION"
	KindInternal           Kind = "INTERNAL"
)

// Error is the typed error used across service boundaries. Guard and
// validation failures travel verbatim to the caller; unexpected store errors
// are wrapped as KindInternal with the cause preserved for logs only.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, message)
}

func PermissionDenied(message string) *Error {
	return New(KindPermissionDenied, message)
}

func InvalidArgument(message string) *Error {
	return New(KindInvalidArgument, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func FailedPrecondition(message string) *Error {
	return New(KindFailedPrecondition, message)
}

// Internal wraps an unexpected failure without leaking store detail to the
// client; the cause stays reachable through errors.Unwrap for logging.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf extracts the kind from any error in the chain, defaulting to
// KindInternal for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to its transport status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindFailedPrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
