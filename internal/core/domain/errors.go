package domain

import "fmt"

// ErrorKind classifies a domain error so the HTTP layer can map it to a
// status code without inspecting messages.
type ErrorKind string

const (
	KindValidation      ErrorKind = "VALIDATION"
	KindMalformedBody   ErrorKind = "MALFORMED_BODY"
	KindBadParameter    ErrorKind = "BAD_PARAMETER"
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindConflict        ErrorKind = "CONFLICT"
	KindBusinessRule    ErrorKind = "BUSINESS_RULE"
	KindRateLimited     ErrorKind = "RATE_LIMITED"
	KindInternal        ErrorKind = "INTERNAL"
)

// Error is the single error type services return. Fields carries per-field
// validation messages; RetryAfter is only set for rate-limit rejections.
type Error struct {
	Kind       ErrorKind
	Detail     string
	Fields     map[string]string
	RetryAfter int64
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

func NewValidation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: "One or more fields are invalid", Fields: fields}
}

func NewMalformedBody(detail string) *Error {
	return &Error{Kind: KindMalformedBody, Detail: detail}
}

func NewBadParameter(detail string) *Error {
	return &Error{Kind: KindBadParameter, Detail: detail}
}

func NewUnauthenticated(detail string) *Error {
	return &Error{Kind: KindUnauthenticated, Detail: detail}
}

func NewForbidden(detail string) *Error {
	return &Error{Kind: KindForbidden, Detail: detail}
}

func NewNotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func NewConflict(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

func NewBusinessRule(detail string) *Error {
	return &Error{Kind: KindBusinessRule, Detail: detail}
}

func NewRateLimited(detail string, retryAfter int64) *Error {
	return &Error{Kind: KindRateLimited, Detail: detail, RetryAfter: retryAfter}
}

// NewInternal wraps an unexpected error. The cause is logged server-side and
// never serialized to clients.
func NewInternal(cause error) *Error {
	return &Error{Kind: KindInternal, Detail: "An unexpected error occurred", cause: cause}
}

// AsError extracts a *Error from err, wrapping unknown errors as INTERNAL.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if de, ok := err.(*Error); ok {
		return de
	}
	return NewInternal(err)
}
