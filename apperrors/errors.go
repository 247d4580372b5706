// Package apperrors defines the failure taxonomy shared by every workflow.
// Errors carry a Kind and a human message; the HTTP layer picks status codes.
package apperrors

import "errors"

type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindAuth        Kind = "AUTH"
	KindConflict    Kind = "CONFLICT"
	KindPersistence Kind = "PERSISTENCE"
)

// Reason refines an Auth failure.
type Reason string

const (
	ReasonInvalidScheme      Reason = "INVALID_SCHEME"
	ReasonInvalidOrExpired   Reason = "INVALID_OR_EXPIRED"
	ReasonInvalidCredentials Reason = "INVALID_CREDENTIALS"
)

type Error struct {
	Kind    Kind
	Reason  Reason
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Auth(reason Reason, message string) *Error {
	return &Error{Kind: KindAuth, Reason: reason, Message: message}
}

func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func ReasonOf(err error) Reason {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}
