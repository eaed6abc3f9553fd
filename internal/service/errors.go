// Package service implements the application operations behind the
// route layer: credentials, todo mutations, and profile mutations.
// Every operation runs the same pipeline: authorize, validate,
// normalize, persist.
package service

import "errors"

// Kind classifies an expected, recoverable operation failure. Anything
// outside this closed set propagates as a fatal error.
type Kind uint8

const (
	// KindValidation is a failed input rule, reported verbatim.
	KindValidation Kind = iota + 1
	// KindUnauthenticated is the uniform no-identity rejection.
	KindUnauthenticated
	// KindNotFound covers both missing records and records owned by
	// someone else; the two are deliberately indistinguishable.
	KindNotFound
	// KindConflict is a uniqueness conflict classified by field.
	KindConflict
	// KindFailed is an unexpected persistence failure translated to a
	// generic message after logging.
	KindFailed
)

// Error is an expected operation outcome with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// errUnauthenticated is the single rejection every operation returns
// when no identity resolves, regardless of cause.
var errUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "authentication required"}

func validationErr(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFoundErr(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflictErr(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func failedErr(msg string) *Error {
	return &Error{Kind: KindFailed, Message: msg}
}

// AsError unwraps err into a service Error, reporting whether it is
// one of the expected recoverable outcomes.
func AsError(err error) (*Error, bool) {
	var serr *Error
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}
