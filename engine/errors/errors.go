// Package errors defines the typed, coded failures surfaced by the upgrade
// engine. Failures short-circuit the whole run; no component attempts local
// recovery or partial commit, and none are silently swallowed.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// CodedError is an engine failure carrying a stable error code. Callers
// branch on the code through the Is* predicates instead of matching message
// text.
type CodedError struct {
	code ErrorCode
	err  error
}

// NewCodedError constructs a coded error from a format string.
func NewCodedError(code ErrorCode, format string, args ...interface{}) CodedError {
	return CodedError{
		code: code,
		err:  fmt.Errorf(format, args...),
	}
}

// WrapCodedError wraps an underlying error under a code, keeping the cause
// reachable through errors.Unwrap.
func WrapCodedError(code ErrorCode, err error, prefix string) CodedError {
	return CodedError{
		code: code,
		err:  fmt.Errorf("%s: %w", prefix, err),
	}
}

// Code returns the error's classification code.
func (e CodedError) Code() ErrorCode {
	return e.code
}

func (e CodedError) Error() string {
	return fmt.Sprintf("%s %s", e.code, e.err)
}

func (e CodedError) Unwrap() error {
	return e.err
}

// HasErrorCode reports whether err or any error in its chain carries the
// given code.
func HasErrorCode(err error, code ErrorCode) bool {
	var coded CodedError
	return stdErrors.As(err, &coded) && coded.Code() == code
}
