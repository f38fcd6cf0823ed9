// Package errors defines the coded errors shared by the CLI and the API.
//
// Every failure a user can cause carries an INVALID_* code; the API answers
// those with 400 and the message from [UserMessage]. Anything else is a
// server problem.
//
//	if err := errors.ValidateGoal(goal); err != nil {
//	    return err // INVALID_INPUT: goal must be a positive integer, got -1
//	}
//	err = errors.Wrap(errors.ErrCodeSurfaceAllocation, cause, "allocate %dx%d surface", w, h)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code is a machine-readable error code. Codes starting with INVALID_ are
// caller mistakes.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	ErrCodeSurfaceAllocation Code = "SURFACE_ALLOCATION"
	ErrCodeCacheUnavailable  Code = "CACHE_UNAVAILABLE"
	ErrCodeInternal          Code = "INTERNAL_ERROR"
)

// Validation reports whether c marks invalid caller input.
func (c Code) Validation() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Status is the HTTP status the API answers with for c.
func (c Code) Status() int {
	switch {
	case c.Validation():
		return http.StatusBadRequest
	case c == ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error carries a Code, a message safe to show users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has code.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsValidation reports whether err is a caller mistake.
func IsValidation(err error) bool {
	return GetCode(err).Validation()
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error, without code or
// cause, or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err to a response status. Errors without a code are
// server errors.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return GetCode(err).Status()
}
