// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Common engine errors
var (
	ErrTransport       = errors.New("transport failure")
	ErrParse           = errors.New("failed to parse page")
	ErrMalformedNumber = errors.New("malformed number")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeTransport       ErrorCode = "TRANSPORT"
	ErrCodeParse           ErrorCode = "PARSE"
	ErrCodeMalformedNumber ErrorCode = "MALFORMED_NUMBER"
)

// Error wraps errors with a code and additional context
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches errors with the same code, the sentinel for the code, and
// ErrParse for malformed numbers.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	switch target {
	case ErrTransport:
		return e.Code == ErrCodeTransport
	case ErrParse:
		return e.Code == ErrCodeParse || e.Code == ErrCodeMalformedNumber
	case ErrMalformedNumber:
		return e.Code == ErrCodeMalformedNumber
	}
	return false
}

// NewError creates a new Error
func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// NewTransportError reports a failed network call for url
func NewTransportError(url string, err error) *Error {
	return NewError(ErrCodeTransport, "request failed", err).WithDetail("url", url)
}

// NewParseError reports a missing element on an otherwise fetched page
func NewParseError(selector string) *Error {
	return NewError(ErrCodeParse, fmt.Sprintf("missing element %q", selector), nil).
		WithDetail("selector", selector)
}

// NewMalformedNumberError reports numeric text that contains no digits
func NewMalformedNumberError(text string) *Error {
	return NewError(ErrCodeMalformedNumber, fmt.Sprintf("no digits in %q", text), nil).
		WithDetail("text", text)
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.Details[key] = value
	return e
}
