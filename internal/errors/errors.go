// Package errors provides coded errors for the adapter servers.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an adapter error.
type ErrorCode int

const (
	// Generic errors
	Unknown ErrorCode = -1
	None    ErrorCode = 0

	// Protocol errors (1-999)
	ParseError     ErrorCode = 1
	InvalidRequest ErrorCode = 2
	MethodNotFound ErrorCode = 3
	InvalidParams  ErrorCode = 4
	InternalError  ErrorCode = 5
	TransportError ErrorCode = 6
	TimeoutError   ErrorCode = 7

	// Capability errors (1000-1999)
	CapabilityNotSupported ErrorCode = 1000
	CapabilityError        ErrorCode = 1001

	// Resource errors (2000-2999)
	ResourceNotFound      ErrorCode = 2000
	ResourceInvalidFormat ErrorCode = 2001

	// Tool dispatch errors (3000-3999)
	ToolNotFound   ErrorCode = 3000
	ToolValidation ErrorCode = 3001
	ToolExecution  ErrorCode = 3002
	DuplicateTool  ErrorCode = 3003

	// Prompt errors (4000-4999)
	PromptNotFound ErrorCode = 4000
)

// Error is a coded error with an optional cause chain.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap implements the unwrapping interface.
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a new coded error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new coded error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithCause attaches a causal error.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// HasCode reports whether err is a coded error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// CodeOf extracts the code from an error, or Unknown for plain errors.
func CodeOf(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return Unknown
}

// MessageOf returns the bare message of a coded error, or err.Error()
// for plain errors. Used when surfacing failures to tool callers,
// which should not see the numeric code.
func MessageOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		if coded.cause != nil {
			return coded.Message + ": " + coded.cause.Error()
		}
		return coded.Message
	}
	return err.Error()
}
