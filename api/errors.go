// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the cputopo library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrNotSupported   = fmt.Errorf("operation not supported on this platform")
	ErrNotInitialized = fmt.Errorf("topology not initialized")
	ErrAllocFailed    = fmt.Errorf("allocation failed")
	ErrAffinityQuery  = fmt.Errorf("cannot read thread affinity")
	ErrAffinityApply  = fmt.Errorf("cannot set thread affinity")
	ErrDescribe       = fmt.Errorf("processor description failed")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeNotSupported
	ErrCodeAffinity
	ErrCodeAlloc
	ErrCodeDescribe
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause attaches an underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}
