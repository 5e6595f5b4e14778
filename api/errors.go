// File: api/errors.go
// Package api defines the public contract surface of blockmem.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error types and error handling utilities shared by allocators,
// blocks, views and buffers.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrBadValue     = fmt.Errorf("bad value")
	ErrNoMemory     = fmt.Errorf("no memory")
	ErrNoPermission = fmt.Errorf("usage not permitted")
	ErrDuplicate    = fmt.Errorf("already registered")
	ErrNotFound     = fmt.Errorf("not found")
	ErrRefused      = fmt.Errorf("provider refused")
	ErrBlocking     = fmt.Errorf("operation would block")
	ErrTimedOut     = fmt.Errorf("operation timed out")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	CodeOK ErrorCode = iota
	CodeBadValue
	CodeNoMemory
	CodeNoPermission
	CodeDuplicate
	CodeNotFound
	CodeRefused
	CodeBlocking
	CodeTimedOut
)

// sentinel maps codes to their matching sentinel error so that
// errors.Is works on structured errors too.
func (c ErrorCode) sentinel() error {
	switch c {
	case CodeBadValue:
		return ErrBadValue
	case CodeNoMemory:
		return ErrNoMemory
	case CodeNoPermission:
		return ErrNoPermission
	case CodeDuplicate:
		return ErrDuplicate
	case CodeNotFound:
		return ErrNotFound
	case CodeRefused:
		return ErrRefused
	case CodeBlocking:
		return ErrBlocking
	case CodeTimedOut:
		return ErrTimedOut
	default:
		return nil
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is reports whether the target is this error's sentinel.
func (e *Error) Is(target error) bool {
	return target == e.Code.sentinel()
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

// CodeOf extracts the ErrorCode carried by err, or CodeOK for nil.
// Errors without a structured code report CodeRefused.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeRefused
}
