// Package errors contains helper functions for wrapping errors with stack traces
// and for collecting non-fatal warnings into a single multi-error.
package errors

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New wraps the given value in an error type that contains the stack trace.
func New(e any) error {
	return goerrors.Wrap(e, 1)
}

// Errorf creates a new error and wraps it in an error type that contains the stack trace.
func Errorf(message string, args ...any) error {
	err := fmt.Errorf(message, args...)
	return goerrors.Wrap(err, 1)
}

// WithStackTrace wraps the given error in an error type that contains the stack trace.
// If the given error already has a stack trace, it is used directly. If the given error
// is nil, return nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix wraps the given error in an error type that contains the stack
// trace and has the given message prepended as part of the error message. If the given
// error is nil, return nil.
func WithStackTraceAndPrefix(err error, message string, args ...any) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// IsError returns true if actual is the same type of error as expected. This method
// unwraps the given error objects (if they are wrapped in objects with a stacktrace)
// and then does a simple equality check on them.
func IsError(actual error, expected error) bool {
	return goerrors.Is(actual, expected)
}

// IsContextCanceled returns true if the error was caused by context.Canceled,
// which is not really an error.
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// ErrorStack returns a string that contains both the error message and the callstack,
// if one is available.
func ErrorStack(err error) string {
	if err == nil {
		return ""
	}

	goerr := new(goerrors.Error)
	if errors.As(err, &goerr) {
		return goerr.ErrorStack()
	}

	return err.Error()
}

// ContainsStackTrace returns true if the given error contains a stack trace.
// Useful to avoid creating a nested stack trace.
func ContainsStackTrace(err error) bool {
	for {
		if _, ok := err.(interface{ ErrorStack() string }); ok {
			return true
		}

		if err = errors.Unwrap(err); err == nil {
			break
		}
	}

	return false
}

// Recover tries to recover from panics, and if it succeeds, calls the given onPanic
// function with an error that explains the cause of the panic. This function should
// only be called from a defer statement.
func Recover(onPanic func(cause error)) {
	if rec := recover(); rec != nil {
		err, isError := rec.(error)
		if !isError {
			err = fmt.Errorf("%v", rec)
		}

		onPanic(WithStackTrace(err))
	}
}
