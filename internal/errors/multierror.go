package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// MultiError is an error type to track multiple errors. It is used to collect
// non-fatal problems (for example unreadable directories during a scan) without
// aborting the operation that produced them.
type MultiError struct {
	inner *multierror.Error
}

// Error implements the error interface.
func (errs *MultiError) Error() string {
	wrapped := errs.WrappedErrors()

	lines := make([]string, 0, len(wrapped))
	for _, err := range wrapped {
		lines = append(lines, addIndent(err.Error()))
	}

	errStr := strings.Join(lines, "\n")

	if len(wrapped) == 1 {
		return fmt.Sprintf("error occurred:\n%s\n", errStr)
	}

	return fmt.Sprintf("%d errors occurred:\n%s\n", len(wrapped), errStr)
}

// WrappedErrors returns the error slice that this MultiError is wrapping.
func (errs *MultiError) WrappedErrors() []error {
	if errs == nil || errs.inner == nil {
		return nil
	}

	return errs.inner.WrappedErrors()
}

// Unwrap returns the wrapped errors, making MultiError compatible with errors.Is/As.
func (errs *MultiError) Unwrap() []error {
	return errs.WrappedErrors()
}

// ErrorOrNil returns an error interface if this MultiError represents
// a non-empty list of errors, or returns nil otherwise.
func (errs *MultiError) ErrorOrNil() error {
	if errs == nil || errs.inner == nil {
		return nil
	}

	if err := errs.inner.ErrorOrNil(); err != nil {
		return errs
	}

	return nil
}

// Len returns the number of wrapped errors.
func (errs *MultiError) Len() int {
	if errs == nil || errs.inner == nil {
		return 0
	}

	return len(errs.inner.Errors)
}

// Append is a helper function that will append more errors
// onto a MultiError in order to create a larger multi-error.
func (errs *MultiError) Append(appendErrs ...error) *MultiError {
	if errs == nil {
		errs = &MultiError{inner: new(multierror.Error)}
	}

	return &MultiError{inner: multierror.Append(errs.inner, appendErrs...)}
}

func addIndent(str string) string {
	rawLines := strings.Split(strings.ReplaceAll(str, "\r\n", "\n"), "\n")

	lines := make([]string, 0, len(rawLines))

	for i, line := range rawLines {
		format := "  %s"
		if i == 0 {
			format = "* %s"
		}

		lines = append(lines, fmt.Sprintf(format, line))
	}

	return strings.Join(lines, "\n")
}
