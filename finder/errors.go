package finder

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/filefinder/internal/errors"
)

// UnknownKeyError is returned when a filter names a placeholder that the
// queried pattern does not declare. Silently ignoring such a filter would
// return results the caller did not ask for.
type UnknownKeyError struct {
	Keys      []string
	Available []string
}

func (e UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown filter keys %s, pattern declares %s",
		strings.Join(e.Keys, ", "), strings.Join(e.Available, ", "))
}

// NewUnknownKeyError creates a new UnknownKeyError.
func NewUnknownKeyError(keys, available []string) error {
	return errors.New(UnknownKeyError{Keys: keys, Available: available})
}

// ScanWarning records a non-fatal problem encountered while scanning, such as
// an unreadable directory or a nonexistent path fragment. Warnings are
// collected on the Result and never abort the query.
type ScanWarning struct {
	Path  string
	Cause error
}

func (e ScanWarning) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scanning %q: %v", e.Path, e.Cause)
	}

	return fmt.Sprintf("scanning %q: path does not exist", e.Path)
}

func (e ScanWarning) Unwrap() error {
	return e.Cause
}
