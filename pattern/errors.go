package pattern

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/filefinder/internal/errors"
)

// SyntaxError represents a malformed template, such as unbalanced braces, an
// empty placeholder name or a duplicate placeholder. It is surfaced by Compile
// and never recovered from.
type SyntaxError struct {
	Message  string
	Template string
	Position int
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d in template %q: %s", e.Position, e.Template, e.Message)
}

// NewSyntaxError creates a new SyntaxError with the given message and position.
func NewSyntaxError(message, template string, position int) error {
	return errors.New(SyntaxError{Message: message, Template: template, Position: position})
}

// MissingValueError is returned by Format when the supplied value mapping does
// not cover every placeholder of the pattern. It is fatal to that call only.
type MissingValueError struct {
	Template string
	Keys     []string
}

func (e MissingValueError) Error() string {
	return fmt.Sprintf("missing values for placeholders %s in template %q", strings.Join(e.Keys, ", "), e.Template)
}

// InvalidValueError is returned by Format when a supplied value cannot be
// rendered under the placeholder's format spec, for example text under a
// digits-only spec or a value that does not fit a fixed width.
type InvalidValueError struct {
	Key    string
	Value  string
	Reason string
}

func (e InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for placeholder %q: %s", e.Value, e.Key, e.Reason)
}

// AmbiguousBindingError reports that a name matched a joined pattern, but a
// placeholder occurring at both the path and the file level captured two
// different values. The offending entry is dropped and the query continues.
type AmbiguousBindingError struct {
	Name   string
	Key    string
	Values []string
}

func (e AmbiguousBindingError) Error() string {
	return fmt.Sprintf("placeholder %q bound to conflicting values %s in %q",
		e.Key, strings.Join(e.Values, " vs "), e.Name)
}
