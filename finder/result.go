package finder

import (
	"fmt"
	"iter"
	"strings"

	"github.com/gruntwork-io/filefinder/internal/errors"
	"github.com/gruntwork-io/filefinder/pattern"
)

// Entry is one discovered filesystem path together with the placeholder values
// extracted from its name.
type Entry struct {
	// Path is the discovered path: a directory for FindPaths rows, a file for
	// FindFiles rows.
	Path string
	// Values maps each resolved placeholder to its extracted value.
	Values pattern.Values
}

// Result is an ordered table of discovered entries. Row order reflects scan
// order, so repeated queries over an unchanged tree are reproducible. Rows
// with identical path and values are collapsed at insertion (the first
// occurrence survives); identical values under two different paths are both
// kept, since those are distinct files the caller must disambiguate.
type Result struct {
	entries  []Entry
	seen     map[string]struct{}
	keys     []string
	specs    func(string) (pattern.Spec, bool)
	warnings *errors.MultiError
}

func newResult(keys []string, specs func(string) (pattern.Spec, bool)) *Result {
	return &Result{
		seen:  map[string]struct{}{},
		keys:  keys,
		specs: specs,
	}
}

// append adds an entry unless an identical (path, values) row is already
// present.
func (r *Result) append(entry Entry) {
	key := dedupKey(entry)
	if _, dup := r.seen[key]; dup {
		return
	}

	r.seen[key] = struct{}{}
	r.entries = append(r.entries, entry)
}

func (r *Result) warn(err error) {
	r.warnings = r.warnings.Append(err)
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.entries)
}

// At returns the i-th row in scan order.
func (r *Result) At(i int) Entry {
	return r.entries[i]
}

// All iterates over the rows in scan order.
func (r *Result) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, entry := range r.entries {
			if !yield(i, entry) {
				return
			}
		}
	}
}

// Paths returns the path column in row order.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.entries))
	for i, entry := range r.entries {
		paths[i] = entry.Path
	}

	return paths
}

// Keys returns the placeholder column names in declaration order.
func (r *Result) Keys() []string {
	return r.keys
}

// Warnings returns the non-fatal problems recorded while producing this table,
// such as unreadable directories or entries dropped for conflicting placeholder
// bindings.
func (r *Result) Warnings() []error {
	return r.warnings.WrappedErrors()
}

// Search returns a new Result restricted to the rows whose values pass the
// given filters, preserving relative row order. It re-filters the populated
// table without touching the filesystem.
func (r *Result) Search(filters Filters) (*Result, error) {
	if err := filters.validate(r.keys); err != nil {
		return nil, err
	}

	out := newResult(r.keys, r.specs)

	for _, entry := range r.entries {
		if filters.matches(entry.Values, r.specs) {
			out.append(entry)
		}
	}

	return out, nil
}

// CombineBy joins the given value columns of every row into a single string
// per row, separated by sep. With no keys, all placeholder columns are joined
// in declaration order.
func (r *Result) CombineBy(sep string, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		keys = r.keys
	}

	for _, key := range keys {
		if !contains(r.keys, key) {
			return nil, NewUnknownKeyError([]string{key}, r.keys)
		}
	}

	combined := make([]string, len(r.entries))

	for i, entry := range r.entries {
		parts := make([]string, 0, len(keys))

		for _, key := range keys {
			if val, ok := entry.Values[key]; ok {
				parts = append(parts, val.Text())
			} else {
				parts = append(parts, "*")
			}
		}

		combined[i] = strings.Join(parts, sep)
	}

	return combined, nil
}

// String renders a compact view of the table for debugging.
func (r *Result) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "<Result: %d rows>\n", len(r.entries))

	for _, entry := range r.entries {
		fmt.Fprintf(&b, "%s\t%s\n", entry.Path, entry.Values)
	}

	return b.String()
}

func dedupKey(entry Entry) string {
	var b strings.Builder

	b.WriteString(entry.Path)

	for _, key := range entry.Values.Keys() {
		val := entry.Values[key]
		fmt.Fprintf(&b, "\x00%s=%s:%s", key, val.Kind(), val.Text())
	}

	return b.String()
}

func contains(strs []string, search string) bool {
	for _, str := range strs {
		if str == search {
			return true
		}
	}

	return false
}
