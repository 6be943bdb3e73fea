package finder

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/gruntwork-io/filefinder/pattern"
)

// Constraint restricts the values a placeholder may take in a query. The zero
// Constraint is unconstrained and passes every value.
type Constraint struct {
	values []string
}

// Eq constrains a placeholder to exactly one value. A value containing glob
// metacharacters ('*', '?', '[', '{') is matched as a glob instead of by
// equality, mirroring how such values behave when fed into the filesystem
// scan.
func Eq(value string) Constraint {
	return Constraint{values: []string{value}}
}

// EqInt constrains a placeholder to one integer value.
func EqInt(n int64) Constraint {
	return Eq(strconv.FormatInt(n, 10))
}

// In constrains a placeholder to a set of allowed values; membership passes.
func In(values ...string) Constraint {
	return Constraint{values: append([]string(nil), values...)}
}

// InInts constrains a placeholder to a set of allowed integer values.
func InInts(ns ...int64) Constraint {
	values := make([]string, len(ns))
	for i, n := range ns {
		values[i] = strconv.FormatInt(n, 10)
	}

	return Constraint{values: values}
}

// Values returns the raw constraint values.
func (c Constraint) Values() []string {
	return c.values
}

// unconstrained returns true if the constraint passes every value.
func (c Constraint) unconstrained() bool {
	return len(c.values) == 0
}

// enumerable returns true if the constraint is a finite set of literal values
// that can each be substituted into a scan string. Glob-valued constraints are
// not enumerable; they stay wildcards at scan time and are matched during
// extraction instead.
func (c Constraint) enumerable() bool {
	if c.unconstrained() {
		return false
	}

	for _, value := range c.values {
		if hasGlobMeta(value) {
			return false
		}
	}

	return true
}

// matches reports whether the given parsed value passes the constraint.
// Constraint values are coerced under the placeholder's format spec before
// comparison, so Eq("07") passes a {n:02d} value of Int(7).
func (c Constraint) matches(val pattern.Value, spec pattern.Spec) bool {
	if c.unconstrained() {
		return true
	}

	for _, raw := range c.values {
		if pattern.Coerce(raw, spec).Equal(val) {
			return true
		}

		if hasGlobMeta(raw) {
			if g, err := glob.Compile(raw); err == nil && g.Match(val.Text()) {
				return true
			}
		}
	}

	return false
}

// Filters maps placeholder names to constraints. Placeholders absent from the
// map are unconstrained. A Filters value is consumed by a single query and
// never stored.
type Filters map[string]Constraint

// validate rejects filters naming placeholders the pattern does not declare.
func (f Filters) validate(available []string) error {
	var unknown []string

	for key := range f {
		found := false

		for _, name := range available {
			if name == key {
				found = true
				break
			}
		}

		if !found {
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)

		return NewUnknownKeyError(unknown, available)
	}

	return nil
}

// matches reports whether every constraint passes for the given values.
// Placeholders the value mapping does not bind (for example file-level
// placeholders in a path-level row) pass vacuously.
func (f Filters) matches(values pattern.Values, spec func(string) (pattern.Spec, bool)) bool {
	for key, constraint := range f {
		val, bound := values[key]
		if !bound {
			continue
		}

		keySpec, ok := spec(key)
		if !ok {
			keySpec = pattern.DefaultSpec
		}

		if !constraint.matches(val, keySpec) {
			return false
		}
	}

	return true
}

// combinations expands the enumerable constraints into the cartesian product
// of their values, yielding one scan per combination. If the product exceeds
// maxScans, set-valued constraints fall back to wildcards (leaving a single
// scan) and are enforced by extraction-time filtering alone.
func (f Filters) combinations(spec func(string) (pattern.Spec, bool), maxScans int) []pattern.Values {
	type keyValues struct {
		key    string
		values []string
	}

	var enumerated []keyValues

	total := 1

	for _, key := range sortedKeys(f) {
		constraint := f[key]
		if !constraint.enumerable() {
			continue
		}

		enumerated = append(enumerated, keyValues{key: key, values: constraint.values})
		total *= len(constraint.values)
	}

	if total > maxScans {
		// Too many combinations to enumerate: keep only the single-valued
		// constraints in one scan.
		single := pattern.Values{}

		for _, kv := range enumerated {
			if len(kv.values) == 1 {
				single[kv.key] = coerceFor(kv.key, kv.values[0], spec)
			}
		}

		return []pattern.Values{single}
	}

	combos := []pattern.Values{{}}

	for _, kv := range enumerated {
		next := make([]pattern.Values, 0, len(combos)*len(kv.values))

		for _, combo := range combos {
			for _, value := range kv.values {
				expanded := combo.Clone()
				expanded[kv.key] = coerceFor(kv.key, value, spec)
				next = append(next, expanded)
			}
		}

		combos = next
	}

	return combos
}

func coerceFor(key, raw string, spec func(string) (pattern.Spec, bool)) pattern.Value {
	if keySpec, ok := spec(key); ok {
		return pattern.Coerce(raw, keySpec)
	}

	return pattern.String(raw)
}

func sortedKeys(f Filters) []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// hasGlobMeta returns true if the value contains characters that are special
// to glob matching.
func hasGlobMeta(value string) bool {
	return strings.ContainsAny(value, `*?[]{}\`)
}
