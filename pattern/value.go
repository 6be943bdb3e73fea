package pattern

import (
	"sort"
	"strconv"
	"strings"
)

// Value is a captured or supplied placeholder value. It is an explicit tagged
// type: a value is either text or an integer, decided by the placeholder's
// declared format spec, never by speculative conversion of the text.
type Value struct {
	text string
	num  int64
	kind SpecKind
}

// String creates a text Value.
func String(text string) Value {
	return Value{text: text, kind: KindString}
}

// Int creates an integer Value.
func Int(n int64) Value {
	return Value{num: n, kind: KindInt}
}

// Kind returns the kind of the value.
func (v Value) Kind() SpecKind {
	return v.kind
}

// Text returns the textual form of the value. Integer values render in
// plain decimal without padding.
func (v Value) Text() string {
	if v.kind == KindInt {
		return strconv.FormatInt(v.num, 10)
	}

	return v.text
}

// Int64 returns the numeric form of the value and whether the value is an integer.
func (v Value) Int64() (int64, bool) {
	return v.num, v.kind == KindInt
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	if v.kind == KindInt {
		return v.num == other.num
	}

	return v.text == other.text
}

// Values maps placeholder names to their values.
type Values map[string]Value

// Keys returns the value names in sorted order.
func (vals Values) Keys() []string {
	keys := make([]string, 0, len(vals))
	for key := range vals {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Clone returns a shallow copy of the mapping.
func (vals Values) Clone() Values {
	clone := make(Values, len(vals))
	for key, val := range vals {
		clone[key] = val
	}

	return clone
}

// Equal reports whether two mappings bind the same names to equal values.
func (vals Values) Equal(other Values) bool {
	if len(vals) != len(other) {
		return false
	}

	for key, val := range vals {
		otherVal, ok := other[key]
		if !ok || !val.Equal(otherVal) {
			return false
		}
	}

	return true
}

// String renders the mapping as "a=1, b=x" in sorted key order.
func (vals Values) String() string {
	parts := make([]string, 0, len(vals))
	for _, key := range vals.Keys() {
		parts = append(parts, key+"="+vals[key].Text())
	}

	return strings.Join(parts, ", ")
}

// Coerce converts raw text into a Value under the given spec: digit runs under
// an integer spec become integers, and any other text stays a string. It never
// fails; non-numeric text under an integer spec is kept as a string value so
// callers can still compare it.
func Coerce(text string, spec Spec) Value {
	if spec.Kind == KindInt {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(n)
		}
	}

	return String(text)
}
