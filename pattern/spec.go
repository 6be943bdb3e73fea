package pattern

import (
	"strconv"
	"strings"
)

// SpecKind is the value type a format spec declares.
type SpecKind int

const (
	// KindString matches any run of characters and keeps the captured text as-is.
	KindString SpecKind = iota
	// KindInt matches a run of digits and coerces the captured text to an integer.
	KindInt
)

// String returns a string representation of the SpecKind.
func (k SpecKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	default:
		return "unknown"
	}
}

// Spec is the parsed form of the format hint that may follow a placeholder
// name, as in {year:04d}. The grammar is a stable mini-language:
//
//	spec := ["0"] [width] type
//	type := "d" | "s"
//
// "d" restricts the placeholder to digits and types the captured value as an
// integer. "s" (the default when no spec is given) matches any text. A width
// forces an exact capture length, which disambiguates adjacent placeholders
// like {year:4d}{month:2d}. The zero flag pads composed values; it is only
// meaningful together with a width.
type Spec struct {
	// Kind is the declared value type.
	Kind SpecKind
	// Width is the exact capture length, or 0 when unconstrained.
	Width int
	// ZeroPad pads composed numeric values with leading zeros up to Width.
	ZeroPad bool
}

// DefaultSpec is the spec of a placeholder without a format hint.
var DefaultSpec = Spec{Kind: KindString}

// ParseSpec parses the text after the colon of a {name:spec} placeholder.
func ParseSpec(str string) (Spec, error) {
	if str == "" {
		return Spec{}, newSpecError("empty format spec")
	}

	spec := Spec{}
	rest := str

	if strings.HasPrefix(rest, "0") && len(rest) > 1 {
		spec.ZeroPad = true
		rest = rest[1:]
	}

	if i := len(rest) - 1; i >= 0 {
		switch rest[i] {
		case 'd':
			spec.Kind = KindInt
		case 's':
			spec.Kind = KindString
		default:
			return Spec{}, newSpecError("format spec must end in 'd' or 's'")
		}

		rest = rest[:i]
	}

	if rest != "" {
		width, err := strconv.Atoi(rest)
		if err != nil || width <= 0 {
			return Spec{}, newSpecError("format spec width must be a positive integer")
		}

		spec.Width = width
	}

	if spec.ZeroPad && spec.Width == 0 {
		return Spec{}, newSpecError("zero-pad flag requires a width")
	}

	if spec.ZeroPad && spec.Kind != KindInt {
		return Spec{}, newSpecError("zero-pad flag requires a numeric spec")
	}

	return spec, nil
}

// String renders the spec back into its template form, without the colon.
// The default spec renders as the empty string.
func (s Spec) String() string {
	var b strings.Builder

	if s.ZeroPad {
		b.WriteByte('0')
	}

	if s.Width > 0 {
		b.WriteString(strconv.Itoa(s.Width))
	}

	if s.Kind == KindInt {
		b.WriteByte('d')
	} else if s.Width > 0 || s.ZeroPad {
		b.WriteByte('s')
	}

	return b.String()
}

// specParseError exists so the spec parser has a single place to produce errors
// before the enclosing lexer wraps them with template position information.
type specParseError string

func (e specParseError) Error() string { return string(e) }

func newSpecError(msg string) error { return specParseError(msg) }
