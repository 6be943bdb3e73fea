package pattern

import (
	"strconv"
	"strings"

	"github.com/gruntwork-io/filefinder/internal/errors"
)

// Format substitutes a complete value mapping into the template and returns
// the literal name. Every placeholder must have a value; otherwise a
// MissingValueError is returned. Values are rendered under the placeholder's
// format spec, so {year:04d} with Int(7) yields "0007".
func (p *Pattern) Format(values Values) (string, error) {
	var missing []string

	for _, key := range p.keys {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return "", errors.New(MissingValueError{Template: p.template, Keys: missing})
	}

	var out strings.Builder

	for _, seg := range p.segments {
		if !seg.placeholder {
			out.WriteString(seg.literal)
			continue
		}

		text, err := formatValue(seg.name, values[seg.name], seg.spec)
		if err != nil {
			return "", err
		}

		out.WriteString(text)
	}

	return out.String(), nil
}

// formatValue renders one value under a format spec.
func formatValue(key string, val Value, spec Spec) (string, error) {
	text := val.Text()

	if spec.Kind == KindInt {
		n, isInt := val.Int64()
		if !isInt {
			parsed, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return "", errors.New(InvalidValueError{Key: key, Value: text, Reason: "numeric placeholder requires digits"})
			}

			n = parsed
		}

		text = strconv.FormatInt(n, 10)

		if spec.Width > 0 {
			if len(text) > spec.Width {
				return "", errors.New(InvalidValueError{Key: key, Value: text, Reason: "value exceeds width " + strconv.Itoa(spec.Width)})
			}

			text = strings.Repeat("0", spec.Width-len(text)) + text
		}

		return text, nil
	}

	if spec.Width > 0 && len(text) != spec.Width {
		return "", errors.New(InvalidValueError{Key: key, Value: text, Reason: "value must be exactly " + strconv.Itoa(spec.Width) + " characters"})
	}

	return text, nil
}

// ScanAtom is one piece of a scan segment: either literal text or a
// single-level wildcard standing in for an unresolved placeholder.
type ScanAtom struct {
	Text     string
	Wildcard bool
}

// ScanSegment is the part of a scan plan between two directory separators.
type ScanSegment struct {
	Atoms []ScanAtom
}

// IsLiteral returns true if the segment contains no wildcards.
func (s ScanSegment) IsLiteral() bool {
	for _, atom := range s.Atoms {
		if atom.Wildcard {
			return false
		}
	}

	return true
}

// LiteralText returns the concatenated text of a literal segment.
func (s ScanSegment) LiteralText() string {
	var b strings.Builder
	for _, atom := range s.Atoms {
		b.WriteString(atom.Text)
	}

	return b.String()
}

// GlobString renders the segment as a glob expression: wildcards become '*'
// and literal text is escaped so glob metacharacters in literals match
// themselves.
func (s ScanSegment) GlobString() string {
	var b strings.Builder

	for _, atom := range s.Atoms {
		if atom.Wildcard {
			b.WriteByte('*')
		} else {
			b.WriteString(escapeGlob(atom.Text))
		}
	}

	return b.String()
}

// String renders the segment with bare '*' wildcards, for logging.
func (s ScanSegment) String() string {
	var b strings.Builder

	for _, atom := range s.Atoms {
		if atom.Wildcard {
			b.WriteByte('*')
		} else {
			b.WriteString(atom.Text)
		}
	}

	return b.String()
}

// ScanPlan is a scan-ready rendering of a template: per directory level,
// the literal text with unresolved placeholders replaced by single-level
// wildcards. A wildcard never crosses a directory separator.
type ScanPlan struct {
	Segments []ScanSegment
	Absolute bool
}

// String renders the whole plan as a scan string, for logging.
func (plan ScanPlan) String() string {
	parts := make([]string, 0, len(plan.Segments))
	for _, seg := range plan.Segments {
		parts = append(parts, seg.String())
	}

	str := strings.Join(parts, "/")
	if plan.Absolute {
		return "/" + str
	}

	return str
}

// ScanPlan renders the template with the given partial value mapping.
// Resolved placeholders substitute their formatted value; unresolved ones
// render as wildcards, with adjacent wildcards collapsed. Values that cannot
// be rendered under the placeholder's spec resolve to a wildcard rather than
// failing, and are left to extraction-time filtering.
func (p *Pattern) ScanPlan(values Values) ScanPlan {
	plan := ScanPlan{}
	current := ScanSegment{}

	flush := func() {
		plan.Segments = append(plan.Segments, current)
		current = ScanSegment{}
	}

	appendLiteral := func(text string) {
		for text != "" {
			idx := strings.IndexByte(text, '/')
			if idx < 0 {
				current.Atoms = append(current.Atoms, ScanAtom{Text: text})
				return
			}

			if idx > 0 {
				current.Atoms = append(current.Atoms, ScanAtom{Text: text[:idx]})
			}

			if len(plan.Segments) == 0 && len(current.Atoms) == 0 {
				plan.Absolute = true
			} else {
				flush()
			}

			text = text[idx+1:]
		}
	}

	appendWildcard := func() {
		if n := len(current.Atoms); n > 0 && current.Atoms[n-1].Wildcard {
			return
		}

		current.Atoms = append(current.Atoms, ScanAtom{Wildcard: true})
	}

	for _, seg := range p.segments {
		if !seg.placeholder {
			appendLiteral(seg.literal)
			continue
		}

		val, ok := values[seg.name]
		if !ok {
			appendWildcard()
			continue
		}

		text, err := formatValue(seg.name, val, seg.spec)
		if err != nil {
			appendWildcard()
			continue
		}

		appendLiteral(text)
	}

	if len(current.Atoms) > 0 {
		flush()
	}

	return plan
}

// ScanString renders the template with the given partial value mapping into a
// flat scan string with '*' wildcards. It is meant for logging and for
// callers that drive their own glob expansion; the finder consumes the
// structured ScanPlan instead.
func (p *Pattern) ScanString(values Values) string {
	return p.ScanPlan(values).String()
}

// escapeGlob backslash-escapes the characters that are special to glob
// matching, so literal template text always matches itself.
func escapeGlob(text string) string {
	var b strings.Builder

	for i := 0; i < len(text); i++ {
		switch ch := text[i]; ch {
		case '*', '?', '[', ']', '{', '}', ',', '\\', '!':
			b.WriteByte('\\')
			b.WriteByte(ch)
		default:
			b.WriteByte(ch)
		}
	}

	return b.String()
}
