package pattern

import (
	"strings"

	"github.com/gruntwork-io/filefinder/internal/errors"
)

// Match attempts a full-string match of the given name against the pattern:
// the entire input must be consumed, so "{a}_file" matches neither
// "xx_file_extra" nor "prefix_xx_file".
//
// Matching interprets the segments left to right with a deterministic
// tie-break instead of backtracking:
//
//   - a literal must appear verbatim at the current position;
//   - an unhinted placeholder captures the shortest non-empty run of
//     characters, bounded by the first occurrence of the following literal's
//     first character (or by end of input for a trailing placeholder, which
//     then absorbs the remainder: "{a}_{b}" on "x_y_z" binds a="x", b="y_z");
//   - a digits placeholder captures the maximal digit run, or exactly its
//     declared width;
//   - a width-constrained text placeholder captures exactly its width.
//
// A plain mismatch is the normal "no" outcome of a predicate, reported as
// (nil, false, nil), never as an error. For joined patterns, a name that
// matches structurally but binds a shared placeholder to two different values
// is rejected with an AmbiguousBindingError so the caller can record the drop.
func (p *Pattern) Match(name string) (Values, bool, error) {
	values := make(Values, len(p.keys))
	pos := 0

	for i, seg := range p.segments {
		if !seg.placeholder {
			if !strings.HasPrefix(name[pos:], seg.literal) {
				return nil, false, nil
			}

			pos += len(seg.literal)

			continue
		}

		captured, ok := capture(name[pos:], seg.spec, p.boundary(i))
		if !ok {
			return nil, false, nil
		}

		pos += len(captured)

		val := Coerce(captured, seg.spec)

		if prev, bound := values[seg.name]; bound && !prev.Equal(val) {
			return nil, false, errors.New(AmbiguousBindingError{
				Name:   name,
				Key:    seg.name,
				Values: []string{prev.Text(), val.Text()},
			})
		}

		values[seg.name] = val
	}

	if pos != len(name) {
		return nil, false, nil
	}

	return values, true, nil
}

// boundary returns the segment following i, or nil for the last segment.
func (p *Pattern) boundary(i int) *segment {
	if i+1 < len(p.segments) {
		return &p.segments[i+1]
	}

	return nil
}

// capture takes one placeholder's text from the front of rest.
func capture(rest string, spec Spec, next *segment) (string, bool) {
	switch {
	case spec.Kind == KindInt && spec.Width > 0:
		if len(rest) < spec.Width || !allDigits(rest[:spec.Width]) {
			return "", false
		}

		return rest[:spec.Width], true

	case spec.Kind == KindInt:
		run := digitRun(rest)
		if run == 0 {
			return "", false
		}

		return rest[:run], true

	case spec.Width > 0:
		if len(rest) < spec.Width {
			return "", false
		}

		return rest[:spec.Width], true

	case next == nil:
		// Trailing placeholder absorbs the non-empty remainder.
		if rest == "" {
			return "", false
		}

		return rest, true

	case !next.placeholder:
		// Bounded by the first character of the following literal.
		idx := strings.IndexByte(rest, next.literal[0])
		if idx <= 0 {
			return "", false
		}

		return rest[:idx], true

	default:
		// Two adjacent unconstrained placeholders: the left one takes the
		// shortest non-empty capture, a single character.
		if rest == "" {
			return "", false
		}

		return rest[:1], true
	}
}

func allDigits(str string) bool {
	for i := 0; i < len(str); i++ {
		if str[i] < '0' || str[i] > '9' {
			return false
		}
	}

	return len(str) > 0
}

func digitRun(str string) int {
	i := 0
	for i < len(str) && str[i] >= '0' && str[i] <= '9' {
		i++
	}

	return i
}
