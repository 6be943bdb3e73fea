package pattern

import (
	"strings"
)

// Pattern is a compiled template: the ordered literal/placeholder segments
// paired with the matching program derived from them. A Pattern is immutable
// after compilation and safe to share between goroutines.
//
// Matching does not delegate to a regular-expression engine; the segments are
// interpreted directly with an explicit, documented tie-break (see Match).
// Literal text therefore always matches itself, no matter which characters it
// contains.
type Pattern struct {
	template string
	segments []segment
	// keys holds the distinct placeholder names in first-occurrence order.
	keys  []string
	specs map[string]Spec
}

// Compile parses the given template into a Pattern. Placeholder names must be
// unique within one template; unbalanced braces, empty names and malformed
// format specs are rejected with a SyntaxError.
//
// Compilation is a pure function of the template string: identical templates
// always yield equivalent patterns.
func Compile(template string) (*Pattern, error) {
	segments, err := newLexer(template).lex()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}

	for _, seg := range segments {
		if seg.placeholder && seen[seg.name] {
			return nil, NewSyntaxError("duplicate placeholder {"+seg.name+"}", template, 0)
		}

		if seg.placeholder {
			seen[seg.name] = true
		}
	}

	return build(template, segments), nil
}

// Join appends another pattern to this one across a directory separator,
// typically joining a path-level pattern with a file-level one. Unlike
// Compile, the joined pattern allows a name to occur at both levels; Match
// then verifies that both occurrences capture the same value. A name used at
// both levels must declare the same format spec at each.
func (p *Pattern) Join(file *Pattern) (*Pattern, error) {
	for name, spec := range file.specs {
		if pathSpec, ok := p.specs[name]; ok && pathSpec != spec {
			return nil, NewSyntaxError(
				"placeholder {"+name+"} declares different format specs at the path and file level",
				p.template+"/"+file.template, 0)
		}
	}

	segments := make([]segment, 0, len(p.segments)+len(file.segments)+1)
	segments = append(segments, p.segments...)

	if !strings.HasSuffix(p.template, "/") {
		segments = append(segments, segment{literal: "/"})
	}

	segments = append(segments, file.segments...)

	template := strings.TrimSuffix(p.template, "/") + "/" + file.template

	return build(template, segments), nil
}

// build assembles a Pattern from parsed segments, merging adjacent literals so
// the matcher sees each literal boundary as one unit.
func build(template string, segments []segment) *Pattern {
	p := &Pattern{
		template: template,
		specs:    map[string]Spec{},
	}

	for _, seg := range segments {
		if !seg.placeholder {
			if n := len(p.segments); n > 0 && !p.segments[n-1].placeholder {
				p.segments[n-1].literal += seg.literal
				continue
			}

			p.segments = append(p.segments, seg)

			continue
		}

		p.segments = append(p.segments, seg)

		if _, ok := p.specs[seg.name]; !ok {
			p.keys = append(p.keys, seg.name)
			p.specs[seg.name] = seg.spec
		}
	}

	return p
}

// Template returns the original template string.
func (p *Pattern) Template() string {
	return p.template
}

// Keys returns the distinct placeholder names in first-occurrence order.
// The returned slice must not be modified.
func (p *Pattern) Keys() []string {
	return p.keys
}

// HasKey returns true if the pattern declares the given placeholder.
func (p *Pattern) HasKey(name string) bool {
	_, ok := p.specs[name]
	return ok
}

// Spec returns the format spec of the given placeholder and whether the
// placeholder exists.
func (p *Pattern) Spec(name string) (Spec, bool) {
	spec, ok := p.specs[name]
	return spec, ok
}

// String implements fmt.Stringer.
func (p *Pattern) String() string {
	return p.template
}
