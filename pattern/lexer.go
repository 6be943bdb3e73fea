package pattern

import "strings"

// segment is one element of a parsed template: either a run of literal text or
// a named placeholder with its format spec.
type segment struct {
	literal     string
	name        string
	spec        Spec
	placeholder bool
}

// lexer splits a template string into literal and placeholder segments.
// Doubled braces escape literal braces; anything else between '{' and '}' is a
// placeholder with an optional ":spec" suffix.
type lexer struct {
	input    string
	position int
	segments []segment
	literal  strings.Builder
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// lex tokenizes the whole template, returning its ordered segments.
func (l *lexer) lex() ([]segment, error) {
	for l.position < len(l.input) {
		switch ch := l.input[l.position]; ch {
		case '{':
			if l.peekChar() == '{' {
				l.literal.WriteByte('{')
				l.position += 2

				continue
			}

			if err := l.readPlaceholder(); err != nil {
				return nil, err
			}
		case '}':
			if l.peekChar() == '}' {
				l.literal.WriteByte('}')
				l.position += 2

				continue
			}

			return nil, NewSyntaxError("unbalanced '}', use '}}' for a literal brace", l.input, l.position)
		default:
			l.literal.WriteByte(ch)
			l.position++
		}
	}

	l.flushLiteral()

	return l.segments, nil
}

// readPlaceholder consumes "{name}" or "{name:spec}" starting at the opening brace.
func (l *lexer) readPlaceholder() error {
	start := l.position
	l.position++ // consume '{'

	nameStart := l.position
	for l.position < len(l.input) && isNameChar(l.input[l.position]) {
		l.position++
	}

	name := l.input[nameStart:l.position]

	spec := DefaultSpec

	if l.position < len(l.input) && l.input[l.position] == ':' {
		l.position++

		specStart := l.position
		for l.position < len(l.input) && l.input[l.position] != '}' && l.input[l.position] != '{' {
			l.position++
		}

		parsed, err := ParseSpec(l.input[specStart:l.position])
		if err != nil {
			return NewSyntaxError(err.Error(), l.input, specStart)
		}

		spec = parsed
	}

	if l.position >= len(l.input) || l.input[l.position] != '}' {
		return NewSyntaxError("unbalanced '{', use '{{' for a literal brace", l.input, start)
	}

	l.position++ // consume '}'

	if name == "" {
		return NewSyntaxError("empty placeholder name", l.input, start)
	}

	l.flushLiteral()
	l.segments = append(l.segments, segment{name: name, spec: spec, placeholder: true})

	return nil
}

func (l *lexer) peekChar() byte {
	if l.position+1 >= len(l.input) {
		return 0
	}

	return l.input[l.position+1]
}

func (l *lexer) flushLiteral() {
	if l.literal.Len() > 0 {
		l.segments = append(l.segments, segment{literal: l.literal.String()})
		l.literal.Reset()
	}
}

// isNameChar returns true if the character can be part of a placeholder name.
func isNameChar(ch byte) bool {
	return ch == '_' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}
