package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gruntwork-io/filefinder/pattern"
)

func TestCoerce(t *testing.T) {
	t.Parallel()

	numeric := pattern.Spec{Kind: pattern.KindInt}

	assert.Equal(t, pattern.Int(7), pattern.Coerce("007", numeric))
	assert.Equal(t, pattern.String("007"), pattern.Coerce("007", pattern.DefaultSpec))

	// Non-numeric text under a numeric spec never raises; the string is kept.
	assert.Equal(t, pattern.String("n/a"), pattern.Coerce("n/a", numeric))
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, pattern.Int(7).Equal(pattern.Int(7)))
	assert.False(t, pattern.Int(7).Equal(pattern.Int(8)))
	assert.True(t, pattern.String("a").Equal(pattern.String("a")))

	// Kinds never compare equal across the tag.
	assert.False(t, pattern.Int(7).Equal(pattern.String("7")))
}

func TestValue_Text(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "7", pattern.Int(7).Text())
	assert.Equal(t, "007", pattern.String("007").Text())

	n, ok := pattern.Int(7).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	_, ok = pattern.String("7").Int64()
	assert.False(t, ok)
}

func TestValues_String(t *testing.T) {
	t.Parallel()

	values := pattern.Values{
		"b": pattern.Int(2),
		"a": pattern.String("x"),
	}

	assert.Equal(t, "a=x, b=2", values.String())
}
