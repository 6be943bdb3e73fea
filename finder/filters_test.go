package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruntwork-io/filefinder/pattern"
)

func defaultSpecs(string) (pattern.Spec, bool) {
	return pattern.DefaultSpec, true
}

func TestConstraint_Matches(t *testing.T) {
	t.Parallel()

	numeric := pattern.Spec{Kind: pattern.KindInt}

	tests := []struct {
		name       string
		constraint Constraint
		value      pattern.Value
		spec       pattern.Spec
		expected   bool
	}{
		{
			name:       "unconstrained passes everything",
			constraint: Constraint{},
			value:      pattern.String("anything"),
			spec:       pattern.DefaultSpec,
			expected:   true,
		},
		{
			name:       "exact equality",
			constraint: Eq("a1"),
			value:      pattern.String("a1"),
			spec:       pattern.DefaultSpec,
			expected:   true,
		},
		{
			name:       "exact inequality",
			constraint: Eq("a1"),
			value:      pattern.String("a2"),
			spec:       pattern.DefaultSpec,
			expected:   false,
		},
		{
			name:       "membership",
			constraint: In("a1", "a2"),
			value:      pattern.String("a2"),
			spec:       pattern.DefaultSpec,
			expected:   true,
		},
		{
			name:       "non-membership",
			constraint: In("a1", "a2"),
			value:      pattern.String("a3"),
			spec:       pattern.DefaultSpec,
			expected:   false,
		},
		{
			name:       "numeric coercion before comparison",
			constraint: Eq("07"),
			value:      pattern.Int(7),
			spec:       numeric,
			expected:   true,
		},
		{
			name:       "integer constraint",
			constraint: EqInt(7),
			value:      pattern.Int(7),
			spec:       numeric,
			expected:   true,
		},
		{
			name:       "glob value matches as glob",
			constraint: Eq("a*"),
			value:      pattern.String("a17"),
			spec:       pattern.DefaultSpec,
			expected:   true,
		},
		{
			name:       "glob value mismatch",
			constraint: Eq("a*"),
			value:      pattern.String("b1"),
			spec:       pattern.DefaultSpec,
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.constraint.matches(tt.value, tt.spec))
		})
	}
}

func TestFilters_Validate(t *testing.T) {
	t.Parallel()

	filters := Filters{"varn": Eq("tas"), "bogus": Eq("x")}

	err := filters.validate([]string{"varn", "exp"})
	require.Error(t, err)

	var unknownErr UnknownKeyError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, []string{"bogus"}, unknownErr.Keys)

	assert.NoError(t, Filters{"varn": Eq("tas")}.validate([]string{"varn", "exp"}))
	assert.NoError(t, Filters{}.validate([]string{"varn"}))
}

func TestFilters_Combinations(t *testing.T) {
	t.Parallel()

	filters := Filters{
		"exp":  In("historical", "ssp585"),
		"varn": Eq("tas"),
	}

	combos := filters.combinations(defaultSpecs, 32)
	require.Len(t, combos, 2)

	assert.True(t, combos[0].Equal(pattern.Values{
		"exp":  pattern.String("historical"),
		"varn": pattern.String("tas"),
	}))
	assert.True(t, combos[1].Equal(pattern.Values{
		"exp":  pattern.String("ssp585"),
		"varn": pattern.String("tas"),
	}))
}

func TestFilters_CombinationsCap(t *testing.T) {
	t.Parallel()

	filters := Filters{
		"a": In("1", "2", "3"),
		"b": In("x", "y", "z"),
		"c": Eq("fixed"),
	}

	// 9 combinations exceed the cap of 4: set-valued constraints fall back to
	// wildcards and only the single-valued one narrows the scan.
	combos := filters.combinations(defaultSpecs, 4)
	require.Len(t, combos, 1)
	assert.True(t, combos[0].Equal(pattern.Values{"c": pattern.String("fixed")}))
}

func TestFilters_CombinationsGlobStaysWildcard(t *testing.T) {
	t.Parallel()

	filters := Filters{
		"varn": Eq("ta*"),
		"exp":  Eq("historical"),
	}

	combos := filters.combinations(defaultSpecs, 32)
	require.Len(t, combos, 1)

	// The glob-valued constraint is not enumerable; it is enforced at
	// extraction time instead.
	assert.True(t, combos[0].Equal(pattern.Values{"exp": pattern.String("historical")}))
}

func TestFilters_MatchesUnboundKeyPasses(t *testing.T) {
	t.Parallel()

	// Path-level rows do not bind file-level placeholders; constraints on
	// those pass vacuously.
	filters := Filters{"number": Eq("1")}

	assert.True(t, filters.matches(pattern.Values{"category": pattern.String("a1")}, defaultSpecs))
}
