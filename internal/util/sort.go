// Package util contains small shared helpers with no dependencies on the rest
// of the module.
package util

import (
	"sort"
	"strconv"
	"strings"
)

// NaturalLess reports whether a sorts before b in natural order: runs of digits
// compare by numeric value, everything else compares byte-wise. So "a2" sorts
// before "a10", which plain lexicographic order gets wrong.
func NaturalLess(a, b string) bool {
	for a != "" && b != "" {
		aChunk, aRest, aNumeric := nextChunk(a)
		bChunk, bRest, bNumeric := nextChunk(b)

		if aNumeric && bNumeric {
			an, _ := strconv.ParseInt(aChunk, 10, 64)
			bn, _ := strconv.ParseInt(bChunk, 10, 64)

			if an != bn {
				return an < bn
			}
		} else if aChunk != bChunk {
			return aChunk < bChunk
		}

		a, b = aRest, bRest
	}

	return len(a) < len(b)
}

// SortNatural sorts the given strings in place in natural order.
func SortNatural(strs []string) {
	sort.SliceStable(strs, func(i, j int) bool {
		return NaturalLess(strs[i], strs[j])
	})
}

// nextChunk splits off the leading run of digits or non-digits from s.
func nextChunk(s string) (chunk, rest string, numeric bool) {
	if s == "" {
		return "", "", false
	}

	numeric = isDigit(s[0])

	i := 0
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}

	return s[:i], s[i:], numeric
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// JoinPath joins path fragments with a forward slash, skipping empty fragments.
// Unlike path.Join it does not clean the result, so wildcard segments survive
// untouched.
func JoinPath(fragments ...string) string {
	parts := make([]string, 0, len(fragments))

	for _, fragment := range fragments {
		if fragment = strings.TrimSuffix(fragment, "/"); fragment != "" {
			parts = append(parts, fragment)
		}
	}

	return strings.Join(parts, "/")
}
