package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold is the similarity ratio above which two titles count as
// the same item. It was tuned against one conference's data; callers can
// override it through configuration.
const DefaultThreshold = 0.9

// Similar reports whether two normalized titles are close enough to be the
// same item. Equal strings always match; an empty string never matches a
// non-empty one. Otherwise the character-level longest-matching-blocks ratio
// must reach the threshold. This is the last-resort fallback after exact and
// substring matching, there to absorb typos, dropped diacritics and shuffled
// subtitle punctuation.
func Similar(a, b string, threshold float64) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return Ratio(a, b) >= threshold
}

// Ratio computes the sequence-similarity ratio in [0,1] between two strings,
// compared rune by rune.
func Ratio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
