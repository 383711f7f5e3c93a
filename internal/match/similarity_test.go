package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal strings", "forschungsdatenstandards", "forschungsdatenstandards", true},
		{"both empty", "", "", true},
		{"empty never fuzzy-matches", "", "forschungsdatenstandards", false},
		{"one dropped character", "forschungsdatenstandards", "forschungsdatenstandard", true},
		{"one typo in long title", "netzwerkanalyse historischer briefkorpora", "netzwerkanalyse historischer briefcorpora", true},
		{"unrelated titles", "workshop tei", "posterslam", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Similar(tt.a, tt.b, DefaultThreshold))
		})
	}
}

func TestSimilarThreshold(t *testing.T) {
	// "abcdefghij" vs "abcdefghix": 9 of 10 runes in common, ratio 0.9.
	assert.True(t, Similar("abcdefghij", "abcdefghix", 0.9))
	assert.False(t, Similar("abcdefghij", "abcdefghix", 0.95))
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 1.0, Ratio("gleich", "gleich"), 1e-9)
	assert.InDelta(t, 0.9, Ratio("abcdefghij", "abcdefghix"), 1e-9)
	assert.Less(t, Ratio("workshop tei", "posterslam"), 0.5)

	// Runes, not bytes: umlauts count as one position.
	assert.InDelta(t, 1.0, Ratio("übung", "übung"), 1e-9)
}
