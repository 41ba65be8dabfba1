package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		target    string
		want      float64
	}{
		{"identical", "https://id.wikipedia.org/wiki/Jakarta", "https://id.wikipedia.org/wiki/Jakarta", 1.0},
		{"case and separators", "https://en.wikipedia.org/wiki/New_York", "https://en.wikipedia.org/wiki/new-york", 1.0},
		{"percent encoded", "https://en.wikipedia.org/wiki/S%C3%A3o_Paulo", "https://en.wikipedia.org/wiki/são_paulo", 1.0},
		{"trailing slash", "https://example.com/docs/intro/", "https://example.com/intro", 1.0},
		{"disjoint", "https://example.com/abc", "https://example.com/xyz", 0.0},
		{"partial", "https://example.com/abc", "https://example.com/abd", 2.0 * 2 / 6},
		{"both empty", "https://example.com/", "https://example.org/", 1.0},
		{"one empty", "https://example.com/", "https://example.com/page", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.candidate, tt.target), 1e-9)
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"https://id.wikipedia.org/wiki/Institut_Teknologi_Sepuluh_Nopember", "https://id.wikipedia.org/wiki/Jakarta"},
		{"https://example.com/kitten", "https://example.com/sitting"},
		{"https://example.com/a", "https://example.com/abcdef"},
	}

	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "%s vs %s", p[0], p[1])
	}
}

func TestSimilarityRange(t *testing.T) {
	score := Similarity("https://example.com/Surabaya", "https://example.com/Jakarta")
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
