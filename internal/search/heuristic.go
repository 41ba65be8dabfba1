package search

import (
	"net/url"
	"strings"
)

// segmentReplacer folds structural separators in a path segment into spaces
var segmentReplacer = strings.NewReplacer("_", " ", "-", " ", "+", " ")

// Similarity scores how close the terminal path segments of two URLs are.
// Returns a value in [0,1] where 1 means identical normalized segments.
// The score is symmetric and deterministic.
func Similarity(candidateURL, targetURL string) float64 {
	a := []rune(normalizeSegment(terminalSegment(candidateURL)))
	b := []rune(normalizeSegment(terminalSegment(targetURL)))

	if len(a)+len(b) == 0 {
		return 1.0
	}

	return 2.0 * float64(lcsLength(a, b)) / float64(len(a)+len(b))
}

// terminalSegment returns the last non-empty path segment of a URL
func terminalSegment(rawURL string) string {
	path := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		path = parsed.EscapedPath()
	}

	path = strings.TrimRight(path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}

	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	return path
}

// normalizeSegment case-folds a segment and replaces separators with spaces
func normalizeSegment(segment string) string {
	return strings.TrimSpace(segmentReplacer.Replace(strings.ToLower(segment)))
}

// lcsLength computes the longest common subsequence length using two rows
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
