package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateMarkVisited(t *testing.T) {
	s := NewState("start")

	assert.False(t, s.MarkVisited("start"), "start is visited from the beginning")
	assert.True(t, s.MarkVisited("a"))
	assert.False(t, s.MarkVisited("a"))
	assert.True(t, s.visited["a"])
	assert.Equal(t, 2, s.VisitedCount())
}

func TestStateReset(t *testing.T) {
	s := NewState("start")
	s.MarkVisited("a")
	s.RecordParent("a", "start")
	s.incrementExpanded()

	s.Reset()

	assert.False(t, s.MarkVisited("start"))
	assert.Equal(t, 1, s.VisitedCount())
	assert.Equal(t, map[string]string{"start": ""}, s.parents)
	assert.Empty(t, s.Path("a"))

	assert.Equal(t, 1, s.Expanded(), "expansions survive a reset")
}

func TestStatePath(t *testing.T) {
	s := NewState("s")
	s.RecordParent("a", "s")
	s.RecordParent("b", "a")
	s.RecordParent("t", "b")

	assert.Equal(t, []string{"s", "a", "b", "t"}, s.Path("t"))
	assert.Equal(t, []string{"s"}, s.Path("s"))
	assert.Empty(t, s.Path("missing"))
}

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name    string
		parents map[string]string
		target  string
		want    []string
	}{
		{
			name:    "chain",
			parents: map[string]string{"s": "", "a": "s", "t": "a"},
			target:  "t",
			want:    []string{"s", "a", "t"},
		},
		{
			name:    "branch",
			parents: map[string]string{"s": "", "a": "s", "b": "s", "t": "b"},
			target:  "t",
			want:    []string{"s", "b", "t"},
		},
		{
			name:    "root only",
			parents: map[string]string{"s": ""},
			target:  "s",
			want:    []string{"s"},
		},
		{
			name:    "absent",
			parents: map[string]string{"s": ""},
			target:  "t",
			want:    nil,
		},
		{
			name:    "cycle",
			parents: map[string]string{"a": "b", "b": "a"},
			target:  "a",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconstruct(tt.parents, tt.target))
		})
	}
}
