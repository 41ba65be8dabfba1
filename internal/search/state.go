package search

// State is the authoritative record of what a single run has discovered.
// It is owned by one run and never shared between requests.
type State struct {
	start    string
	visited  map[string]bool
	parents  map[string]string
	expanded int
}

// NewState creates a state seeded with the start node as root
func NewState(start string) *State {
	s := &State{start: start}
	s.Reset()
	return s
}

// MarkVisited records a URL as enqueued.
// Returns false if the URL was already visited and must not be re-enqueued.
func (s *State) MarkVisited(url string) bool {
	if s.visited[url] {
		return false
	}
	s.visited[url] = true
	return true
}

// RecordParent records the expanding node that first discovered child
func (s *State) RecordParent(child, parent string) {
	s.parents[child] = parent
}

// Path reconstructs the start->target path, empty if target is unknown
func (s *State) Path(target string) []string {
	return Reconstruct(s.parents, target)
}

// Reset clears visited and parent records back to the root.
// The expansion counter is kept so the node budget spans restarts.
func (s *State) Reset() {
	s.visited = map[string]bool{s.start: true}
	s.parents = map[string]string{s.start: ""}
}

// Expanded returns the number of successfully resolved nodes
func (s *State) Expanded() int {
	return s.expanded
}

// VisitedCount returns the size of the visited set
func (s *State) VisitedCount() int {
	return len(s.visited)
}

func (s *State) incrementExpanded() {
	s.expanded++
}
