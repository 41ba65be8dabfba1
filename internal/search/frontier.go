package search

import "container/heap"

// Entry is a pending node awaiting expansion
type Entry struct {
	URL      string
	Depth    int
	Priority float64

	seq uint64 // insertion order, breaks priority ties
}

// Frontier holds discovered-but-not-expanded entries in strategy order
type Frontier interface {
	// Insert adds an entry
	Insert(entry Entry)
	// Next removes and returns the next entry, false when empty
	Next() (Entry, bool)
	// Len returns the number of pending entries
	Len() int
}

// NewFrontier builds the frontier implementation for an algorithm
func NewFrontier(alg Algorithm) Frontier {
	switch alg {
	case DFS, IDS:
		return &stackFrontier{}
	case UCS, Greedy:
		return &priorityFrontier{}
	default:
		return &queueFrontier{}
	}
}

// queueFrontier is FIFO
type queueFrontier struct {
	items []Entry
}

func (q *queueFrontier) Insert(entry Entry) {
	q.items = append(q.items, entry)
}

func (q *queueFrontier) Next() (Entry, bool) {
	if len(q.items) == 0 {
		return Entry{}, false
	}
	entry := q.items[0]
	q.items[0] = Entry{}
	q.items = q.items[1:]
	return entry, true
}

func (q *queueFrontier) Len() int { return len(q.items) }

// stackFrontier is LIFO
type stackFrontier struct {
	items []Entry
}

func (s *stackFrontier) Insert(entry Entry) {
	s.items = append(s.items, entry)
}

func (s *stackFrontier) Next() (Entry, bool) {
	n := len(s.items)
	if n == 0 {
		return Entry{}, false
	}
	entry := s.items[n-1]
	s.items = s.items[:n-1]
	return entry, true
}

func (s *stackFrontier) Len() int { return len(s.items) }

// priorityFrontier returns the lowest priority first, stable on insertion order
type priorityFrontier struct {
	items entryHeap
	seq   uint64
}

func (p *priorityFrontier) Insert(entry Entry) {
	entry.seq = p.seq
	p.seq++
	heap.Push(&p.items, entry)
}

func (p *priorityFrontier) Next() (Entry, bool) {
	if len(p.items) == 0 {
		return Entry{}, false
	}
	return heap.Pop(&p.items).(Entry), true
}

func (p *priorityFrontier) Len() int { return len(p.items) }

// Compile time check to ensure entryHeap satisfies the heap interface.
var _ heap.Interface = (*entryHeap)(nil)

type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}
