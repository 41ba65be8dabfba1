package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alvmarrod/web-pathfinder/internal/search"
)

// Metrics is the process summary exported on exit
type Metrics struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	SearchesStarted   int       `json:"searches_started"`
	SearchesFound     int       `json:"searches_found"`
	SearchesExhausted int       `json:"searches_exhausted"`
	SearchesAborted   int       `json:"searches_aborted"`
	NodesExpanded     int       `json:"nodes_expanded"`
	PagesFetched      int       `json:"pages_fetched"`
	PagesFailed       int       `json:"pages_failed"`
	TotalFetchTimeMs  int64     `json:"total_fetch_time_ms"`
	AvgFetchTimeMs    int64     `json:"avg_fetch_time_ms"`
	TerminationReason string    `json:"termination_reason"`
}

// Tracker holds and manages process metrics.
// It implements search.Observer and mirrors every update into Prometheus.
type Tracker struct {
	mu               sync.Mutex
	data             Metrics
	totalFetchTimeMs int64
	fetchCount       int
}

// Compile time check that Tracker can observe the search engine.
var _ search.Observer = (*Tracker)(nil)

// NewTracker creates a new metrics tracker
func NewTracker() *Tracker {
	return &Tracker{
		data: Metrics{
			StartTime: time.Now(),
		},
	}
}

// SearchStarted counts a new search
func (t *Tracker) SearchStarted(alg search.Algorithm) {
	SearchesStarted.WithLabelValues(string(alg)).Inc()
	ActiveSearches.Inc()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.SearchesStarted++
}

// PageResolved records one resolution attempt and its duration
func (t *Tracker) PageResolved(ok bool, duration time.Duration) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	PagesResolved.WithLabelValues(result).Inc()
	PageFetchDuration.Observe(float64(duration.Milliseconds()))

	t.mu.Lock()
	defer t.mu.Unlock()
	if ok {
		t.data.PagesFetched++
	} else {
		t.data.PagesFailed++
	}
	t.totalFetchTimeMs += duration.Milliseconds()
	t.fetchCount++
}

// NodeExpanded counts a successfully expanded node
func (t *Tracker) NodeExpanded() {
	NodesExpanded.Inc()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.NodesExpanded++
}

// SearchFinished records the outcome of a search
func (t *Tracker) SearchFinished(alg search.Algorithm, outcome search.Outcome, duration time.Duration) {
	SearchesFinished.WithLabelValues(string(alg), string(outcome)).Inc()
	SearchDuration.WithLabelValues(string(alg)).Observe(duration.Seconds())
	ActiveSearches.Dec()

	t.mu.Lock()
	defer t.mu.Unlock()
	switch outcome {
	case search.OutcomeFound:
		t.data.SearchesFound++
	case search.OutcomeAborted:
		t.data.SearchesAborted++
	default:
		t.data.SearchesExhausted++
	}
}

// GetSnapshot returns a copy of current metrics
func (t *Tracker) GetSnapshot() Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := t.data
	snapshot.TotalFetchTimeMs = t.totalFetchTimeMs

	// Calculate average fetch time
	if t.fetchCount > 0 {
		snapshot.AvgFetchTimeMs = t.totalFetchTimeMs / int64(t.fetchCount)
	}

	return snapshot
}

// WriteToFile exports metrics to a JSON file
func (t *Tracker) WriteToFile(path, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Finalize metrics
	t.data.EndTime = time.Now()
	t.data.TerminationReason = reason
	t.data.TotalFetchTimeMs = t.totalFetchTimeMs

	if t.fetchCount > 0 {
		t.data.AvgFetchTimeMs = t.totalFetchTimeMs / int64(t.fetchCount)
	}

	jsonData, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	return nil
}

// LogProgress formats current metrics for periodic console updates
func (t *Tracker) LogProgress() string {
	m := t.GetSnapshot()

	return fmt.Sprintf("Searches: %d started, %d found, %d exhausted, %d aborted | Nodes: %d expanded | Pages: %d fetched, %d failed, avg %dms",
		m.SearchesStarted,
		m.SearchesFound,
		m.SearchesExhausted,
		m.SearchesAborted,
		m.NodesExpanded,
		m.PagesFetched,
		m.PagesFailed,
		m.AvgFetchTimeMs,
	)
}
