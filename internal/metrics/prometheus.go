package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_searches_started_total",
		Help: "Total number of searches started, labelled by algorithm.",
	}, []string{"algorithm"})

	SearchesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_searches_finished_total",
		Help: "Total number of searches finished, labelled by algorithm and outcome.",
	}, []string{"algorithm", "outcome"})

	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pathfinder_search_duration_seconds",
		Help:    "Wall-clock duration of a search.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"algorithm"})

	PagesResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_pages_resolved_total",
		Help: "Total number of page resolutions, labelled by result.",
	}, []string{"result"})

	PageFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathfinder_page_fetch_duration_ms",
		Help:    "Page resolution latency in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	NodesExpanded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_nodes_expanded_total",
		Help: "Total number of nodes successfully expanded.",
	})

	ActiveSearches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathfinder_active_searches",
		Help: "Number of searches currently running.",
	})
)
