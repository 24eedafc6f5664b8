// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoreRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "score_requests_total",
		Help:      "Apparel score computations by outcome.",
	}, []string{"outcome"})

	ScoreDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wardrobe",
		Name:      "score_duration_seconds",
		Help:      "Time spent composing a single apparel score.",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	Derivations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "priority_derivations_total",
		Help:      "Work-priority derivations performed.",
	})

	LazyWorktypeTables = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "worktype_tables_lazily_created_total",
		Help:      "Work type tables created after initialization.",
	}, []string{"work_type"})

	WornCacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "worn_score_cache_total",
		Help:      "Worn-item score cache lookups by result.",
	}, []string{"result"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "events_published_total",
		Help:      "Outfit events published to the bus.",
	}, []string{"type"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status class.",
	}, []string{"method", "route", "status"})
)
