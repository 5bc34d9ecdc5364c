package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CollectionRuns counts full driver cycles.
	CollectionRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trend_collection_runs_total",
			Help: "Total number of full collection cycles",
		},
	)

	// PlatformCollections counts per-platform outcomes. status is one of
	// "fresh", "fallback", "failed".
	PlatformCollections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_platform_collections_total",
			Help: "Per-platform collection outcomes",
		},
		[]string{"platform", "status"},
	)

	// TrendsServed counts top-10 reads served over HTTP.
	TrendsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_snapshots_served_total",
			Help: "Top-10 snapshot reads served to clients",
		},
		[]string{"platform"},
	)

	// ArchivePushes counts archival attempts. status is "pushed",
	// "skipped" (unchanged digest) or "failed".
	ArchivePushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_archive_pushes_total",
			Help: "Snapshot store archival pushes",
		},
		[]string{"status"},
	)
)
