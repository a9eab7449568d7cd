// Package metrics provides Prometheus metrics for route splitting runs.
// A batch run has no scrape endpoint, so the registry is written out in the
// node_exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Source outcome label values.
const (
	OutcomeProcessed = "processed"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Metrics holds all Prometheus metrics for a run.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	SourcesTotal        *prometheus.CounterVec
	SkippedRowsTotal    *prometheus.CounterVec
	VariantsProduced    prometheus.Counter
	OrientationWarnings prometheus.Counter
	SinglePointPaths    prometheus.Counter
	PathPoints          prometheus.Histogram
	LastRunTimestamp    prometheus.Gauge
}

// New creates and registers all run metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	sourcesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lugar_routes_sources_total",
			Help: "Geometry sources by outcome",
		},
		[]string{"outcome"},
	)

	skippedRowsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lugar_routes_skipped_rows_total",
			Help: "Table rows skipped or defaulted while loading",
		},
		[]string{"table"},
	)

	variantsProduced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lugar_routes_variants_produced_total",
		Help: "Directional paths produced",
	})

	orientationWarnings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lugar_routes_orientation_warnings_total",
		Help: "Variants whose stop order disagrees with the assumed direction",
	})

	singlePointPaths := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lugar_routes_single_point_paths_total",
		Help: "Directional paths with a single point",
	})

	pathPoints := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lugar_routes_path_points",
		Help:    "Number of points per directional path",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	lastRunTimestamp := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lugar_routes_last_run_timestamp_seconds",
		Help: "Unix time of the last completed run",
	})

	registry.MustRegister(
		sourcesTotal,
		skippedRowsTotal,
		variantsProduced,
		orientationWarnings,
		singlePointPaths,
		pathPoints,
		lastRunTimestamp,
	)

	return &Metrics{
		Registry:            registry,
		SourcesTotal:        sourcesTotal,
		SkippedRowsTotal:    skippedRowsTotal,
		VariantsProduced:    variantsProduced,
		OrientationWarnings: orientationWarnings,
		SinglePointPaths:    singlePointPaths,
		PathPoints:          pathPoints,
		LastRunTimestamp:    lastRunTimestamp,
	}
}

// WriteTextfile writes the registry to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
