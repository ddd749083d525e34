// Package observability provides prometheus instrumentation for scan runs.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Histogram buckets for whole-run scan durations, in seconds.
var scanDurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60}

// Metrics bundles the scan-run instruments. Each Metrics owns a private
// registry, so building a second set never collides with an earlier one.
type Metrics struct {
	registry *prometheus.Registry

	// FilesScanned counts files that produced a result, cached or not.
	FilesScanned prometheus.Counter
	// RecordsExtracted counts import records across all files.
	RecordsExtracted prometheus.Counter
	// Diagnostics counts recoverable parse issues by kind.
	Diagnostics *prometheus.CounterVec
	// CacheHits and CacheMisses track the content-hash result cache.
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	// ScanDuration observes whole-run wall time in seconds.
	ScanDuration prometheus.Histogram
}

// NewMetrics builds a metric set on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		FilesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "importscout_files_scanned_total",
			Help: "Number of source files scanned for imports.",
		}),
		RecordsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "importscout_records_extracted_total",
			Help: "Number of import records extracted.",
		}),
		Diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "importscout_diagnostics_total",
			Help: "Number of recoverable parse diagnostics by kind.",
		}, []string{"kind"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "importscout_cache_hits_total",
			Help: "Number of extraction results served from the cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "importscout_cache_misses_total",
			Help: "Number of extraction results computed fresh.",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "importscout_scan_duration_seconds",
			Help:    "Wall time of whole scan runs.",
			Buckets: scanDurationBuckets,
		}),
	}

	registry.MustRegister(
		m.FilesScanned,
		m.RecordsExtracted,
		m.Diagnostics,
		m.CacheHits,
		m.CacheMisses,
		m.ScanDuration,
	)

	return m
}

// Handler returns the /metrics scrape handler for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
