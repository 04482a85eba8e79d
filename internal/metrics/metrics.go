package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "docservice"

// Document reconciliation metrics.
var (
	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_total",
			Help:      "Document query cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	DocumentQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_queries_total",
			Help:      "Document queries by the source that answered them",
		},
		[]string{"source"}, // "database" / "filesystem"
	)

	DatabaseFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_fallbacks_total",
			Help:      "Queries that fell back to the filesystem after a database failure",
		},
	)

	IndexBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "image_index_build_duration_seconds",
			Help:      "Image index rebuild duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	IndexEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "image_index_entries",
			Help:      "Invoices present in the last built image index",
		},
	)

	IndexScanErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_index_scan_errors_total",
			Help:      "Directory and file errors recovered during index rebuilds",
		},
		[]string{"kind"}, // "directory" / "stat"
	)

	UploadedFilesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_files_total",
			Help:      "Uploaded files by category and outcome",
		},
		[]string{"category", "status"},
	)
)

var registerOnce sync.Once

// Register registers every collector with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			QueryCacheTotal,
			DocumentQueriesTotal,
			DatabaseFallbacksTotal,
			IndexBuildDuration,
			IndexEntries,
			IndexScanErrorsTotal,
			UploadedFilesTotal,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}
