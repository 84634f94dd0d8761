package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collation Prometheus metrics.
var (
	CollationRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collator",
			Name:      "collation_runs_total",
			Help:      "Total number of collation runs",
		},
		[]string{"status"},
	)

	CollationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "collator",
			Name:      "collation_duration_seconds",
			Help:      "Collation run duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	DocumentsIndexedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "collator",
			Name:      "documents_indexed_total",
			Help:      "Total documents written to the search index",
		},
	)

	DocumentsPrunedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "collator",
			Name:      "documents_pruned_total",
			Help:      "Total stale documents removed from the search index",
		},
	)

	CollationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collator",
			Name:      "collation_errors_total",
			Help:      "Total collation failures by pipeline stage",
		},
		[]string{"stage"}, // discovery / retrieval / mapping / embedding / index
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collator",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "collator",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)
)

var collationMetricsRegistered bool

// RegisterCollationMetrics registers Prometheus collation metrics. Must be called once from main.
func RegisterCollationMetrics() {
	if collationMetricsRegistered {
		return
	}
	prometheus.MustRegister(CollationRunsTotal)
	prometheus.MustRegister(CollationDuration)
	prometheus.MustRegister(DocumentsIndexedTotal)
	prometheus.MustRegister(DocumentsPrunedTotal)
	prometheus.MustRegister(CollationErrorsTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	collationMetricsRegistered = true
}
