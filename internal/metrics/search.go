package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and indexing Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fuzzdex",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"collection", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fuzzdex",
			Name:      "search_request_duration_seconds",
			Help:      "Search request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"collection"},
	)

	SearchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fuzzdex",
			Name:      "search_results_returned",
			Help:      "Number of hits returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"collection"},
	)

	DocumentWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fuzzdex",
			Name:      "document_writes_total",
			Help:      "Total number of document saves and updates",
		},
		[]string{"collection", "operation", "status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(SearchResultsReturned)
	prometheus.MustRegister(DocumentWritesTotal)
	searchMetricsRegistered = true
}
