// Package metrics exposes Prometheus collectors for the statline API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcomes
const (
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid"
	OutcomeUnavailable  = "unavailable"
	OutcomeMappingError = "mapping_error"
	OutcomeError        = "error"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statline_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statline_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// SearchTotal counts searches by entity and outcome.
	SearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statline_search_total",
			Help: "Total number of entity searches",
		},
		[]string{"entity", "outcome"},
	)
	// SearchDuration is the latency of compose, store query and mapping.
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statline_search_duration_seconds",
			Help:    "Entity search latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity"},
	)
	// SearchResults is the number of records a successful search returned.
	SearchResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statline_search_results",
			Help:    "Records returned per search",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000},
		},
		[]string{"entity"},
	)
	// SeededRecords counts records written through seeding.
	SeededRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statline_seeded_records_total",
			Help: "Total number of records saved by seeding",
		},
		[]string{"entity"},
	)
)

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
