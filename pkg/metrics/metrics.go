// Package metrics defines the Prometheus metric collectors used across the
// service and exposes an HTTP handler for scraping.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	ParseDuration        prometheus.Histogram
	ParsedDimensions     *prometheus.CounterVec
	ListingQueriesTotal  *prometheus.CounterVec
	ListingQueryDuration prometheus.Histogram
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	BreakerState         *prometheus.GaugeVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		ParseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "query_parse_duration_seconds",
				Help:    "Free-text query parse latency in seconds.",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
			},
		),
		ParsedDimensions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "query_parsed_dimensions_total",
				Help: "How often each filter dimension was extracted from free text.",
			},
			[]string{"dimension"},
		),
		ListingQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listing_queries_total",
				Help: "Total listing queries by outcome (ok, zero_result, error).",
			},
			[]string{"outcome"},
		),
		ListingQueryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "listing_query_duration_seconds",
				Help:    "Listing database query latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of result-cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of result-cache misses.",
			},
		),
		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open).",
			},
			[]string{"name"},
		),
	}
	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.ParseDuration,
		m.ParsedDimensions,
		m.ListingQueriesTotal,
		m.ListingQueryDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.BreakerState,
	)
	return m
}
