// Package metrics provides Prometheus metrics for the search server
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search request outcomes used as the status label
const (
	StatusOK       = "ok"
	StatusEmpty    = "empty"
	StatusNotReady = "not_ready"
	StatusInvalid  = "invalid"
	StatusError    = "error"
)

// Metrics holds all Prometheus collectors of one server instance
type Metrics struct {
	registry *prometheus.Registry

	SearchRequestsTotal *prometheus.CounterVec
	SearchDuration      *prometheus.HistogramVec
	SearchResults       prometheus.Histogram

	DocumentsIndexed        prometheus.Gauge
	DocumentLoadErrorsTotal prometheus.Counter
}

// New creates the collectors on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.SearchRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lightmcp_search_requests_total",
			Help: "Total number of search_docs requests",
		},
		[]string{"route", "status"},
	)

	m.SearchDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lightmcp_search_duration_seconds",
			Help:    "Duration of search_docs requests in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"route"},
	)

	m.SearchResults = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lightmcp_search_results",
			Help:    "Number of results returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	m.DocumentsIndexed = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "lightmcp_documents_indexed",
			Help: "Number of documents in the search index",
		},
	)

	m.DocumentLoadErrorsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "lightmcp_document_load_errors_total",
			Help: "Total number of documents skipped while loading the corpus",
		},
	)

	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordSearch records one search request
func (m *Metrics) RecordSearch(route, status string, duration time.Duration, results int) {
	m.SearchRequestsTotal.WithLabelValues(route, status).Inc()
	m.SearchDuration.WithLabelValues(route).Observe(duration.Seconds())
	if status == StatusOK || status == StatusEmpty {
		m.SearchResults.Observe(float64(results))
	}
}

// RecordLoad records the outcome of loading the corpus
func (m *Metrics) RecordLoad(indexed, skipped int) {
	m.DocumentsIndexed.Set(float64(indexed))
	m.DocumentLoadErrorsTotal.Add(float64(skipped))
}
