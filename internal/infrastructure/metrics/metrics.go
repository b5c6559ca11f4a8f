// Package metrics exposes Prometheus metrics for the HTTP API and the scoring pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "greentail"

// Metrics holds all service metrics on a private registry
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Scoring metrics
	ScoringPasses   *prometheus.CounterVec
	ScoringResults  *prometheus.HistogramVec
	ScoringDuration *prometheus.HistogramVec

	// Catalog metrics
	CatalogSize prometheus.Gauge
}

// New registers every metric on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ScoringPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoring_passes_total",
			Help:      "Scoring passes over the catalog by operation",
		}, []string{"operation"}),
		ScoringResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_results",
			Help:      "Products returned per scoring pass",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}, []string{"operation"}),
		ScoringDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_duration_seconds",
			Help:      "Time spent filtering, scoring and sorting",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05},
		}, []string{"operation"}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_products",
			Help:      "Products loaded in the catalog",
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ScoringPasses,
		m.ScoringResults,
		m.ScoringDuration,
		m.CatalogSize,
	)

	return m
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveScoring records one scoring pass
func (m *Metrics) ObserveScoring(operation string, results int, duration time.Duration) {
	m.ScoringPasses.WithLabelValues(operation).Inc()
	m.ScoringResults.WithLabelValues(operation).Observe(float64(results))
	m.ScoringDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetCatalogSize records the number of loaded products
func (m *Metrics) SetCatalogSize(n int) {
	m.CatalogSize.Set(float64(n))
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
