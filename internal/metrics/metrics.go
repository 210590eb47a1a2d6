// Package metrics defines the Prometheus collectors exported by the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application. The recording
// methods are no-ops on a nil *Metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
	YearsComputed   prometheus.Counter
	YearsArchived   prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates and registers all metrics on reg. Passing a fresh
// prometheus.NewRegistry keeps tests isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "feastcal_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feastcal_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "feastcal_cache_lookups_total",
			Help: "Holiday cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		YearsComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "feastcal_years_computed_total",
			Help: "Total number of holiday sets computed on a cache miss",
		}),
		YearsArchived: factory.NewCounter(prometheus.CounterOpts{
			Name: "feastcal_years_archived_total",
			Help: "Total number of years written to the archive",
		}),
		gatherer: reg,
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// CacheHit increments the hit counter.
func (m *Metrics) CacheHit() {
	if m != nil {
		m.CacheLookups.WithLabelValues("hit").Inc()
	}
}

// CacheMiss increments the miss counter.
func (m *Metrics) CacheMiss() {
	if m != nil {
		m.CacheLookups.WithLabelValues("miss").Inc()
	}
}

// CacheError increments the error counter.
func (m *Metrics) CacheError() {
	if m != nil {
		m.CacheLookups.WithLabelValues("error").Inc()
	}
}

// IncrementYearsComputed counts a holiday set built from scratch.
func (m *Metrics) IncrementYearsComputed() {
	if m != nil {
		m.YearsComputed.Inc()
	}
}

// IncrementYearsArchived counts a year written to the archive.
func (m *Metrics) IncrementYearsArchived() {
	if m != nil {
		m.YearsArchived.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
