// Package metrics exposes Prometheus counters for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// Metrics holds the collectors on a private registry, so several servers
// can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	calculations      *prometheus.CounterVec
	reservedFlow      *prometheus.HistogramVec
	reports           *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitinflow_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pitinflow_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitinflow_calculations_total",
			Help: "Inflow calculations by pit type and outcome.",
		}, []string{"type", "outcome"}),
		reservedFlow: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pitinflow_reserved_flow_m3_per_hour",
			Help:    "Reserved hourly inflow of successful calculations.",
			Buckets: []float64{1, 2, 4, 6, 10, 20, 50, 100},
		}, []string{"type"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitinflow_reports_total",
			Help: "Rendered reports by format.",
		}, []string{"format"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.calculations,
		m.reservedFlow,
		m.reports,
	)
	return m
}

// Middleware records request counts and durations by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Calculation counts one calculation. qr is observed only for successful
// ones.
func (m *Metrics) Calculation(kind string, ok bool, qr float64) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeRejected
	}
	m.calculations.WithLabelValues(kind, outcome).Inc()
	if ok {
		m.reservedFlow.WithLabelValues(kind).Observe(qr)
	}
}

// Report counts one rendered report.
func (m *Metrics) Report(format string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(format).Inc()
}
