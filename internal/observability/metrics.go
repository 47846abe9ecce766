package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry. A nil *Metrics is valid and
// records nothing, so callers never need to guard.
type Metrics struct {
	registry *prometheus.Registry

	httpInflight      prometheus.Gauge
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
	downstreamCalls   *prometheus.CounterVec
	downstreamLatency *prometheus.HistogramVec
	pipelineOutcomes  *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bff",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bff",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled, by route and outward service status.",
		}, []string{"method", "route", "status", "service_status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bff",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"method", "route"}),
		downstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bff",
			Subsystem: "downstream",
			Name:      "calls_total",
			Help:      "Calls made to backend services, by outcome.",
		}, []string{"service", "method", "outcome"}),
		downstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bff",
			Subsystem: "downstream",
			Name:      "call_duration_seconds",
			Help:      "Duration of calls made to backend services.",
			Buckets:   prometheus.ExponentialBuckets(0.002, 2, 13),
		}, []string{"service", "method"}),
		pipelineOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bff",
			Subsystem: "pipeline",
			Name:      "outcomes_total",
			Help:      "Orchestrated operations by terminal state and failure kind.",
		}, []string{"operation", "state", "kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bff",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups, by result.",
		}, []string{"service", "result"}),
	}
	m.registry.MustRegister(
		m.httpInflight,
		m.httpRequests,
		m.httpLatency,
		m.downstreamCalls,
		m.downstreamLatency,
		m.pipelineOutcomes,
		m.cacheLookups,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) IncInflight() {
	if m == nil {
		return
	}
	m.httpInflight.Inc()
}

func (m *Metrics) DecInflight() {
	if m == nil {
		return
	}
	m.httpInflight.Dec()
}

func (m *Metrics) ObserveHTTP(method, route string, status, serviceStatus int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	ss := ""
	if serviceStatus != 0 {
		ss = strconv.Itoa(serviceStatus)
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status), ss).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveDownstream records one backend call. outcome is "ok", "domain_error"
// or "transport_error".
func (m *Metrics) ObserveDownstream(service, method, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.downstreamCalls.WithLabelValues(service, method, outcome).Inc()
	m.downstreamLatency.WithLabelValues(service, method).Observe(d.Seconds())
}

func (m *Metrics) ObservePipeline(operation, state, kind string) {
	if m == nil {
		return
	}
	m.pipelineOutcomes.WithLabelValues(operation, state, kind).Inc()
}

func (m *Metrics) ObserveCache(service string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(service, result).Inc()
}
