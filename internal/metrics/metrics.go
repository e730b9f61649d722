package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	enrollments  *prometheus.CounterVec
	removals     *prometheus.CounterVec
	rosterSize   *prometheus.GaugeVec
}

// New creates the collectors and registers them together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activities_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "activities_http_request_duration_seconds",
				Help:    "Duration of HTTP request handling in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		enrollments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activities_enrollments_total",
				Help: "Total number of enrollment attempts by outcome",
			},
			[]string{"activity", "outcome"},
		),
		removals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activities_removals_total",
				Help: "Total number of removal attempts by outcome",
			},
			[]string{"activity", "outcome"},
		),
		rosterSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "activities_roster_size",
				Help: "Current number of participants per activity",
			},
			[]string{"activity"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveEnrollment counts one enrollment attempt.
func (m *Metrics) ObserveEnrollment(activity, outcome string) {
	m.enrollments.WithLabelValues(activity, outcome).Inc()
}

// ObserveRemoval counts one removal attempt.
func (m *Metrics) ObserveRemoval(activity, outcome string) {
	m.removals.WithLabelValues(activity, outcome).Inc()
}

// SetRosterSize records the current roster length of an activity.
func (m *Metrics) SetRosterSize(activity string, size int) {
	m.rosterSize.WithLabelValues(activity).Set(float64(size))
}
