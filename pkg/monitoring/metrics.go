package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cost_atlas"

// Metrics holds the service's Prometheus instrumentation. Every instance
// carries its own registry, so independent servers never fight over metric
// registration. A nil *Metrics is valid and drops every observation.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	transitions        *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration observed at the API layer.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled by the API.",
			},
			[]string{"method", "route", "status"},
		),
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "governance",
				Name:      "validation_failures_total",
				Help:      "Records rejected by validation, partitioned by entity.",
			},
			[]string{"entity"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "governance",
				Name:      "transitions_total",
				Help:      "Lifecycle transition attempts partitioned by outcome.",
			},
			[]string{"entity", "operation", "result"},
		),
	}

	m.registry.MustRegister(
		m.requestDuration,
		m.requestTotal,
		m.validationFailures,
		m.transitions,
	)
	return m
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
	m.requestTotal.WithLabelValues(method, route, code).Inc()
}

// RecordValidationFailure counts a record rejected by validation.
func (m *Metrics) RecordValidationFailure(entity string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(entity).Inc()
}

// RecordTransition counts a lifecycle transition attempt.
func (m *Metrics) RecordTransition(entity, operation, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(entity, operation, result).Inc()
}

// RegisterRecordCount exposes a live record count as a gauge evaluated at
// scrape time.
func (m *Metrics) RegisterRecordCount(entity string, count func() float64) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "store",
			Name:        "records",
			Help:        "Records currently held by the in-memory store.",
			ConstLabels: prometheus.Labels{"entity": entity},
		},
		count,
	))
}

// Handler serves the instance's registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
