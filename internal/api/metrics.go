package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "cashier_"

// Metrics bundles the HTTP surface metrics.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	ViewDerivations   *prometheus.CounterVec
	SelectionToggles  *prometheus.CounterVec
	DeliveryRequests  *prometheus.CounterVec
	Exports           *prometheus.CounterVec
	RepositoryRetries prometheus.Counter
	ActiveSessions    prometheus.Gauge
}

// NewMetrics constructs the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		ViewDerivations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "view_derivations_total",
				Help: "Total dashboard views rendered by pivot",
			},
			[]string{"pivot"},
		),
		SelectionToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "selection_toggles_total",
				Help: "Total selection toggles by result",
			},
			[]string{"result"},
		),
		DeliveryRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "delivery_requests_total",
				Help: "Total delivery confirmations by result",
			},
			[]string{"result"},
		),
		Exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total exported documents by format",
			},
			[]string{"format"},
		),
		RepositoryRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "repository_retries_total",
			Help: "Total number of retried repository fetches",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "active_sessions",
			Help: "Number of account dashboards held in memory",
		}),
	}
	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ViewDerivations,
		m.SelectionToggles,
		m.DeliveryRequests,
		m.Exports,
		m.RepositoryRetries,
		m.ActiveSessions,
	)
	return m
}
