package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus metrics for the SOAP request lifecycle.
// It is safe for concurrent use.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
}

// NewMetrics creates a collector on the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates a collector using the supplied registerer.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	return &Metrics{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "eudr_client_requests_total",
				Help: "Total number of SOAP requests made, by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eudr_client_request_duration_seconds",
				Help:    "Duration of SOAP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		retriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "eudr_client_retries_total",
				Help: "Total number of retry attempts",
			},
			[]string{"action"},
		),
	}
}
