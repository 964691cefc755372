package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// insights service.
type Metrics struct {
	LookupsTotal   *prometheus.CounterVec // labels: outcome={success,error}
	LookupDuration prometheus.Histogram

	// External provider metrics.
	ProviderRequests *prometheus.CounterVec   // labels: provider, op, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: provider, op

	// Memo metrics.
	CacheLookups *prometheus.CounterVec // labels: cache={radius,insights}, result={hit,miss}

	ServiceUp prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		LookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "location_insights",
			Name:      "lookups_total",
			Help:      "Completed insight lookups by outcome.",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "location_insights",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of a full insight assembly (resolve, radius, events, format).",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "location_insights",
			Name:      "provider_requests_total",
			Help:      "External provider requests by provider, operation, and outcome.",
		}, []string{"provider", "op", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "location_insights",
			Name:      "provider_request_duration_seconds",
			Help:      "External provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"provider", "op"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "location_insights",
			Name:      "cache_lookups_total",
			Help:      "Memo lookups by cache and result.",
		}, []string{"cache", "result"}),
		ServiceUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "location_insights",
			Name:      "up",
			Help:      "1 while the service is running.",
		}),
	}

	prometheus.MustRegister(
		m.LookupsTotal,
		m.LookupDuration,
		m.ProviderRequests,
		m.ProviderDuration,
		m.CacheLookups,
		m.ServiceUp,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		LookupsTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "location_insights", Name: "lookups_total"}, []string{"outcome"}),
		LookupDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "location_insights", Name: "lookup_duration_seconds"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "location_insights", Name: "provider_requests_total"}, []string{"provider", "op", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "location_insights", Name: "provider_request_duration_seconds"}, []string{"provider", "op"}),
		CacheLookups:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "location_insights", Name: "cache_lookups_total"}, []string{"cache", "result"}),
		ServiceUp:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "location_insights", Name: "up"}),
	}
}
