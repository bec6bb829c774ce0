// Package metrics exposes pricing counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry
type Metrics struct {
	registry     *prometheus.Registry
	comparisons  *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	conversions  *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
}

// New creates the collectors and registers them with a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unitprice",
			Name:      "comparisons_total",
			Help:      "Calculation passes by result source.",
		}, []string{"source"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unitprice",
			Name:      "entries_rejected_total",
			Help:      "Product entries skipped during a calculation pass.",
		}, []string{"reason"}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unitprice",
			Name:      "conversions_total",
			Help:      "Unit conversions by outcome.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unitprice",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		m.comparisons,
		m.rejections,
		m.conversions,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveComparison counts a calculation pass
func (m *Metrics) ObserveComparison(source string) {
	m.comparisons.WithLabelValues(source).Inc()
}

// ObserveEntryRejected counts a skipped product entry
func (m *Metrics) ObserveEntryRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

// ObserveConversion counts a conversion attempt
func (m *Metrics) ObserveConversion(ok bool) {
	result := "ok"
	if !ok {
		result = "incompatible"
	}
	m.conversions.WithLabelValues(result).Inc()
}

// ObserveRequest counts a served HTTP request
func (m *Metrics) ObserveRequest(route, code string) {
	m.httpRequests.WithLabelValues(route, code).Inc()
}

// ObserveCacheSize exports the number of cached comparisons, read on each scrape
func (m *Metrics) ObserveCacheSize(size func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "unitprice",
		Name:      "cache_entries",
		Help:      "Comparisons currently held in the cache.",
	}, func() float64 { return float64(size()) }))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
