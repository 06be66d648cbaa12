package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements chapters.Metrics using Prometheus
type Collector struct {
	lookups          *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
	cacheLookups     *prometheus.CounterVec
}

// NewCollector creates a new Prometheus metrics collector registered on reg.
// Pass prometheus.DefaultRegisterer to expose the metrics on /metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gita_chapter_lookups_total",
				Help: "Total number of chapter lookups by outcome",
			},
			[]string{"outcome"},
		),
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gita_upstream_requests_total",
				Help: "Total number of scripture API requests by response code",
			},
			[]string{"code"},
		),
		upstreamLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gita_upstream_latency_seconds",
				Help:    "Scripture API call latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gita_cache_lookups_total",
				Help: "Total number of chapter cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// RecordLookup increments the lookup counter for an outcome
func (c *Collector) RecordLookup(outcome string) {
	c.lookups.WithLabelValues(outcome).Inc()
}

// RecordUpstream records one scripture API call
func (c *Collector) RecordUpstream(code string, duration time.Duration) {
	c.upstreamRequests.WithLabelValues(code).Inc()
	c.upstreamLatency.Observe(duration.Seconds())
}

// RecordCacheLookup increments the cache counter for a result
func (c *Collector) RecordCacheLookup(result string) {
	c.cacheLookups.WithLabelValues(result).Inc()
}
