// Package ops exposes the operational HTTP surface of the bot: Prometheus
// metrics and a health endpoint.
package ops

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector gathers bot-level Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	updates     *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	duration    prometheus.Histogram
	rateLimited prometheus.Counter
}

// NewCollector builds a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gymstars_updates_total",
			Help: "Processed Telegram updates by kind.",
		}, []string{"kind"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gymstars_handler_outcomes_total",
			Help: "Handler results by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gymstars_handler_duration_seconds",
			Help:    "Handler execution time.",
			Buckets: prometheus.DefBuckets,
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymstars_rate_limited_total",
			Help: "Updates dropped by the per-user rate limiter.",
		}),
	}

	c.registry.MustRegister(c.updates, c.outcomes, c.duration, c.rateLimited)
	return c
}

// Registry returns the collector's registry for the /metrics handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordUpdate counts one processed update of the given kind.
func (c *Collector) RecordUpdate(kind string, took time.Duration, err error) {
	c.updates.WithLabelValues(kind).Inc()
	c.duration.Observe(took.Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.outcomes.WithLabelValues(outcome).Inc()
}

// RecordRateLimited counts one dropped update.
func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}
