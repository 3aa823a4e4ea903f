package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for price computations.
const (
	OutcomeOK     = "ok"
	OutcomeError  = "error"
	OutcomeNoRule = "no_rule"
)

// PricingMetrics records price computations and cache effectiveness.
type PricingMetrics struct {
	computations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	cache        *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_computations_total",
		Help: "Price computations by rule base and outcome.",
	}, []string{"base", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "price_computation_duration_seconds",
		Help:    "Duration of a pricelist price request in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"base"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_cache_lookups_total",
		Help: "Price cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(computations, duration, cache)
	return &PricingMetrics{
		computations: computations,
		duration:     duration,
		cache:        cache,
	}
}

// ObserveComputation records one computed price for the rule base.
func (m *PricingMetrics) ObserveComputation(base, outcome string, duration time.Duration) {
	if m == nil || m.computations == nil {
		return
	}
	base = normalizeLabel(base)
	m.computations.WithLabelValues(base, normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(base).Observe(duration.Seconds())
}

func (m *PricingMetrics) IncCacheHit() {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues("hit").Inc()
}

func (m *PricingMetrics) IncCacheMiss() {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues("miss").Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
