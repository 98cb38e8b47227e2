// Package telemetry instruments the scheduling core with Prometheus
// metrics. It wraps a scheduling.Scheduler rather than reaching inside it,
// so the core itself stays free of any metrics/transport dependency — the
// instrumentation boundary matches where ambient concerns end and the
// synchronous core begins.
package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/guimove/placer/internal/placement"
	"github.com/guimove/placer/internal/scheduling"
)

// Metrics holds the Prometheus collectors the scheduler service exposes.
// Register them with a single registry at startup and serve it over
// promhttp from the serve-metrics command (cmd/serve.go).
type Metrics struct {
	duration *prometheus.HistogramVec
	results  *prometheus.CounterVec
}

// NewMetrics creates and registers the scheduler's metric collectors
// against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "placer_schedule_duration_seconds",
			Help:    "Time spent in a single Schedule call, labeled by policy.",
			Buckets: prometheus.DefBuckets,
		}, []string{"policy"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "placer_schedule_result_total",
			Help: "Count of Schedule outcomes, labeled by policy and status.",
		}, []string{"policy", "status"}),
	}
	reg.MustRegister(m.duration, m.results)
	return m
}

// InstrumentedScheduler wraps a scheduling.Scheduler, recording duration
// and outcome metrics around every Schedule call.
type InstrumentedScheduler struct {
	inner   *scheduling.Scheduler
	metrics *Metrics
}

// Wrap returns a scheduler whose Schedule calls are recorded against m.
func Wrap(inner *scheduling.Scheduler, m *Metrics) *InstrumentedScheduler {
	return &InstrumentedScheduler{inner: inner, metrics: m}
}

// Schedule delegates to the wrapped scheduler and records metrics labeled
// by policy and the resulting status.
func (s *InstrumentedScheduler) Schedule(ctx context.Context, bundle placement.Bundle, policy scheduling.Policy, filter scheduling.NodeFilter) (placement.Result, error) {
	start := time.Now()
	result, err := s.inner.Schedule(ctx, bundle, policy, filter)
	s.metrics.duration.WithLabelValues(policy.String()).Observe(time.Since(start).Seconds())

	status := result.Status.String()
	if err != nil {
		status = "ERROR"
	}
	s.metrics.results.WithLabelValues(policy.String(), status).Inc()

	return result, err
}
