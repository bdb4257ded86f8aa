// Package metrics exposes Prometheus counters for synchronisation runs.
//
// A nil *Metrics is valid and records nothing, so callers never branch on
// whether metrics are enabled.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hammer"

// Metrics holds the counters for one process.
type Metrics struct {
	registry *prometheus.Registry

	reconciled  *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	swept       *prometheus.CounterVec
	drained     prometheus.Counter
	parseErrors prometheus.Counter
	lastSync    prometheus.Gauge
	syncSeconds prometheus.Histogram
}

// New registers every metric on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	m := &Metrics{registry: reg}

	m.reconciled = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciled_total",
			Help:      "documents reconciled, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	m.dropped = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_total",
			Help:      "documents dropped explicitly, by kind",
		},
		[]string{"kind"},
	)
	m.swept = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swept_total",
			Help:      "documents removed by prune, by kind",
		},
		[]string{"kind"},
	)
	m.drained = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trail_drained_total",
			Help:      "trail rows removed from past sessions",
		},
	)
	m.parseErrors = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "source documents that failed to parse",
		},
	)
	m.lastSync = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_sync_timestamp_seconds",
			Help:      "unix time of the last completed sync pass",
		},
	)
	m.syncSeconds = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "duration of full sync passes",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		},
	)

	return m
}

// Registry returns the registry the metrics live in.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Reconciled counts one reconcile decision.
func (m *Metrics) Reconciled(kind, outcome string) {
	if m == nil {
		return
	}
	m.reconciled.WithLabelValues(kind, outcome).Inc()
}

// Dropped counts one explicit deletion.
func (m *Metrics) Dropped(kind string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(kind).Inc()
}

// Swept counts n documents of kind removed by prune.
func (m *Metrics) Swept(kind string, n int) {
	if m == nil {
		return
	}
	m.swept.WithLabelValues(kind).Add(float64(n))
}

// Drained counts n trail rows removed.
func (m *Metrics) Drained(n int64) {
	if m == nil {
		return
	}
	m.drained.Add(float64(n))
}

// ParseFailed counts one unreadable source document.
func (m *Metrics) ParseFailed() {
	if m == nil {
		return
	}
	m.parseErrors.Inc()
}

// SyncFinished records a completed pass that started at start.
func (m *Metrics) SyncFinished(start, end time.Time) {
	if m == nil {
		return
	}
	m.lastSync.Set(float64(end.Unix()))
	m.syncSeconds.Observe(end.Sub(start).Seconds())
}

// WriteTextfile writes every metric in the text exposition format to path,
// for collection by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
