// Package perf implements the Performance Monitor (C2): it wraps every
// operation with timing and success/failure capture, keeps a ring buffer of
// the most recent 1000 Metrics, computes percentile stats, and raises
// threshold alerts. A Prometheus collector set (C12) mirrors every
// measurement for ambient operational scraping.
package perf

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const ringCapacity = 1000

// Metric is one immutable record of a completed operation.
type Metric struct {
	Operation   string
	Start       time.Time
	End         time.Time
	DurationMs  float64
	Success     bool
	Error       string
	MemDeltaB   int64
	Metadata    map[string]any
}

// Threshold holds the warning/critical millisecond bounds for an operation.
type Threshold struct {
	WarningMs  float64
	CriticalMs float64
}

// defaultThresholds mirrors the table in spec.md §4.6.
var defaultThresholds = map[string]Threshold{
	"eval_command":        {1000, 2000},
	"create_point":        {500, 1000},
	"create_line":         {500, 1000},
	"export_png":          {1500, 2000},
	"export_svg":          {800, 1500},
	"instance_init":       {8000, 15000},
	"clear_construction":  {300, 1000},
	"default":             {1000, 2000},
}

// Signal describes a threshold crossing. Measure does not build or send
// Signal values; it logs crossings and counts them in the alerts collector.
type Signal struct {
	Level     string // "WARN" or "ERROR"
	Operation string
	DurationMs float64
}

// Monitor owns the ring buffer, threshold table, and Prometheus collectors.
type Monitor struct {
	mu         sync.Mutex
	ring       []Metric
	next       int
	filled     bool
	thresholds map[string]Threshold
	logger     *slog.Logger

	histogram *prometheus.HistogramVec
	alerts    *prometheus.CounterVec
}

// New creates a Monitor with the default threshold table and registers its
// Prometheus collectors against reg (pass nil to skip registration, e.g. in
// tests that construct multiple Monitors).
func New(logger *slog.Logger, reg prometheus.Registerer) *Monitor {
	m := &Monitor{
		ring:       make([]Metric, ringCapacity),
		thresholds: cloneThresholds(defaultThresholds),
		logger:     logger,
		histogram: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geogebra_mcp_operation_duration_seconds",
			Help:    "Duration of GeoGebra MCP operations in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "success"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geogebra_mcp_threshold_alerts_total",
			Help: "Number of threshold-crossing alerts emitted by the performance monitor.",
		}, []string{"operation", "level"}),
	}
	if reg != nil {
		reg.MustRegister(m.histogram, m.alerts)
	}
	return m
}

// SetThreshold overrides the warning/critical bounds for a named operation.
func (m *Monitor) SetThreshold(operation string, t Threshold) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.thresholds[operation] = t
}

// Measure runs fn and records a Metric. A threshold crossing is logged at
// Warn or Error level and counted in the alerts CounterVec.
func Measure[T any](ctx context.Context, m *Monitor, operation string, metadata map[string]any, fn func(context.Context) (T, error)) (T, error) {
	var memBefore runtime.MemStats
	runtime.ReadMemStats(&memBefore)
	start := time.Now()

	result, err := fn(ctx)

	end := time.Now()
	var memAfter runtime.MemStats
	runtime.ReadMemStats(&memAfter)

	metric := Metric{
		Operation:  operation,
		Start:      start,
		End:        end,
		DurationMs: float64(end.Sub(start)) / float64(time.Millisecond),
		Success:    err == nil,
		MemDeltaB:  int64(memAfter.Alloc) - int64(memBefore.Alloc),
		Metadata:   metadata,
	}
	if err != nil {
		metric.Error = err.Error()
	}

	m.record(metric)
	return result, err
}

func (m *Monitor) record(metric Metric) {
	m.mu.Lock()
	m.ring[m.next] = metric
	m.next = (m.next + 1) % ringCapacity
	if m.next == 0 {
		m.filled = true
	}
	th, ok := m.thresholds[metric.Operation]
	if !ok {
		th = m.thresholds["default"]
	}
	m.mu.Unlock()

	successLabel := "true"
	if !metric.Success {
		successLabel = "false"
	}
	m.histogram.WithLabelValues(metric.Operation, successLabel).Observe(metric.DurationMs / 1000)

	switch {
	case metric.DurationMs > th.CriticalMs:
		m.alerts.WithLabelValues(metric.Operation, "ERROR").Inc()
		if m.logger != nil {
			m.logger.Error("operation exceeded critical threshold",
				"operation", metric.Operation, "duration_ms", metric.DurationMs, "critical_ms", th.CriticalMs)
		}
	case metric.DurationMs > th.WarningMs:
		m.alerts.WithLabelValues(metric.Operation, "WARN").Inc()
		if m.logger != nil {
			m.logger.Warn("operation exceeded warning threshold",
				"operation", metric.Operation, "duration_ms", metric.DurationMs, "warning_ms", th.WarningMs)
		}
	}
}

// Stats summarizes the ring buffer, optionally filtered to one operation
// name (empty string means "all operations").
type Stats struct {
	Count       int
	MeanMs      float64
	MedianMs    float64
	P95Ms       float64
	P99Ms       float64
	MinMs       float64
	MaxMs       float64
	SuccessRate float64
}

// Snapshot returns an immutable copy of the current ring buffer contents.
func (m *Monitor) Snapshot() []Metric {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orderedLocked()
}

// orderedLocked returns the ring buffer contents in chronological order.
// Caller must hold m.mu.
func (m *Monitor) orderedLocked() []Metric {
	if !m.filled {
		out := make([]Metric, m.next)
		copy(out, m.ring[:m.next])
		return out
	}
	out := make([]Metric, ringCapacity)
	copy(out, m.ring[m.next:])
	copy(out[ringCapacity-m.next:], m.ring[:m.next])
	return out
}

// GetStats computes Stats over the ring buffer, filtered by operation if
// non-empty.
func (m *Monitor) GetStats(operation string) Stats {
	entries := m.Snapshot()

	var durations []float64
	successes := 0
	for _, e := range entries {
		if operation != "" && e.Operation != operation {
			continue
		}
		durations = append(durations, e.DurationMs)
		if e.Success {
			successes++
		}
	}
	if len(durations) == 0 {
		return Stats{}
	}

	sort.Float64s(durations)
	n := len(durations)
	sum := 0.0
	for _, d := range durations {
		sum += d
	}

	return Stats{
		Count:       n,
		MeanMs:      sum / float64(n),
		MedianMs:    percentile(durations, 0.50),
		P95Ms:       percentile(durations, 0.95),
		P99Ms:       percentile(durations, 0.99),
		MinMs:       durations[0],
		MaxMs:       durations[n-1],
		SuccessRate: float64(successes) / float64(n),
	}
}

// percentile assumes sorted input.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	idx := p * float64(len(sorted)-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Clear empties the ring buffer (used by performance_clear_metrics).
func (m *Monitor) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ring = make([]Metric, ringCapacity)
	m.next = 0
	m.filled = false
}

func cloneThresholds(src map[string]Threshold) map[string]Threshold {
	out := make(map[string]Threshold, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
