package perf

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMonitor() *Monitor {
	return New(nil, prometheus.NewRegistry())
}

func TestMeasureRecordsSuccessAndFailure(t *testing.T) {
	m := newTestMonitor()
	ctx := context.Background()

	_, err := Measure(ctx, m, "create_point", nil, func(context.Context) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)

	_, err = Measure(ctx, m, "create_point", nil, func(context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	require.Error(t, err)

	stats := m.GetStats("create_point")
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 0.5, stats.SuccessRate, 0.001)
}

func TestGetStatsFiltersByOperation(t *testing.T) {
	m := newTestMonitor()
	ctx := context.Background()

	_, _ = Measure(ctx, m, "create_point", nil, func(context.Context) (int, error) { return 0, nil })
	_, _ = Measure(ctx, m, "export_png", nil, func(context.Context) (int, error) { return 0, nil })

	assert.Equal(t, 1, m.GetStats("create_point").Count)
	assert.Equal(t, 1, m.GetStats("export_png").Count)
	assert.Equal(t, 2, m.GetStats("").Count)
}

func TestRingBufferWrapsAtCapacity(t *testing.T) {
	m := newTestMonitor()
	ctx := context.Background()

	for i := 0; i < ringCapacity+10; i++ {
		_, _ = Measure(ctx, m, "eval_command", nil, func(context.Context) (int, error) { return 0, nil })
	}

	snap := m.Snapshot()
	assert.Len(t, snap, ringCapacity)
}

func TestClearEmptiesRingBuffer(t *testing.T) {
	m := newTestMonitor()
	ctx := context.Background()

	_, _ = Measure(ctx, m, "eval_command", nil, func(context.Context) (int, error) { return 0, nil })
	require.Equal(t, 1, m.GetStats("").Count)

	m.Clear()
	assert.Equal(t, 0, m.GetStats("").Count)
}

func TestPercentileMonotonic(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.LessOrEqual(t, percentile(sorted, 0.50), percentile(sorted, 0.95))
	assert.LessOrEqual(t, percentile(sorted, 0.95), percentile(sorted, 0.99))
	assert.Equal(t, sorted[0], percentile(sorted, 0))
	assert.Equal(t, sorted[len(sorted)-1], percentile(sorted, 1))
}

func TestSetThresholdOverridesDefault(t *testing.T) {
	m := newTestMonitor()
	m.SetThreshold("custom_op", Threshold{WarningMs: 1, CriticalMs: 2})

	m.mu.Lock()
	th := m.thresholds["custom_op"]
	m.mu.Unlock()

	assert.Equal(t, 1.0, th.WarningMs)
	assert.Equal(t, 2.0, th.CriticalMs)
}
