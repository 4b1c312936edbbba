package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
)

func testConfig() Config {
	return Config{
		MaxInstances: 3,
		InstanceTTL:  time.Hour,
		MaxIdleTime:  time.Minute,
		ReadyTimeout: time.Second,
		CanvasWidth:  800,
		CanvasHeight: 600,
		AppName:      browser.AppClassic,
		Headless:     true,
	}
}

func newTestPool() *Pool {
	return New(testConfig(), time.Hour, nil)
}

func TestGetStatsOnEmptyPool(t *testing.T) {
	p := newTestPool()
	stats := p.GetStats()
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.EstimatedMemMB)
}

func TestGetStatsComputesAveragesAndMemEstimate(t *testing.T) {
	p := newTestPool()
	now := time.Now()
	p.entries["a"] = &entry{id: "a", driver: browser.New(nil), active: true, created: now.Add(-time.Minute), lastUsed: now, useCount: 2}
	p.entries["b"] = &entry{id: "b", driver: browser.New(nil), active: false, created: now.Add(-time.Hour), lastUsed: now.Add(-time.Minute), useCount: 4}

	stats := p.GetStats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Inactive)
	assert.InDelta(t, 3.0, stats.AverageUseCount, 0.001)
	assert.InDelta(t, 150.0, stats.EstimatedMemMB, 0.001)
	assert.True(t, stats.OldestAgeSeconds >= 59)
}

func TestSweepEvictsOnlyInactiveExpiredInstances(t *testing.T) {
	p := newTestPool()
	now := time.Now()

	// Inactive, idle beyond MaxIdleTime: should be evicted.
	p.entries["expired-idle"] = &entry{id: "expired-idle", driver: browser.New(nil), active: false, created: now, lastUsed: now.Add(-2 * time.Minute)}
	// Inactive, but fresh: should survive.
	p.entries["fresh"] = &entry{id: "fresh", driver: browser.New(nil), active: false, created: now, lastUsed: now}
	// Active and idle-looking: must never be evicted while active.
	p.entries["active"] = &entry{id: "active", driver: browser.New(nil), active: true, created: now, lastUsed: now.Add(-2 * time.Minute)}

	p.sweep(nil)

	require.Len(t, p.entries, 2)
	_, hasFresh := p.entries["fresh"]
	_, hasActive := p.entries["active"]
	assert.True(t, hasFresh)
	assert.True(t, hasActive)
}

func TestSweepEvictsExpiredByAgeEvenIfRecentlyUsed(t *testing.T) {
	p := newTestPool()
	now := time.Now()
	p.entries["aged-out"] = &entry{id: "aged-out", driver: browser.New(nil), active: false, created: now.Add(-2 * time.Hour), lastUsed: now}

	p.sweep(nil)

	assert.Empty(t, p.entries)
}

func TestAcquireReturnsFirstInactiveInstance(t *testing.T) {
	p := newTestPool()
	now := time.Now()
	p.entries["idle-one"] = &entry{id: "idle-one", driver: browser.New(nil), active: false, created: now, lastUsed: now, useCount: 1}

	id, driver, err := p.Acquire(nil)
	require.NoError(t, err)
	assert.Equal(t, InstanceID("idle-one"), id)
	assert.NotNil(t, driver)
	assert.True(t, p.entries["idle-one"].active)
	assert.Equal(t, 2, p.entries["idle-one"].useCount)
}
