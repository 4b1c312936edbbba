// Package pool implements the Instance Pool (C5): a bounded, mutex-guarded
// set of browser.Driver instances with acquire/release/warm-up/eviction
// semantics, backed by internal/scheduler for its idle sweeper.
package pool

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/errs"
	"github.com/geogebra-mcp/geogebra-mcp/internal/scheduler"
)

// InstanceID uniquely identifies a pooled Instance.
type InstanceID string

// entry is one pooled Instance and its bookkeeping.
type entry struct {
	id       InstanceID
	driver   *browser.Driver
	active   bool
	created  time.Time
	lastUsed time.Time
	useCount int
}

// Config bounds the pool's behavior (mirrors config.PoolConfig; kept as a
// separate type so this package has no dependency on internal/config).
type Config struct {
	MaxInstances int
	InstanceTTL  time.Duration
	MaxIdleTime  time.Duration
	ReadyTimeout time.Duration
	CanvasWidth  int
	CanvasHeight int
	AppName      browser.AppName
	Headless     bool
}

// Pool owns every Instance; no other component may hold a driver reference
// across an await boundary beyond the scope of a single dispatch.
type Pool struct {
	mu      sync.Mutex
	entries map[InstanceID]*entry
	cfg     Config
	log     *slog.Logger
	sched   *scheduler.Scheduler
}

// New creates an empty Pool and registers its idle sweeper; Start runs it.
func New(cfg Config, sweepInterval time.Duration, logger *slog.Logger) *Pool {
	p := &Pool{
		entries: make(map[InstanceID]*entry),
		cfg:     cfg,
		log:     logger,
	}
	p.sched = scheduler.NewScheduler(logger)
	p.sched.AddJob(sweepJob{p}, sweepInterval)
	return p
}

// Start begins the background idle sweeper.
func (p *Pool) Start(ctx context.Context) {
	p.sched.Start(ctx)
}

type sweepJob struct{ p *Pool }

func (sweepJob) Name() string { return "pool-idle-sweeper" }

func (j sweepJob) Run(ctx context.Context) error {
	j.p.sweep(ctx)
	return nil
}

// Acquire returns an Instance per spec.md §4.4's acquire policy: the first
// inactive Instance if any; else a newly created one if under the cap; else
// a forced reclaim (oldest inactive, or — if none is inactive — the
// least-recently-used active Instance) followed by a fresh replacement.
func (p *Pool) Acquire(ctx context.Context) (InstanceID, *browser.Driver, error) {
	p.mu.Lock()
	for id, e := range p.entries {
		if !e.active {
			e.active = true
			e.useCount++
			p.mu.Unlock()
			return id, e.driver, nil
		}
	}
	if len(p.entries) < p.cfg.MaxInstances {
		id := p.reserveSlot()
		p.mu.Unlock()
		return p.initReserved(ctx, id)
	}
	p.mu.Unlock()

	if err := p.forceReclaimOldest(ctx); err != nil {
		return "", nil, err
	}
	return p.createAndActivate(ctx)
}

// forceReclaimOldest evicts the oldest inactive Instance, or — if every
// Instance is active — the least-recently-used active one. This preserves
// the spec's literal instruction to reclaim an *active* instance as a last
// resort; see DESIGN.md's Open Question decision on this behavior. An
// active victim's driver is cleaned up even though its caller may still be
// using it.
func (p *Pool) forceReclaimOldest(ctx context.Context) error {
	p.mu.Lock()
	var victim *entry
	for _, e := range p.entries {
		if e.active {
			continue
		}
		if victim == nil || e.lastUsed.Before(victim.lastUsed) {
			victim = e
		}
	}
	if victim == nil {
		for _, e := range p.entries {
			if victim == nil || e.lastUsed.Before(victim.lastUsed) {
				victim = e
			}
		}
	}
	if victim == nil {
		p.mu.Unlock()
		return errs.New(errs.InternalError, "pool is empty but at capacity")
	}
	id := victim.id
	driver := victim.driver
	delete(p.entries, id)
	p.mu.Unlock()

	if p.log != nil {
		p.log.Warn("force-reclaiming instance to satisfy acquire", "instance_id", id)
	}
	_ = driver.Cleanup(ctx)
	return nil
}

// reserveSlot must be called with p.mu held. It inserts a placeholder active
// entry (no driver yet) so a concurrent Acquire sees the slot as taken before
// the slow browser.Driver.Initialize call below even starts, which keeps the
// pool from overshooting MaxInstances under concurrent acquires.
func (p *Pool) reserveSlot() InstanceID {
	id := InstanceID(uuid.NewString())
	now := time.Now()
	p.entries[id] = &entry{
		id:       id,
		active:   true,
		created:  now,
		lastUsed: now,
		useCount: 1,
	}
	return id
}

// initReserved initializes the browser driver for a slot reserved by
// reserveSlot. On failure the placeholder entry is removed, freeing the slot
// back up for the next acquire.
func (p *Pool) initReserved(ctx context.Context, id InstanceID) (InstanceID, *browser.Driver, error) {
	driver := browser.New(p.log)
	if err := driver.Initialize(ctx, browser.Options{
		AppName:      p.cfg.AppName,
		CanvasWidth:  p.cfg.CanvasWidth,
		CanvasHeight: p.cfg.CanvasHeight,
		Headless:     p.cfg.Headless,
		ReadyTimeout: p.cfg.ReadyTimeout,
	}); err != nil {
		p.mu.Lock()
		delete(p.entries, id)
		p.mu.Unlock()
		return "", nil, fmt.Errorf("initializing pooled instance: %w", err)
	}

	p.mu.Lock()
	p.entries[id].driver = driver
	p.mu.Unlock()
	return id, driver, nil
}

func (p *Pool) createAndActivate(ctx context.Context) (InstanceID, *browser.Driver, error) {
	p.mu.Lock()
	id := p.reserveSlot()
	p.mu.Unlock()
	return p.initReserved(ctx, id)
}

// Release resets an Instance's Construction, then marks it inactive and
// updates its last-used time — in that order, so a concurrent acquire never
// observes the Instance as inactive before the reset completes (spec.md
// §5.3). A reset failure is logged but never blocks release.
func (p *Pool) Release(ctx context.Context, id InstanceID) {
	p.mu.Lock()
	e, ok := p.entries[id]
	p.mu.Unlock()
	if !ok {
		return
	}

	if err := e.driver.NewConstruction(ctx); err != nil && p.log != nil {
		p.log.Warn("resetting instance on release failed", "instance_id", id, "error", err)
	}

	p.mu.Lock()
	e.active = false
	e.lastUsed = time.Now()
	p.mu.Unlock()
}

// sweep evicts Instances that are inactive AND (idle beyond MaxIdleTime OR
// older than InstanceTTL).
func (p *Pool) sweep(ctx context.Context) {
	now := time.Now()

	p.mu.Lock()
	var victims []*entry
	for _, e := range p.entries {
		if e.active {
			continue
		}
		idle := now.Sub(e.lastUsed)
		age := now.Sub(e.created)
		if idle > p.cfg.MaxIdleTime || age > p.cfg.InstanceTTL {
			victims = append(victims, e)
		}
	}
	for _, v := range victims {
		delete(p.entries, v.id)
	}
	p.mu.Unlock()

	for _, v := range victims {
		if p.log != nil {
			p.log.Info("sweeping idle instance", "instance_id", v.id)
		}
		_ = v.driver.Cleanup(ctx)
	}
}

// WarmUp creates up to count Instances concurrently, capped at the pool's
// max, and immediately releases each.
func (p *Pool) WarmUp(ctx context.Context, count int) error {
	p.mu.Lock()
	room := p.cfg.MaxInstances - len(p.entries)
	p.mu.Unlock()
	if count > room {
		count = room
	}
	if count <= 0 {
		return nil
	}

	var wg sync.WaitGroup
	errCh := make(chan error, count)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _, err := p.createAndActivate(ctx)
			if err != nil {
				errCh <- err
				return
			}
			p.Release(ctx, id)
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// Stats summarizes the pool's current state (spec.md §4.4 stats snapshot).
type Stats struct {
	Total            int
	Active           int
	Inactive         int
	AverageUseCount  float64
	OldestAgeSeconds float64
	EstimatedMemMB   float64
}

// memEstimateMBPerInstance is the rough per-Instance footprint used for the
// pool's memory estimate (spec.md §4.4: "≈75 MB × |Pool|").
const memEstimateMBPerInstance = 75.0

// GetStats returns a point-in-time Stats snapshot.
func (p *Pool) GetStats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	stats := Stats{Total: len(p.entries)}
	var totalUse int
	var oldest time.Time
	for _, e := range p.entries {
		if e.active {
			stats.Active++
		} else {
			stats.Inactive++
		}
		totalUse += e.useCount
		if oldest.IsZero() || e.created.Before(oldest) {
			oldest = e.created
		}
	}
	if stats.Total > 0 {
		stats.AverageUseCount = float64(totalUse) / float64(stats.Total)
		stats.OldestAgeSeconds = now.Sub(oldest).Seconds()
	}
	stats.EstimatedMemMB = memEstimateMBPerInstance * float64(stats.Total)
	return stats
}

// Shutdown cancels the idle sweeper and cleans up every Instance in
// parallel (spec.md §4.4 shutdown).
func (p *Pool) Shutdown(ctx context.Context) {
	p.sched.Stop()

	p.mu.Lock()
	entries := make([]*entry, 0, len(p.entries))
	for _, e := range p.entries {
		entries = append(entries, e)
	}
	p.entries = make(map[InstanceID]*entry)
	p.mu.Unlock()

	var wg sync.WaitGroup
	for _, e := range entries {
		wg.Add(1)
		go func(e *entry) {
			defer wg.Done()
			if e.driver != nil {
				_ = e.driver.Cleanup(ctx)
			}
		}(e)
	}
	wg.Wait()
}
