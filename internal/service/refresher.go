package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/surgeproject/surge/internal/domain"
)

// CongestionComputer is the slice of the aggregator the refresher wraps.
type CongestionComputer interface {
	Compute(ctx context.Context, now time.Time) (domain.CongestionReport, error)
}

// Refresher recomputes the congestion report on a fixed interval and serves
// queries from the cached copy, so a busy /congestion endpoint does not
// trigger a full store pass per request. A tick that arrives while a run is
// still in flight is skipped, never queued.
type Refresher struct {
	agg      CongestionComputer
	interval time.Duration
	log      *slog.Logger

	// running is held for the duration of one aggregation pass; TryLock on
	// it implements the skip-if-busy tick rule.
	running sync.Mutex

	mu     sync.RWMutex
	latest domain.CongestionReport
	ready  bool
}

// NewRefresher constructs a Refresher around agg.
func NewRefresher(agg CongestionComputer, interval time.Duration, log *slog.Logger) *Refresher {
	return &Refresher{agg: agg, interval: interval, log: log}
}

// Run refreshes once immediately, then on every tick until ctx is cancelled.
// Call it in its own goroutine.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh runs one aggregation pass and caches the result. If a previous
// pass is still in flight, the call returns immediately.
func (r *Refresher) refresh(ctx context.Context) {
	if !r.running.TryLock() {
		r.log.Warn("aggregation tick skipped, previous run still in flight")
		return
	}
	defer r.running.Unlock()

	report, err := r.agg.Compute(ctx, time.Now().UTC())
	if err != nil {
		r.log.Error("congestion refresh failed", "error", err)
		return
	}

	r.mu.Lock()
	r.latest = report
	r.ready = true
	r.mu.Unlock()
}

// Compute returns the most recently cached report. Before the first
// successful refresh it falls through to a synchronous aggregation pass, so
// callers never see an empty report. It satisfies the same interface as the
// aggregator, letting the handler stay indifferent to the trigger mode.
func (r *Refresher) Compute(ctx context.Context, now time.Time) (domain.CongestionReport, error) {
	r.mu.RLock()
	if r.ready {
		report := r.latest
		r.mu.RUnlock()
		return report, nil
	}
	r.mu.RUnlock()

	return r.agg.Compute(ctx, now)
}
