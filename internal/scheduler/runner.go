// Package scheduler drives the engine's periodic tick cadence.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"postpilot/internal/store"
)

// DefaultInterval is the reference cadence between ticks.
const DefaultInterval = 5 * time.Second

// Runner invokes the store's tick on a steady cadence until its context is
// cancelled. Missed intervals are not caught up: a late tick simply promotes
// everything due as of its own now.
type Runner struct {
	store    *store.Store
	clock    Clock
	interval time.Duration
	logger   *slog.Logger
	onResult func(store.TickResult)
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock replaces the wall clock, used by tests to advance time manually.
func WithClock(clock Clock) Option {
	return func(r *Runner) { r.clock = clock }
}

// WithInterval overrides the cadence interval.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithResultHandler registers a callback receiving each tick's result, e.g.
// to publish promotion events.
func WithResultHandler(fn func(store.TickResult)) Option {
	return func(r *Runner) { r.onResult = fn }
}

// NewRunner creates a Runner ticking the given store.
func NewRunner(s *store.Store, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		store:    s,
		clock:    NewClock(),
		interval: DefaultInterval,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run blocks, ticking the store every interval until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	ticks, stop := r.clock.Ticker(r.interval)
	defer stop()

	r.logger.Info("scheduler started", slog.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("scheduler stopped")
			return
		case <-ticks:
			r.tickOnce()
		}
	}
}

func (r *Runner) tickOnce() {
	now := r.clock.Now()
	result := r.store.Tick(now)

	if len(result.Promoted) > 0 {
		r.logger.Info("promoted scheduled posts",
			slog.Int("promoted", len(result.Promoted)),
			slog.Int("scheduled_remaining", result.ScheduledCount),
			slog.Time("tick_at", now),
		)
	}

	if r.onResult != nil {
		r.onResult(result)
	}
}
