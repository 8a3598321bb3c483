package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/logger"
)

const (
	// DefaultPreferenceTTL is how long an unused theme preference is kept
	DefaultPreferenceTTL = 365 * 24 * time.Hour
)

// Sweepable is a preference store whose stale entries can be purged.
type Sweepable interface {
	Sweep(now time.Time, ttl time.Duration) int
}

// PreferenceSweeper periodically removes stale in-memory theme preferences
type PreferenceSweeper struct {
	store    Sweepable
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewPreferenceSweeper creates a new preference sweeper
func NewPreferenceSweeper(
	store Sweepable,
	log logger.Logger,
	interval time.Duration,
	ttl time.Duration,
) *PreferenceSweeper {
	if ttl == 0 {
		ttl = DefaultPreferenceTTL
	}

	return &PreferenceSweeper{
		store:    store,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
}

// Start begins the periodic sweep
func (ps *PreferenceSweeper) Start(ctx context.Context) error {
	ps.Sweep()

	ticker := time.NewTicker(ps.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ps.Sweep()
			case <-ps.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper. Safe to call more than once.
func (ps *PreferenceSweeper) Stop() {
	ps.stopOnce.Do(func() { close(ps.stopCh) })
}

// Sweep removes preferences unused for longer than the TTL and returns how many were removed
func (ps *PreferenceSweeper) Sweep() int {
	removed := ps.store.Sweep(ps.now(), ps.ttl)
	if removed > 0 {
		ps.logger.Info("swept stale theme preferences",
			logger.Int("removed", removed),
			logger.Duration("ttl", ps.ttl))
	} else {
		ps.logger.Debug("no theme preferences to sweep")
	}
	return removed
}
