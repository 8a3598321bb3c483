package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/sources/assets"
)

// RecordSource yields the raw records of the asset list.
type RecordSource interface {
	Source() string
	Load(ctx context.Context) ([]assets.Record, error)
}

// CatalogReloader loads the asset list into the catalog store on start, then on
// every tick and manual trigger.
type CatalogReloader struct {
	source        RecordSource
	store         *catalog.Store
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger <-chan struct{}
	now           func() time.Time
}

// NewCatalogReloader creates a reloader. An interval of 0 disables periodic
// reloads, leaving only manual triggers.
func NewCatalogReloader(
	source RecordSource,
	store *catalog.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		source:        source,
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		now:           time.Now,
	}
}

// Start performs the initial load and starts the reload loop. A failed initial
// load does not fail startup: the failure snapshot is served instead.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Error("initial catalog load failed",
			logger.String("source", cr.source.Source()),
			logger.Error(err))
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if cr.interval > 0 {
		ticker = time.NewTicker(cr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				cr.reloadAndLog(ctx)
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				cr.reloadAndLog(ctx)
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reload loop. It is safe to call more than once.
func (cr *CatalogReloader) Stop() {
	cr.stopOnce.Do(func() { close(cr.stopCh) })
}

func (cr *CatalogReloader) reloadAndLog(ctx context.Context) {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Error("failed to reload catalog",
			logger.String("source", cr.source.Source()),
			logger.Error(err))
	}
}

// Reload fetches and normalizes the asset list and installs the resulting
// snapshot. On failure a failed snapshot is offered to the store, which keeps
// the last good one if any.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	start := cr.now()
	source := cr.source.Source()

	records, err := cr.source.Load(ctx)
	if err != nil {
		snap := catalog.FailedSnapshot(source, err, start)
		if !cr.store.Replace(snap) {
			cr.logger.Warn("keeping previous catalog after failed reload",
				logger.String("source", source))
		}
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	items := assets.Normalize(records)
	cr.store.Replace(catalog.NewSnapshot(source, items, start))

	cr.logger.Info("catalog loaded",
		logger.String("source", source),
		logger.Int("items", len(items)),
		logger.Duration("took", cr.now().Sub(start)))

	return nil
}
