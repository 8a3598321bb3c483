package catalog

import (
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Snapshot is the complete application state produced by one load.
// It is never mutated after construction; reloads build a new one.
type Snapshot struct {
	Items      []domain.Item
	Categories []string
	Source     string
	LoadedAt   time.Time

	// Err is set when the load failed. Items and Categories are then empty.
	Err error
}

// NewSnapshot builds a snapshot from normalized items and derives the category set.
func NewSnapshot(source string, items []domain.Item, loadedAt time.Time) *Snapshot {
	return &Snapshot{
		Items:      items,
		Categories: Categories(items),
		Source:     source,
		LoadedAt:   loadedAt,
	}
}

// FailedSnapshot records a load failure with no items.
func FailedSnapshot(source string, err error, at time.Time) *Snapshot {
	return &Snapshot{
		Source:   source,
		LoadedAt: at,
		Err:      err,
	}
}

// Failed reports whether the snapshot stands for a failed load.
func (s *Snapshot) Failed() bool {
	return s != nil && s.Err != nil
}

// Count returns the number of items.
func (s *Snapshot) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}
