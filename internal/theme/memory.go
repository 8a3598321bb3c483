package theme

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

type entry struct {
	theme    domain.Theme
	lastSeen time.Time
}

// MemoryStore keeps preferences in process. Entries not read or written for
// longer than the TTL are removed by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory preference store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, visitor string) (domain.Theme, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[visitor]
	if !ok {
		return "", false, nil
	}
	e.lastSeen = m.now()
	m.entries[visitor] = e
	return e.theme, true, nil
}

func (m *MemoryStore) Set(_ context.Context, visitor string, t domain.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[visitor] = entry{theme: t, lastSeen: m.now()}
	return nil
}

// Len returns the number of stored preferences.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Sweep removes preferences last seen before now-ttl and returns how many were removed.
func (m *MemoryStore) Sweep(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for visitor, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			delete(m.entries, visitor)
			removed++
		}
	}
	return removed
}

// CountPreferences returns the number of stored preferences.
func (m *MemoryStore) CountPreferences(context.Context) (int, error) {
	return m.Len(), nil
}
