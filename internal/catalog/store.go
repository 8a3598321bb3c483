package catalog

import (
	"sync"
)

// Store holds the current snapshot and swaps it atomically on reload.
// Readers always observe a complete snapshot.
type Store struct {
	mu       sync.RWMutex
	current  *Snapshot
	lastGood *Snapshot
	reloads  int
}

// NewStore creates an empty store. Current returns nil until the first Replace.
func NewStore() *Store {
	return &Store{}
}

// Replace installs snap. A failed snapshot only replaces the current one when
// no successful load happened yet, so a broken reload keeps serving the last good list.
// It reports whether snap became current.
func (s *Store) Replace(snap *Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reloads++
	if snap.Failed() && s.lastGood != nil {
		return false
	}
	s.current = snap
	if !snap.Failed() {
		s.lastGood = snap
	}
	return true
}

// Current returns the snapshot to serve, or nil before the first load attempt.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Ready reports whether a load attempt has completed, successful or not.
func (s *Store) Ready() bool {
	return s.Current() != nil
}

// Reloads returns the number of load attempts recorded.
func (s *Store) Reloads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.reloads
}
