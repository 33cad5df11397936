// Package snapshot persists clock snapshots on the driving device so an
// in-progress clock survives process restarts. Snapshots are keyed per
// tournament and day.
package snapshot

import (
	"fmt"
	"sync"

	"github.com/pokerfloor/pokerfloor/internal/clock"
)

// Key builds the storage key for one tournament's clock on one day.
func Key(tournamentID string, dayIndex int) string {
	if dayIndex < 0 {
		dayIndex = 0
	}
	return fmt.Sprintf("%s:%d", tournamentID, dayIndex)
}

type Store interface {
	Get(key string) (clock.Snapshot, bool, error)
	Put(key string, snap clock.Snapshot) error
	Delete(key string) error
	Close() error
}

// MemStore is an in-memory Store for tests and ephemeral viewers.
type MemStore struct {
	mu    sync.Mutex
	snaps map[string]clock.Snapshot
}

func NewMemStore() *MemStore {
	return &MemStore{snaps: make(map[string]clock.Snapshot)}
}

func (s *MemStore) Get(key string) (clock.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[key]
	return snap, ok, nil
}

func (s *MemStore) Put(key string, snap clock.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[key] = snap
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, key)
	return nil
}

func (s *MemStore) Close() error { return nil }
