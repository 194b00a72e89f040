package state

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/five82/shopper/internal/backend"
)

// Snapshot represents the latest backend health known to the UI.
type Snapshot struct {
	Health              backend.HealthStatus
	HasHealth           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the backend has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Label summarises health for the header.
func (s Snapshot) Label() string {
	switch {
	case s.IsOffline():
		return "offline"
	case s.LastError != nil:
		return "degraded"
	case !s.HasHealth:
		return "checking"
	}
	if status := s.Health.Status(); status != "" {
		return status
	}
	return "online"
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records the outcome of one health check. When err is non-nil the
// previous payload is kept but the error is recorded for visibility.
func (s *Store) Update(health backend.HealthStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Health = maps.Clone(health)
	s.snapshot.HasHealth = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Health = maps.Clone(s.snapshot.Health)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
