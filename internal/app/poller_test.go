package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/five82/shopper/internal/backend"
	"github.com/five82/shopper/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeChecker struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeChecker) CheckHealth(context.Context) (backend.HealthStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return backend.HealthStatus{"status": "ok"}, nil
}

func TestRefreshRecordsHealth(t *testing.T) {
	store := &state.Store{}
	refresh(context.Background(), store, &fakeChecker{}, nil)

	snap := store.Snapshot()
	if !snap.HasHealth || snap.Label() != "ok" {
		t.Fatalf("snapshot = %+v, want healthy ok", snap)
	}
}

func TestRefreshRecordsFailures(t *testing.T) {
	store := &state.Store{}
	checker := &fakeChecker{err: errors.New("connection refused")}
	refresh(context.Background(), store, checker, slog.New(slog.DiscardHandler))
	refresh(context.Background(), store, checker, slog.New(slog.DiscardHandler))

	snap := store.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("failures = %d, want offline after 2", snap.ConsecutiveFailures)
	}
}

func TestRefreshIgnoresShutdown(t *testing.T) {
	store := &state.Store{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	refresh(ctx, store, &fakeChecker{err: context.Canceled}, nil)

	if store.Snapshot().ConsecutiveFailures != 0 {
		t.Fatalf("cancelled check should not count as a failure")
	}
}

func TestStartPollerChecksImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := &state.Store{}
	checker := &fakeChecker{}

	StartPoller(ctx, store, checker, time.Hour, nil)

	deadline := time.Now().Add(2 * time.Second)
	for !store.Snapshot().HasHealth {
		if time.Now().After(deadline) {
			t.Fatalf("poller did not run the first check")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
