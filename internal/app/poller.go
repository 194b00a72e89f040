package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/shopper/internal/backend"
	"github.com/five82/shopper/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
	healthTimeout       = 5 * time.Second
)

// HealthChecker is the subset of the backend the poller needs.
type HealthChecker interface {
	CheckHealth(ctx context.Context) (backend.HealthStatus, error)
}

// StartPoller launches a background goroutine that records backend health
// in the store. Consecutive failures back off exponentially up to
// maxBackoff. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client HealthChecker, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, client, logger)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// calculateBackoff doubles the interval for every consecutive failure.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func refresh(ctx context.Context, store *state.Store, client HealthChecker, logger *slog.Logger) {
	checkCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	health, err := client.CheckHealth(checkCtx)
	if err != nil {
		if ctx.Err() != nil {
			// Shutting down
			return
		}
		store.Update(nil, err)
		logger.Debug("health check failed", "error", err)
		return
	}
	store.Update(health, nil)
}
