package core

// scheduler.go runs background maintenance for the session store.
//
// The in-memory store only forgets idle sessions when they are touched, so a
// periodic sweep reclaims sessions of visitors who never came back. Redis
// expires keys on its own and needs no sweep.

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is implemented by stores that need periodic eviction.
type Sweeper interface {
	Sweep() int
}

// StartSessionSweeper evicts idle sessions every interval until ctx is cancelled.
// It returns immediately when the store expires sessions by itself.
func (s *Service) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	sweeper, ok := s.store.(Sweeper)
	if !ok {
		slog.Debug("session store expires entries itself, sweeper not started")
		return
	}

	slog.Info("session sweeper started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			runSweep(sweeper)
		}
	}
}

// runSweep performs one eviction pass.
func runSweep(sweeper Sweeper) int {
	start := time.Now()
	removed := sweeper.Sweep()
	if removed > 0 {
		slog.Info("expired sessions removed",
			"sessions_removed", removed,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return removed
}
