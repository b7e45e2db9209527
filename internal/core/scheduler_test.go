package core

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) Sweep() int {
	c.calls.Add(1)
	return 0
}

// sweepingStore is a SessionStore that also counts sweeps.
type sweepingStore struct {
	*MemoryStore
	countingSweeper
}

func (s *sweepingStore) Sweep() int {
	s.countingSweeper.Sweep()
	return s.MemoryStore.Sweep()
}

func TestRunSweep(t *testing.T) {
	store, clock := newTestMemoryStore(time.Minute)
	ctx := context.Background()
	_ = store.Save(ctx, &Session{ID: "a"})
	_ = store.Save(ctx, &Session{ID: "b"})
	clock.Advance(2 * time.Minute)

	if removed := runSweep(store); removed != 2 {
		t.Errorf("runSweep() = %d, want 2", removed)
	}
}

func TestStartSessionSweeper_StopsOnCancel(t *testing.T) {
	store := &sweepingStore{MemoryStore: NewMemoryStore(time.Hour)}
	svc := NewService(store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.StartSessionSweeper(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(time.Second)
	for store.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper did not run")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

// expiringStore expires sessions on its own, like Redis.
type expiringStore struct {
	SessionStore
}

func TestStartSessionSweeper_SkipsSelfExpiringStore(t *testing.T) {
	svc := NewService(expiringStore{}, nil)

	done := make(chan struct{})
	go func() {
		svc.StartSessionSweeper(context.Background(), time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper should return immediately for stores without Sweep")
	}
}
