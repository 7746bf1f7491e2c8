package seatcounter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeFetcher serves a settable snapshot and counts fetches.
type fakeFetcher struct {
	mu      sync.Mutex
	snap    Snapshot
	err     error
	fetches int
}

func (f *fakeFetcher) set(snap Snapshot) {
	f.mu.Lock()
	f.snap = snap
	f.mu.Unlock()
}

func (f *fakeFetcher) Availability(ctx context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return Snapshot{}, f.err
	}
	return f.snap, nil
}

func snapshot(remaining int) Snapshot {
	return Snapshot{
		TotalSeats:     15,
		ReservedSeats:  15 - remaining,
		RemainingSeats: remaining,
		IsFull:         remaining <= 0,
	}
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestDefaultsBeforeFirstFetch(t *testing.T) {
	c := New(&fakeFetcher{})
	if got := c.Remaining(); got != 15 {
		t.Errorf("initial remaining = %d, want 15", got)
	}
	if c.IsFull() {
		t.Error("counter reports full before any data")
	}
}

func TestRefreshCachesServerValue(t *testing.T) {
	f := &fakeFetcher{}
	f.set(snapshot(3))
	c := New(f)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Remaining(); got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}
}

func TestRefreshErrorKeepsCachedValue(t *testing.T) {
	f := &fakeFetcher{}
	f.set(snapshot(5))
	c := New(f)
	_ = c.Refresh(context.Background())

	f.mu.Lock()
	f.err = errors.New("server unreachable")
	f.mu.Unlock()

	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if got := c.Remaining(); got != 5 {
		t.Errorf("remaining = %d after failed refresh, want cached 5", got)
	}
}

func TestOptimisticDecrementAndReconcile(t *testing.T) {
	f := &fakeFetcher{}
	f.set(snapshot(3))
	c := New(f, WithReconcileDelay(30*time.Millisecond))
	_ = c.Refresh(context.Background())

	c.NoteReservation()
	if got := c.Remaining(); got != 2 {
		t.Errorf("optimistic remaining = %d, want 2", got)
	}
	if st := c.State(); st != StateOptimisticPending {
		t.Errorf("state = %v, want optimistic-pending", st)
	}

	// The server caught up with the write by the time the timer fires.
	f.set(snapshot(2))

	waitFor(t, func() bool { return c.State() == StateSynced }, "counter never reconciled")
	if got := c.Remaining(); got != 2 {
		t.Errorf("reconciled remaining = %d, want authoritative 2", got)
	}
}

func TestReconcileOverridesBadGuess(t *testing.T) {
	f := &fakeFetcher{}
	f.set(snapshot(3))
	c := New(f, WithReconcileDelay(30*time.Millisecond))
	_ = c.Refresh(context.Background())

	c.NoteReservation()
	// Another visitor grabbed a seat too: the server says 1, not 2.
	f.set(snapshot(1))

	waitFor(t, func() bool { return c.State() == StateSynced }, "counter never reconciled")
	if got := c.Remaining(); got != 1 {
		t.Errorf("reconciled remaining = %d, want authoritative 1", got)
	}
}

func TestFailureRevertsImmediately(t *testing.T) {
	f := &fakeFetcher{}
	f.set(snapshot(3))
	c := New(f, WithReconcileDelay(time.Hour))
	_ = c.Refresh(context.Background())

	c.NoteReservation()
	if got := c.Remaining(); got != 2 {
		t.Fatalf("optimistic remaining = %d, want 2", got)
	}
	c.NoteFailure()
	if got := c.Remaining(); got != 3 {
		t.Errorf("reverted remaining = %d, want pre-attempt 3", got)
	}
	if st := c.State(); st != StateSynced {
		t.Errorf("state = %v, want synced", st)
	}
}

func TestIsFullIsOrOfOptimisticAndServerFlag(t *testing.T) {
	f := &fakeFetcher{}
	f.set(snapshot(1))
	c := New(f, WithReconcileDelay(time.Hour))
	_ = c.Refresh(context.Background())

	if c.IsFull() {
		t.Error("one seat left should not report full")
	}

	// Optimistic decrement to zero trips the flag before the server knows.
	c.NoteReservation()
	if !c.IsFull() {
		t.Error("optimistic zero should report full")
	}
	c.NoteFailure()

	// Server-side full flag trips it regardless of the local value.
	f.set(Snapshot{TotalSeats: 15, ReservedSeats: 15, RemainingSeats: 0, IsFull: true})
	_ = c.Refresh(context.Background())
	if !c.IsFull() {
		t.Error("server full flag should report full")
	}
}

func TestRunPollsOnInterval(t *testing.T) {
	f := &fakeFetcher{}
	f.set(snapshot(4))
	c := New(f, WithPollInterval(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	waitFor(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.fetches >= 3
	}, "counter did not keep polling")
	if got := c.Remaining(); got != 4 {
		t.Errorf("remaining = %d, want 4", got)
	}
}
