// Package seatcounter implements the client-side seat counter: a
// read-through cache over the availability endpoint with an optimistic
// local override after a submission and timer-based reconciliation.
// It is a presentation-layer consumer, not a concurrency mechanism; no
// ordering guarantee exists between independent counters.
package seatcounter

import (
	"context"
	"sync"
	"time"
)

// Snapshot mirrors the availability endpoint's capacity view.
type Snapshot struct {
	TotalSeats     int  `json:"totalSeats"`
	ReservedSeats  int  `json:"reservedSeats"`
	RemainingSeats int  `json:"remainingSeats"`
	IsFull         bool `json:"isFull"`
}

// Fetcher retrieves the authoritative capacity snapshot.  Production
// code uses HTTPFetcher against the availability endpoint; tests use
// fakes.
type Fetcher interface {
	Availability(ctx context.Context) (Snapshot, error)
}

// State names the counter's reconciliation phase.
type State int

const (
	// StateSynced means the displayed value is the last server value.
	StateSynced State = iota
	// StateOptimisticPending means a local guess overrides the server
	// value while the reconcile timer is armed.
	StateOptimisticPending
	// StateReconciling means the timer fired and a fresh read is
	// replacing the guess.
	StateReconciling
)

const (
	defaultPollInterval   = 30 * time.Second
	defaultReconcileDelay = 5 * time.Second
	defaultCapacity       = 15
)

// Counter keeps a displayed remaining-seat number reasonably fresh.
// It polls the read path on an interval, and after a local reservation
// attempt it decrements the displayed value immediately, reconciling
// against the server after a short delay.  All methods are safe for
// concurrent use.
type Counter struct {
	fetcher        Fetcher
	pollInterval   time.Duration
	reconcileDelay time.Duration

	mu         sync.Mutex
	last       Snapshot
	haveLast   bool
	optimistic *int
	previous   *int // optimistic value before the in-flight attempt
	state      State
	timer      *time.Timer
}

// Option customizes a Counter.  Tests shorten the timers.
type Option func(*Counter)

// WithPollInterval overrides the 30-second poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Counter) { c.pollInterval = d }
}

// WithReconcileDelay overrides the 5-second reconciliation delay.
func WithReconcileDelay(d time.Duration) Option {
	return func(c *Counter) { c.reconcileDelay = d }
}

// New builds a Counter over the given fetcher.  Until the first fetch
// succeeds the counter reports a full house of free seats, matching
// the form's initial render.
func New(fetcher Fetcher, opts ...Option) *Counter {
	c := &Counter{
		fetcher:        fetcher,
		pollInterval:   defaultPollInterval,
		reconcileDelay: defaultReconcileDelay,
		last: Snapshot{
			TotalSeats:     defaultCapacity,
			RemainingSeats: defaultCapacity,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run fetches immediately and then on every poll tick until the
// context is cancelled.  Fetch errors leave the cached value in place.
func (c *Counter) Run(ctx context.Context) {
	_ = c.Refresh(ctx)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}

// Refresh reads the authoritative snapshot and caches it.  The
// optimistic override, if any, stays in place; only the reconcile
// timer clears it.
func (c *Counter) Refresh(ctx context.Context) error {
	snap, err := c.fetcher.Availability(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.last = snap
	c.haveLast = true
	c.mu.Unlock()
	return nil
}

// Remaining returns the displayed remaining-seat count: the optimistic
// override when one is active, otherwise the last known server value.
func (c *Counter) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.optimistic != nil {
		return *c.optimistic
	}
	return c.last.RemainingSeats
}

// IsFull reports the displayed full state: the logical OR of the
// optimistic remaining hitting zero and the last server full flag.
func (c *Counter) IsFull() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	remaining := c.last.RemainingSeats
	if c.optimistic != nil {
		remaining = *c.optimistic
	}
	return remaining <= 0 || c.last.IsFull
}

// State returns the current reconciliation state.
func (c *Counter) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// NoteReservation applies the optimistic decrement after a successful
// local submission: the displayed count drops by one immediately, and
// the reconcile timer is armed to replace the guess with a fresh read.
func (c *Counter) NoteReservation() {
	c.mu.Lock()
	c.previous = c.optimistic
	guess := c.last.RemainingSeats - 1
	if c.optimistic != nil {
		guess = *c.optimistic - 1
	}
	if guess < 0 {
		guess = 0
	}
	c.optimistic = &guess
	c.state = StateOptimisticPending
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.reconcileDelay, c.reconcile)
	c.mu.Unlock()
}

// NoteFailure reverts the optimistic override to its pre-attempt value
// immediately.  It is called when a reservation attempt fails after
// the decrement was already displayed.
func (c *Counter) NoteFailure() {
	c.mu.Lock()
	c.optimistic = c.previous
	c.previous = nil
	c.state = StateSynced
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
}

// reconcile fires when the delay elapses: the guess is dropped and a
// fresh read becomes the displayed value.
func (c *Counter) reconcile() {
	c.mu.Lock()
	c.state = StateReconciling
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = c.Refresh(ctx)

	c.mu.Lock()
	c.optimistic = nil
	c.previous = nil
	c.state = StateSynced
	c.timer = nil
	c.mu.Unlock()
}
