// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package filter owns the two-phase (pending vs. applied) filter lifecycle of a
listing view.

A [Controller] keeps two criteria values: pending, which the user edits freely
with no side effects, and applied, which always matches the displayed result
list. Apply commits pending to applied in one step and triggers exactly one
fetch. Clear resets both to the baseline and triggers one fetch. The free-text
search term lives outside that duality and refetches immediately.

# State Machine

	Idle -> Loading -> {Ready, Failed}

Failed keeps the previous (stale) results and the error. Any action may
trigger a new fetch from any state; there is no retry or backoff.

# Ordering

Each fetch gets a sequence token and its own cancellable context. Starting a
new fetch cancels the previous one, and a completion whose token is not the
latest is discarded, so a slow stale response can never overwrite a newer one.
*/
package filter

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// # Contracts

// Criteria is the constraint on the criteria type a [Controller] manages.
type Criteria[C any] interface {
	comparable

	// WithSearch returns a copy carrying the free-text term.
	WithSearch(term string) C
}

// Fetcher loads the results for criteria (search term already applied).
type Fetcher[C any, T any] func(ctx context.Context, criteria C) ([]T, error)

// State is a phase of the fetch lifecycle.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Snapshot is a consistent view of the controller.
type Snapshot[C any, T any] struct {
	State   State
	Pending C
	Applied C
	Search  string
	Items   []T
	Err     error
}

// Dirty reports whether pending diverges from applied.
func (s Snapshot[C, T]) Dirty() bool {
	return any(s.Pending) != any(s.Applied)
}

// Options configures a [Controller].
type Options[C any, T any] struct {
	// Baseline is the all-unset criteria. Defaults to the zero value.
	Baseline C

	// ResetSearchOnClear also clears the search term on Clear.
	ResetSearchOnClear bool

	// OnChange is called after every state transition, outside the lock.
	OnChange func(Snapshot[C, T])

	// Logger receives fetch failures. Defaults to [slog.Default].
	Logger *slog.Logger
}

// # Controller

// Controller is a reusable draft + committed criteria holder for one listing,
// parameterized by the criteria type C and the entity type T.
//
// # Concurrency
//
// All methods are safe for concurrent use; state has a single writer guarded
// by one mutex.
type Controller[C Criteria[C], T any] struct {
	fetch    Fetcher[C, T]
	baseline C
	options  Options[C, T]
	logger   *slog.Logger

	mu      sync.Mutex
	pending C
	applied C
	search  string
	state   State
	items   []T
	err     error
	seq     uint64
	cancel  context.CancelFunc
}

// New constructs a [Controller] in the Idle state.
func New[C Criteria[C], T any](fetch Fetcher[C, T], options Options[C, T]) *Controller[C, T] {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller[C, T]{
		fetch:    fetch,
		baseline: options.Baseline,
		options:  options,
		logger:   logger,
		pending:  options.Baseline,
		applied:  options.Baseline,
		state:    StateIdle,
	}
}

// # Reads

// Snapshot returns a copy of the current state.
func (c *Controller[C, T]) Snapshot() Snapshot[C, T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Pending returns the criteria being edited.
func (c *Controller[C, T]) Pending() C {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Applied returns the criteria driving the displayed results.
func (c *Controller[C, T]) Applied() C {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied
}

// # Actions

// Edit mutates the pending criteria. It never fetches.
func (c *Controller[C, T]) Edit(mutate func(pending *C)) {
	c.mu.Lock()
	mutate(&c.pending)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Load performs a fetch with the applied criteria and current search term.
// It is used for the initial unfiltered load and for manual retries.
func (c *Controller[C, T]) Load(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	return c.startLocked(ctx)
}

// Apply commits pending to applied and fetches once.
func (c *Controller[C, T]) Apply(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	c.applied = c.pending
	return c.startLocked(ctx)
}

// Clear resets pending and applied to the baseline and fetches once.
func (c *Controller[C, T]) Clear(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	c.pending = c.baseline
	c.applied = c.baseline
	if c.options.ResetSearchOnClear {
		c.search = ""
	}
	return c.startLocked(ctx)
}

// SetSearch changes the free-text term and refetches immediately with the
// applied criteria, regardless of pending edits.
func (c *Controller[C, T]) SetSearch(ctx context.Context, term string) <-chan struct{} {
	c.mu.Lock()
	c.search = term
	return c.startLocked(ctx)
}

// # Fetch Lifecycle

// startLocked launches a fetch and releases the lock. The returned channel is
// closed once this fetch has completed or been superseded.
func (c *Controller[C, T]) startLocked(parent context.Context) <-chan struct{} {
	if c.cancel != nil {
		c.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	c.seq++
	token := c.seq
	c.cancel = cancel
	c.state = StateLoading
	criteria := c.applied.WithSearch(c.search)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		items, err := c.fetch(ctx, criteria)
		c.complete(token, items, err)
	}()

	return done
}

// complete records a fetch result if token is still the latest.
func (c *Controller[C, T]) complete(token uint64, items []T, err error) {
	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		c.logger.Debug("filter_fetch_discarded", slog.Uint64("token", token))
		return
	}

	c.cancel = nil
	if err != nil {
		c.state = StateFailed
		c.err = err
		if !errors.Is(err, context.Canceled) {
			c.logger.Warn("filter_fetch_failed", slog.Any("error", err))
		}
	} else {
		c.state = StateReady
		c.items = items
		c.err = nil
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

func (c *Controller[C, T]) snapshotLocked() Snapshot[C, T] {
	items := make([]T, len(c.items))
	copy(items, c.items)

	return Snapshot[C, T]{
		State:   c.state,
		Pending: c.pending,
		Applied: c.applied,
		Search:  c.search,
		Items:   items,
		Err:     c.err,
	}
}

func (c *Controller[C, T]) notify(snapshot Snapshot[C, T]) {
	if c.options.OnChange != nil {
		c.options.OnChange(snapshot)
	}
}
