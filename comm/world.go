// SPDX-License-Identifier: MIT

package comm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// World is a fixed-size group of ranks sharing one rendezvous point.
//
// All collective state lives behind mu; cond is signalled whenever a barrier
// generation completes or the world aborts.
type World struct {
	size   int
	logger *slog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	arrived int    // ranks waiting in the current barrier generation
	gen     uint64 // completed barrier generations
	epoch   uint64 // incremented per Run; guards late aborts
	aborted bool
	slots   []any // one deposit per rank for the collective in flight
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the structured logger used for run lifecycle records.
// Panics on nil (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("comm: WithLogger: nil logger")
	}

	return func(w *World) { w.logger = l }
}

// NewWorld creates a World of size ranks.
// Returns ErrInvalidSize if size < 1.
// Complexity: O(size).
func NewWorld(size int, opts ...Option) (*World, error) {
	if size < 1 {
		return nil, fmt.Errorf("NewWorld(%d): %w", size, ErrInvalidSize)
	}
	w := &World{
		size:   size,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		slots:  make([]any, size),
	}
	w.cond = sync.NewCond(&w.mu)
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Size returns the number of ranks.
func (w *World) Size() int { return w.size }

// Run executes fn once per rank concurrently and waits for all of them.
//
// Implementation:
//   - Stage 1: reset collective state and open a new epoch.
//   - Stage 2: start one goroutine per rank through an errgroup.
//   - Stage 3: on the first rank error, or when ctx ends, abort the world so
//     peers blocked in a collective return ErrAborted.
//
// Returns the first rank error, wrapped with the rank number.
func (w *World) Run(ctx context.Context, fn func(c *Comm) error) error {
	ep := w.reset()

	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(ctx, func() { w.abort(ep) })
	defer stop()

	w.logger.Debug("world run started", "size", w.size, "epoch", ep)
	for r := 0; r < w.size; r++ {
		c := &Comm{world: w, rank: r, ctx: gctx}
		g.Go(func() error {
			if err := fn(c); err != nil {
				w.abort(ep)
				return fmt.Errorf("rank %d: %w", c.rank, err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		w.logger.Debug("world run failed", "size", w.size, "epoch", ep, "error", err)
		return err
	}
	w.logger.Debug("world run finished", "size", w.size, "epoch", ep)

	return nil
}

func (w *World) reset() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.epoch++
	w.arrived = 0
	w.aborted = false
	clear(w.slots)

	return w.epoch
}

// abort releases every waiting rank. Aborts from a finished epoch are ignored.
func (w *World) abort(ep uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ep != w.epoch || w.aborted {
		return
	}
	w.aborted = true
	w.cond.Broadcast()
	w.logger.Debug("world aborted", "epoch", ep)
}

// barrierLocked blocks until all ranks of the current generation arrived.
// Caller holds mu.
func (w *World) barrierLocked() error {
	if w.aborted {
		return ErrAborted
	}
	gen := w.gen
	w.arrived++
	if w.arrived == w.size {
		w.arrived = 0
		w.gen++
		w.cond.Broadcast()
		return nil
	}
	for gen == w.gen && !w.aborted {
		w.cond.Wait()
	}
	if gen == w.gen {
		return ErrAborted
	}

	return nil
}

// exchange runs one collective round: every rank deposits v, all ranks meet,
// read observes the full slot table, and all ranks meet again before any
// rank may deposit for the next collective.
func (w *World) exchange(rank int, v any, read func(slots []any)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.slots[rank] = v
	if err := w.barrierLocked(); err != nil {
		return err
	}
	if read != nil {
		read(w.slots)
	}

	return w.barrierLocked()
}
