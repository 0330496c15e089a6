// SPDX-License-Identifier: MIT

package comm

import (
	"context"
	"fmt"
)

// Comm is one rank's handle on its World.
// A Comm must only be used by the goroutine it was handed to.
type Comm struct {
	world *World
	rank  int
	ctx   context.Context
}

// Self returns a communicator of a fresh single-rank World.
// Collectives on it complete immediately.
func Self() *Comm {
	w, _ := NewWorld(1) // size 1 is always valid

	return &Comm{world: w, rank: 0, ctx: context.Background()}
}

// Rank returns this rank's index in [0, Size).
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the World.
func (c *Comm) Size() int { return c.world.size }

// Context returns the context of the Run that created this Comm.
// It is cancelled once any rank fails.
func (c *Comm) Context() context.Context { return c.ctx }

// checkRank validates root identically on every rank, so all of them fail
// before entering the rendezvous.
func (c *Comm) checkRank(op string, root int) error {
	if root < 0 || root >= c.world.size {
		return fmt.Errorf("%s: root %d of %d: %w", op, root, c.world.size, ErrInvalidRank)
	}

	return nil
}

// Barrier blocks until every rank called Barrier.
func (c *Comm) Barrier() error {
	return c.world.exchange(c.rank, nil, nil)
}

// Gather collects one value per rank on root.
// Root receives a slice indexed by rank; every other rank receives nil.
// Complexity: O(Size) on root, O(1) elsewhere.
func Gather[T any](c *Comm, root int, v T) ([]T, error) {
	if err := c.checkRank("Gather", root); err != nil {
		return nil, err
	}

	var (
		out     []T
		readErr error
	)
	err := c.world.exchange(c.rank, v, func(slots []any) {
		if c.rank != root {
			return
		}
		out, readErr = collect[T](slots)
	})
	if err != nil {
		return nil, fmt.Errorf("Gather: %w", err)
	}
	if readErr != nil {
		return nil, fmt.Errorf("Gather: %w", readErr)
	}

	return out, nil
}

// Allgather collects one value per rank on every rank.
// Complexity: O(Size) per rank.
func Allgather[T any](c *Comm, v T) ([]T, error) {
	var (
		out     []T
		readErr error
	)
	err := c.world.exchange(c.rank, v, func(slots []any) {
		out, readErr = collect[T](slots)
	})
	if err != nil {
		return nil, fmt.Errorf("Allgather: %w", err)
	}
	if readErr != nil {
		return nil, fmt.Errorf("Allgather: %w", readErr)
	}

	return out, nil
}

// Bcast returns root's v on every rank.
func Bcast[T any](c *Comm, root int, v T) (T, error) {
	var zero T
	if err := c.checkRank("Bcast", root); err != nil {
		return zero, err
	}

	var (
		out     T
		readErr error
	)
	err := c.world.exchange(c.rank, v, func(slots []any) {
		t, ok := slots[root].(T)
		if !ok {
			readErr = fmt.Errorf("rank %d sent %T: %w", root, slots[root], ErrPayloadMismatch)
			return
		}
		out = t
	})
	if err != nil {
		return zero, fmt.Errorf("Bcast: %w", err)
	}
	if readErr != nil {
		return zero, fmt.Errorf("Bcast: %w", readErr)
	}

	return out, nil
}

// Op selects the reduction used by AllreduceInt.
type Op int

const (
	// OpSum adds the contributions.
	OpSum Op = iota
	// OpMax keeps the largest contribution.
	OpMax
)

// AllreduceInt combines v from every rank with op and returns the result on
// every rank. Reduction runs in rank order, so results are deterministic.
func AllreduceInt(c *Comm, op Op, v int) (int, error) {
	all, err := Allgather(c, v)
	if err != nil {
		return 0, fmt.Errorf("AllreduceInt: %w", err)
	}

	acc := all[0]
	for _, x := range all[1:] {
		switch op {
		case OpMax:
			acc = max(acc, x)
		default:
			acc += x
		}
	}

	return acc, nil
}

func collect[T any](slots []any) ([]T, error) {
	out := make([]T, len(slots))
	for r, s := range slots {
		t, ok := s.(T)
		if !ok {
			return nil, fmt.Errorf("rank %d sent %T: %w", r, s, ErrPayloadMismatch)
		}
		out[r] = t
	}

	return out, nil
}
