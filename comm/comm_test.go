// SPDX-License-Identifier: MIT
// Package comm_test verifies the collectives of the in-process communicator.
package comm_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/katalvlaran/lvsolve/comm"
	"github.com/stretchr/testify/require"
)

func mustWorld(t *testing.T, size int) *comm.World {
	t.Helper()
	w, err := comm.NewWorld(size)
	require.NoError(t, err)
	return w
}

func TestNewWorldInvalidSize(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1} {
		_, err := comm.NewWorld(n)
		require.ErrorIs(t, err, comm.ErrInvalidSize)
	}
}

func TestGatherRootOnly(t *testing.T) {
	t.Parallel()

	for _, size := range []int{1, 2, 3, 4} {
		size := size
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			t.Parallel()
			w := mustWorld(t, size)
			root := size - 1
			err := w.Run(context.Background(), func(c *comm.Comm) error {
				got, err := comm.Gather(c, root, c.Rank()*10)
				if err != nil {
					return err
				}
				if c.Rank() != root {
					if got != nil {
						return fmt.Errorf("non-root received %v", got)
					}
					return nil
				}
				for r := 0; r < size; r++ {
					if got[r] != r*10 {
						return fmt.Errorf("slot %d = %d", r, got[r])
					}
				}
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestAllgatherAndAllreduce(t *testing.T) {
	t.Parallel()

	w := mustWorld(t, 4)
	err := w.Run(context.Background(), func(c *comm.Comm) error {
		all, err := comm.Allgather(c, []int{c.Rank()})
		if err != nil {
			return err
		}
		if len(all) != 4 || all[3][0] != 3 {
			return fmt.Errorf("allgather = %v", all)
		}
		sum, err := comm.AllreduceInt(c, comm.OpSum, c.Rank()+1)
		if err != nil {
			return err
		}
		mx, err := comm.AllreduceInt(c, comm.OpMax, c.Rank()*7)
		if err != nil {
			return err
		}
		if sum != 10 || mx != 21 {
			return fmt.Errorf("sum=%d max=%d", sum, mx)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestBcast(t *testing.T) {
	t.Parallel()

	w := mustWorld(t, 3)
	err := w.Run(context.Background(), func(c *comm.Comm) error {
		msg := ""
		if c.Rank() == 1 {
			msg = "hello"
		}
		got, err := comm.Bcast(c, 1, msg)
		if err != nil {
			return err
		}
		if got != "hello" {
			return fmt.Errorf("rank %d got %q", c.Rank(), got)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestInvalidRootFailsEveryRank(t *testing.T) {
	t.Parallel()

	w := mustWorld(t, 2)
	var failed atomic.Int32
	err := w.Run(context.Background(), func(c *comm.Comm) error {
		_, err := comm.Gather(c, 5, 1)
		if errors.Is(err, comm.ErrInvalidRank) {
			failed.Add(1)
		}
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, failed.Load())
}

// TestAbortReleasesWaitingRanks makes rank 0 fail before a barrier that
// rank 1 is already waiting in; Run must return instead of hanging.
func TestAbortReleasesWaitingRanks(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	w := mustWorld(t, 2)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), func(c *comm.Comm) error {
			if c.Rank() == 0 {
				return boom
			}
			err := c.Barrier()
			if !errors.Is(err, comm.ErrAborted) {
				return fmt.Errorf("expected ErrAborted, got %v", err)
			}
			return nil
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after rank failure")
	}

	// The world is reusable after an aborted run.
	require.NoError(t, w.Run(context.Background(), func(c *comm.Comm) error { return c.Barrier() }))
}

func TestPayloadMismatch(t *testing.T) {
	t.Parallel()

	w := mustWorld(t, 2)
	err := w.Run(context.Background(), func(c *comm.Comm) error {
		var err error
		if c.Rank() == 0 {
			_, err = comm.Gather(c, 0, 1)
		} else {
			_, err = comm.Gather(c, 0, "one")
		}
		if c.Rank() == 0 && !errors.Is(err, comm.ErrPayloadMismatch) {
			return fmt.Errorf("expected ErrPayloadMismatch, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestSelf(t *testing.T) {
	t.Parallel()

	c := comm.Self()
	require.Equal(t, 0, c.Rank())
	require.Equal(t, 1, c.Size())
	got, err := comm.Gather(c, 0, 42)
	require.NoError(t, err)
	require.Equal(t, []int{42}, got)
	require.NoError(t, c.Barrier())
}
