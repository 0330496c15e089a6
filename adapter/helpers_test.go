// SPDX-License-Identifier: MIT
// Package adapter_test helpers: fixtures shared by the extraction tests.
//
// Ranks run on their own goroutines, so rank functions never call require;
// they return errors or write into per-rank result slots, and assertions run
// on the test goroutine after World.Run.
package adapter_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/lvsolve/comm"
	"github.com/katalvlaran/lvsolve/distmat"
	"github.com/katalvlaran/lvsolve/matrix"
	"github.com/katalvlaran/lvsolve/metrics"
	"github.com/stretchr/testify/require"
)

// sixBySix is the fixture used throughout:
//
//	[  7  0 -3  0 -1  0 ]
//	[  2  8  0  0  0  0 ]
//	[  0  0  1  0  0  0 ]
//	[ -3  0  0  5  0  0 ]
//	[  0 -1  0  0  4  0 ]
//	[  0  0  0 -2  0  6 ]
var sixBySix = []matrix.Triplet[float64]{
	{Row: 0, Col: 0, Val: 7}, {Row: 0, Col: 2, Val: -3}, {Row: 0, Col: 4, Val: -1},
	{Row: 1, Col: 0, Val: 2}, {Row: 1, Col: 1, Val: 8},
	{Row: 2, Col: 2, Val: 1},
	{Row: 3, Col: 0, Val: -3}, {Row: 3, Col: 3, Val: 5},
	{Row: 4, Col: 1, Val: -1}, {Row: 4, Col: 4, Val: 4},
	{Row: 5, Col: 3, Val: -2}, {Row: 5, Col: 5, Val: 6},
}

// mapKind builds a row map for n rows over size ranks.
type mapKind struct {
	name  string
	build func(n, size int) (*distmat.Map, error)
}

var mapKinds = []mapKind{
	{"contig", distmat.NewUniformContigMap},
	{"roundrobin", distmat.NewRoundRobinMap},
}

// insertMode decides which rank inserts a triplet.
type insertMode struct {
	name string
	// inserter returns the rank that inserts triplet k.
	inserter func(k, size int) int
}

var insertModes = []insertMode{
	{"rank0", func(int, int) int { return 0 }},
	{"scattered", func(k, size int) int { return (k * 7) % size }},
}

// buildMatrix creates and fill-completes a matrix on every rank of c.
func buildMatrix[S matrix.Scalar](c *comm.Comm, rowMap *distmat.Map, cols int, ts []matrix.Triplet[S], who func(k, size int) int) (*distmat.CrsMatrix[S], error) {
	m, err := distmat.New[S](c, rowMap, distmat.WithNumGlobalCols(cols))
	if err != nil {
		return nil, err
	}
	for k, t := range ts {
		if who(k, c.Size()) != c.Rank() {
			continue
		}
		if err := m.InsertGlobalValues(t.Row, []int{t.Col}, []S{t.Val}); err != nil {
			return nil, err
		}
	}
	if err := m.FillComplete(); err != nil {
		return nil, err
	}

	return m, nil
}

// runRanks runs fn on a fresh World of size ranks and fails the test on error.
func runRanks(t *testing.T, size int, fn func(c *comm.Comm) error) {
	t.Helper()
	w, err := comm.NewWorld(size)
	require.NoError(t, err)
	require.NoError(t, w.Run(context.Background(), fn))
}

// randomTriplets returns a duplicate-free random sparse pattern.
func randomTriplets(rng *rand.Rand, rows, cols int, density float64) []matrix.Triplet[float64] {
	var out []matrix.Triplet[float64]
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < density {
				out = append(out, matrix.Triplet[float64]{Row: i, Col: j, Val: float64(rng.Intn(19) - 9)})
			}
		}
	}
	rng.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })

	return out
}

func newRand(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

// countingRecorder logs extraction calls as "format:nnz:kind".
type countingRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *countingRecorder) RecordExtraction(format string, nnz int, _ time.Duration, err error) {
	kind := metrics.ErrorKind(err)
	if kind == "" {
		kind = "<nil>"
	}
	r.mu.Lock()
	r.calls = append(r.calls, fmt.Sprintf("%s:%d:%s", format, nnz, kind))
	r.mu.Unlock()
}

func (r *countingRecorder) RecordApply(time.Duration, error) {}
