// SPDX-License-Identifier: MIT

package distmat

import "fmt"

// Map assigns every global row in [0, NumGlobal) to exactly one rank and a
// local index on that rank. It is immutable and safe to share between ranks.
type Map struct {
	numGlobal int
	owned     [][]int // owned[rank][local] = global row
	owner     []int   // owner[global] = rank
	local     []int   // local[global] = local index on owner
}

// NewUniformContigMap distributes n rows over size ranks in contiguous
// blocks. The first n%size ranks receive one extra row.
// Complexity: O(n + size).
func NewUniformContigMap(n, size int) (*Map, error) {
	if n < 0 || size < 1 {
		return nil, fmt.Errorf("NewUniformContigMap(%d,%d): %w", n, size, ErrInvalidMap)
	}
	owned := make([][]int, size)
	base, extra := n/size, n%size
	next := 0
	for r := 0; r < size; r++ {
		cnt := base
		if r < extra {
			cnt++
		}
		rows := make([]int, cnt)
		for i := range rows {
			rows[i] = next
			next++
		}
		owned[r] = rows
	}

	return NewMap(n, owned)
}

// NewRoundRobinMap assigns row g to rank g%size. Every rank owns a
// non-contiguous set of rows, which exercises index reconciliation.
// Complexity: O(n + size).
func NewRoundRobinMap(n, size int) (*Map, error) {
	if n < 0 || size < 1 {
		return nil, fmt.Errorf("NewRoundRobinMap(%d,%d): %w", n, size, ErrInvalidMap)
	}
	owned := make([][]int, size)
	for g := 0; g < n; g++ {
		owned[g%size] = append(owned[g%size], g)
	}

	return NewMap(n, owned)
}

// NewMap builds a Map from an explicit per-rank row list. The lists are copied.
// Errors: ErrInvalidMap unless every row in [0, n) appears exactly once.
// Complexity: O(n + size).
func NewMap(n int, owned [][]int) (*Map, error) {
	if n < 0 || len(owned) == 0 {
		return nil, fmt.Errorf("NewMap(%d, %d ranks): %w", n, len(owned), ErrInvalidMap)
	}
	m := &Map{
		numGlobal: n,
		owned:     make([][]int, len(owned)),
		owner:     make([]int, n),
		local:     make([]int, n),
	}
	for g := range m.owner {
		m.owner[g] = -1
	}
	seen := 0
	for r, rows := range owned {
		m.owned[r] = append([]int(nil), rows...)
		for l, g := range rows {
			if g < 0 || g >= n {
				return nil, fmt.Errorf("NewMap: rank %d row %d outside [0,%d): %w", r, g, n, ErrInvalidMap)
			}
			if m.owner[g] != -1 {
				return nil, fmt.Errorf("NewMap: row %d owned by ranks %d and %d: %w", g, m.owner[g], r, ErrInvalidMap)
			}
			m.owner[g] = r
			m.local[g] = l
			seen++
		}
	}
	if seen != n {
		return nil, fmt.Errorf("NewMap: %d of %d rows assigned: %w", seen, n, ErrInvalidMap)
	}

	return m, nil
}

// NumGlobal returns the number of global rows.
func (m *Map) NumGlobal() int { return m.numGlobal }

// NumRanks returns the number of ranks the map was built for.
func (m *Map) NumRanks() int { return len(m.owned) }

// NumLocal returns the number of rows owned by rank.
func (m *Map) NumLocal(rank int) int { return len(m.owned[rank]) }

// GlobalIndex returns the global row of local row l on rank.
func (m *Map) GlobalIndex(rank, l int) int { return m.owned[rank][l] }

// Owner returns the owning rank and local index of global row g.
// Errors: ErrRowOutOfRange.
func (m *Map) Owner(g int) (rank, l int, err error) {
	if g < 0 || g >= m.numGlobal {
		return 0, 0, fmt.Errorf("Map.Owner(%d): %w", g, ErrRowOutOfRange)
	}

	return m.owner[g], m.local[g], nil
}

// IsContiguous reports whether every rank owns an ascending run of
// consecutive rows.
func (m *Map) IsContiguous() bool {
	for _, rows := range m.owned {
		for i := 1; i < len(rows); i++ {
			if rows[i] != rows[i-1]+1 {
				return false
			}
		}
	}

	return true
}
