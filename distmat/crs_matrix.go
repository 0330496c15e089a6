// SPDX-License-Identifier: MIT

package distmat

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/katalvlaran/lvsolve"
	"github.com/katalvlaran/lvsolve/comm"
	"github.com/katalvlaran/lvsolve/matrix"
)

// entry is one stored nonzero of a local row.
type entry[S matrix.Scalar] struct {
	col int
	val S
}

// CrsMatrix is one rank's partition of a row-distributed sparse matrix.
//
// Every rank of the communicator holds its own *CrsMatrix built over the same
// Map. Size queries are O(1) once FillComplete has run; before that they
// report the values cached by the previous fill (zero initially).
type CrsMatrix[S matrix.Scalar] struct {
	comm          *comm.Comm
	rowMap        *Map
	numGlobalCols int
	logger        *slog.Logger

	rows     [][]entry[S]        // local rows, indexed by local row
	nonlocal []matrix.Triplet[S] // inserts for rows owned by other ranks
	filled   bool

	// cached at FillComplete
	globalNNZ int
	localNNZ  int
	maxRowNNZ int
	localCols int
}

// New creates an empty, open matrix partition for rank c.Rank().
// Errors: ErrNilArgument, ErrMapMismatch when rowMap was built for a
// different number of ranks than c.
func New[S matrix.Scalar](c *comm.Comm, rowMap *Map, opts ...Option) (*CrsMatrix[S], error) {
	if c == nil || rowMap == nil {
		return nil, fmt.Errorf("distmat.New: %w", ErrNilArgument)
	}
	if rowMap.NumRanks() != c.Size() {
		return nil, fmt.Errorf("distmat.New: map for %d ranks, comm of %d: %w", rowMap.NumRanks(), c.Size(), ErrMapMismatch)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.numGlobalCols < 0 {
		o.numGlobalCols = rowMap.NumGlobal()
	}

	return &CrsMatrix[S]{
		comm:          c,
		rowMap:        rowMap,
		numGlobalCols: o.numGlobalCols,
		logger:        o.logger.With("rank", c.Rank()),
		rows:          make([][]entry[S], rowMap.NumLocal(c.Rank())),
	}, nil
}

// Comm returns the communicator the matrix is distributed over.
func (m *CrsMatrix[S]) Comm() *comm.Comm { return m.comm }

// RowMap returns the row distribution.
func (m *CrsMatrix[S]) RowMap() *Map { return m.rowMap }

// InsertGlobalValues appends entries to global row row. Any rank may insert
// into any row; entries for rows owned elsewhere are shipped at FillComplete.
// Duplicate (row, col) entries are summed at FillComplete.
//
// Errors: lvsolve.ErrPreconditionViolation after FillComplete,
// ErrLengthMismatch, ErrRowOutOfRange, ErrColOutOfRange.
// Complexity: O(len(cols)).
func (m *CrsMatrix[S]) InsertGlobalValues(row int, cols []int, vals []S) error {
	if m.filled {
		return fmt.Errorf("InsertGlobalValues(row %d): matrix is fill-complete: %w", row, lvsolve.ErrPreconditionViolation)
	}
	if len(cols) != len(vals) {
		return fmt.Errorf("InsertGlobalValues(row %d): %d cols, %d vals: %w", row, len(cols), len(vals), ErrLengthMismatch)
	}
	owner, l, err := m.rowMap.Owner(row)
	if err != nil {
		return fmt.Errorf("InsertGlobalValues: %w", err)
	}
	for _, c := range cols {
		if c < 0 || c >= m.numGlobalCols {
			return fmt.Errorf("InsertGlobalValues(row %d): col %d: %w", row, c, ErrColOutOfRange)
		}
	}

	if owner == m.comm.Rank() {
		for i, c := range cols {
			m.rows[l] = append(m.rows[l], entry[S]{col: c, val: vals[i]})
		}
		return nil
	}
	for i, c := range cols {
		m.nonlocal = append(m.nonlocal, matrix.Triplet[S]{Row: row, Col: c, Val: vals[i]})
	}

	return nil
}

// FillComplete finalizes the structure. Collective over the communicator.
//
// Implementation:
//   - Stage 1: all-gather the pending non-local inserts; each rank keeps the
//     ones it owns, in rank order.
//   - Stage 2: sort every local row by column and sum duplicates.
//   - Stage 3: cache local counts and all-reduce the global nonzero count and
//     the maximum row length.
//
// Errors: lvsolve.ErrPreconditionViolation if already fill-complete,
// comm errors from the collectives.
// Complexity: O(total non-local inserts + local nnz·log(row length)).
func (m *CrsMatrix[S]) FillComplete() error {
	if m.filled {
		return fmt.Errorf("FillComplete: already fill-complete: %w", lvsolve.ErrPreconditionViolation)
	}
	me := m.comm.Rank()

	pending, err := comm.Allgather(m.comm, m.nonlocal)
	if err != nil {
		return fmt.Errorf("FillComplete: migrate: %w", err)
	}
	migrated := 0
	for _, part := range pending {
		for _, t := range part {
			owner, l, _ := m.rowMap.Owner(t.Row) // validated at insert
			if owner != me {
				continue
			}
			m.rows[l] = append(m.rows[l], entry[S]{col: t.Col, val: t.Val})
			migrated++
		}
	}
	m.nonlocal = nil

	localNNZ, maxRow := 0, 0
	colSeen := make(map[int]struct{})
	for l := range m.rows {
		m.rows[l] = mergeRow(m.rows[l])
		localNNZ += len(m.rows[l])
		maxRow = max(maxRow, len(m.rows[l]))
		for _, e := range m.rows[l] {
			colSeen[e.col] = struct{}{}
		}
	}

	globalNNZ, err := comm.AllreduceInt(m.comm, comm.OpSum, localNNZ)
	if err != nil {
		return fmt.Errorf("FillComplete: nnz: %w", err)
	}
	globalMax, err := comm.AllreduceInt(m.comm, comm.OpMax, maxRow)
	if err != nil {
		return fmt.Errorf("FillComplete: max row: %w", err)
	}

	m.localNNZ = localNNZ
	m.globalNNZ = globalNNZ
	m.maxRowNNZ = globalMax
	m.localCols = len(colSeen)
	m.filled = true
	m.logger.Debug("fill complete",
		"local_nnz", localNNZ,
		"global_nnz", globalNNZ,
		"migrated", migrated,
	)

	return nil
}

// mergeRow sorts a row by column and sums entries sharing a column.
func mergeRow[S matrix.Scalar](row []entry[S]) []entry[S] {
	if len(row) < 2 {
		return row
	}
	slices.SortStableFunc(row, func(a, b entry[S]) int { return cmp.Compare(a.col, b.col) })
	out := row[:1]
	for _, e := range row[1:] {
		last := &out[len(out)-1]
		if e.col == last.col {
			last.val += e.val
			continue
		}
		out = append(out, e)
	}

	return out
}

// ResumeFill reopens the matrix for insertion. Cached counts keep their
// last values until the next FillComplete.
func (m *CrsMatrix[S]) ResumeFill() { m.filled = false }

// IsFillComplete reports whether the structure is finalized.
func (m *CrsMatrix[S]) IsFillComplete() bool { return m.filled }

// NumGlobalRows returns the global row count.
func (m *CrsMatrix[S]) NumGlobalRows() int { return m.rowMap.NumGlobal() }

// NumGlobalCols returns the global column count.
func (m *CrsMatrix[S]) NumGlobalCols() int { return m.numGlobalCols }

// NumLocalRows returns the number of rows owned by this rank.
func (m *CrsMatrix[S]) NumLocalRows() int { return len(m.rows) }

// NumLocalCols returns the number of distinct global columns referenced by
// this rank's rows (the size of its column map).
func (m *CrsMatrix[S]) NumLocalCols() int { return m.localCols }

// GlobalNNZ returns the nonzero count summed over all ranks.
func (m *CrsMatrix[S]) GlobalNNZ() int { return m.globalNNZ }

// LocalNNZ returns this rank's nonzero count.
func (m *CrsMatrix[S]) LocalNNZ() int { return m.localNNZ }

// GlobalMaxRowNNZ returns the largest nonzero count of any global row.
func (m *CrsMatrix[S]) GlobalMaxRowNNZ() int { return m.maxRowNNZ }

// GlobalRow maps a local row index to its global row.
func (m *CrsMatrix[S]) GlobalRow(l int) int { return m.rowMap.GlobalIndex(m.comm.Rank(), l) }

// LocalRow returns copies of the global column indices and values of local
// row l. Errors: ErrRowOutOfRange.
func (m *CrsMatrix[S]) LocalRow(l int) ([]int, []S, error) {
	if l < 0 || l >= len(m.rows) {
		return nil, nil, fmt.Errorf("LocalRow(%d): %w", l, ErrRowOutOfRange)
	}
	cols := make([]int, len(m.rows[l]))
	vals := make([]S, len(m.rows[l]))
	for i, e := range m.rows[l] {
		cols[i], vals[i] = e.col, e.val
	}

	return cols, vals, nil
}

// ForEachLocalEntry calls fn for every stored entry in local storage order
// with (local row, global column, value).
func (m *CrsMatrix[S]) ForEachLocalEntry(fn func(localRow, globalCol int, v S)) {
	for l, row := range m.rows {
		for _, e := range row {
			fn(l, e.col, e.val)
		}
	}
}
