// SPDX-License-Identifier: MIT

package adapter

import (
	"fmt"
	"time"

	"github.com/katalvlaran/lvsolve"
	"github.com/katalvlaran/lvsolve/comm"
	"github.com/katalvlaran/lvsolve/distmat"
	"github.com/katalvlaran/lvsolve/matrix"
)

// MatrixAdapter presents one rank's partition of a distributed matrix as a
// source of global CRS/CCS arrays.
//
// The adapter does not own the matrix: it holds a reference, and Clone
// shares it. Concurrent extractions on one adapter are not supported; the
// collectives underneath are not reentrant.
type MatrixAdapter[S matrix.Scalar] struct {
	mat  *distmat.CrsMatrix[S]
	opts options
}

// New wraps a fill-completed matrix partition.
//
// Errors:
//   - matrix.ErrNilMatrix if m is nil.
//   - lvsolve.ErrPreconditionViolation if m is not fill-complete.
//   - comm.ErrInvalidRank if WithRoot names a rank outside the communicator.
func New[S matrix.Scalar](m *distmat.CrsMatrix[S], opts ...Option) (*MatrixAdapter[S], error) {
	if m == nil {
		return nil, fmt.Errorf("adapter.New: %w", matrix.ErrNilMatrix)
	}
	if !m.IsFillComplete() {
		return nil, fmt.Errorf("adapter.New: matrix is not fill-complete: %w", lvsolve.ErrPreconditionViolation)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if size := m.Comm().Size(); o.root >= size {
		return nil, fmt.Errorf("adapter.New: root %d of %d ranks: %w", o.root, size, comm.ErrInvalidRank)
	}
	o.logger = o.logger.With("rank", m.Comm().Rank())

	return &MatrixAdapter[S]{mat: m, opts: o}, nil
}

// Clone returns an adapter over the same underlying matrix with the same
// options. No matrix data is copied.
func (a *MatrixAdapter[S]) Clone() *MatrixAdapter[S] {
	cp := *a

	return &cp
}

// Matrix returns the wrapped matrix partition.
func (a *MatrixAdapter[S]) Matrix() *distmat.CrsMatrix[S] { return a.mat }

// IsReceiver reports whether this rank receives extracted arrays.
func (a *MatrixAdapter[S]) IsReceiver() bool {
	return a.opts.replicated || a.mat.Comm().Rank() == a.opts.root
}

// GlobalNNZ returns the total nonzero count over all ranks. O(1), no communication.
func (a *MatrixAdapter[S]) GlobalNNZ() int { return a.mat.GlobalNNZ() }

// LocalNNZ returns this rank's nonzero count.
func (a *MatrixAdapter[S]) LocalNNZ() int { return a.mat.LocalNNZ() }

// GlobalNumRows returns the global row count.
func (a *MatrixAdapter[S]) GlobalNumRows() int { return a.mat.NumGlobalRows() }

// GlobalNumCols returns the global column count.
func (a *MatrixAdapter[S]) GlobalNumCols() int { return a.mat.NumGlobalCols() }

// LocalNumRows returns the number of rows owned by this rank.
func (a *MatrixAdapter[S]) LocalNumRows() int { return a.mat.NumLocalRows() }

// LocalNumCols returns the number of distinct columns referenced locally.
func (a *MatrixAdapter[S]) LocalNumCols() int { return a.mat.NumLocalCols() }

// MaxNNZ returns the largest nonzero count of any global row.
func (a *MatrixAdapter[S]) MaxNNZ() int { return a.mat.GlobalMaxRowNNZ() }

// GetCRS assembles the global compressed-row arrays. Collective.
//
// On a receiving rank, values and colind must hold at least GlobalNNZ()
// entries and rowptr at least GlobalNumRows()+1; the first nnz entries of
// values/colind and the first GlobalNumRows()+1 of rowptr are written.
// Entry order inside a row is unspecified.
//
// Returns nnz on receivers and 0 elsewhere.
// Errors: lvsolve.ErrSizeMismatch, lvsolve.ErrPreconditionViolation (on every
// rank when any rank fails), or a comm error.
func (a *MatrixAdapter[S]) GetCRS(values []S, colind, rowptr []int) (int, error) {
	return a.run(formatCRS, values, colind, rowptr)
}

// GetCCS assembles the global compressed-column arrays. Collective.
//
// On a receiving rank, values and rowind must hold at least GlobalNNZ()
// entries and colptr at least GlobalNumCols()+1. Row indices are strictly
// increasing inside every column slice.
//
// Returns nnz on receivers and 0 elsewhere; errors as GetCRS.
func (a *MatrixAdapter[S]) GetCCS(values []S, rowind, colptr []int) (int, error) {
	return a.run(formatCCS, values, rowind, colptr)
}

// CRS allocates exact-size buffers and returns the assembled matrix on
// receivers, nil elsewhere. Collective.
func (a *MatrixAdapter[S]) CRS() (*matrix.CRS[S], error) {
	values, ind, ptr := a.alloc(a.GlobalNumRows())
	nnz, err := a.GetCRS(values, ind, ptr)
	if err != nil || !a.IsReceiver() {
		return nil, err
	}

	return &matrix.CRS[S]{
		Rows:   a.GlobalNumRows(),
		Cols:   a.GlobalNumCols(),
		RowPtr: ptr,
		ColInd: ind[:nnz],
		Values: values[:nnz],
	}, nil
}

// CCS allocates exact-size buffers and returns the assembled matrix on
// receivers, nil elsewhere. Collective.
func (a *MatrixAdapter[S]) CCS() (*matrix.CCS[S], error) {
	values, ind, ptr := a.alloc(a.GlobalNumCols())
	nnz, err := a.GetCCS(values, ind, ptr)
	if err != nil || !a.IsReceiver() {
		return nil, err
	}

	return &matrix.CCS[S]{
		Rows:   a.GlobalNumRows(),
		Cols:   a.GlobalNumCols(),
		ColPtr: ptr,
		RowInd: ind[:nnz],
		Values: values[:nnz],
	}, nil
}

// alloc sizes buffers for a receiver; non-receivers pass nil.
func (a *MatrixAdapter[S]) alloc(n int) ([]S, []int, []int) {
	if !a.IsReceiver() {
		return nil, nil, nil
	}
	nnz := a.GlobalNNZ()

	return make([]S, nnz), make([]int, nnz), make([]int, n+1)
}

// run wraps extract with metrics and logging.
func (a *MatrixAdapter[S]) run(f format, values []S, ind, ptr []int) (int, error) {
	start := time.Now()
	nnz, err := a.extract(f, values, ind, ptr)
	elapsed := time.Since(start)

	a.opts.recorder.RecordExtraction(f.String(), nnz, elapsed, err)
	if err != nil {
		a.opts.logger.Warn("extraction failed", "format", f.String(), "error", err)
		return 0, err
	}
	a.opts.logger.Debug("extraction complete",
		"format", f.String(),
		"receiver", a.IsReceiver(),
		"nnz", nnz,
		"elapsed", elapsed,
	)

	return nnz, nil
}
