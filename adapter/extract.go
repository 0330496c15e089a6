// SPDX-License-Identifier: MIT

package adapter

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvsolve"
	"github.com/katalvlaran/lvsolve/comm"
	"github.com/katalvlaran/lvsolve/matrix"
)

// format selects the compressed layout being assembled.
type format int

const (
	formatCRS format = iota
	formatCCS
)

func (f format) String() string {
	if f == formatCCS {
		return "ccs"
	}

	return "crs"
}

func (f format) op() string {
	if f == formatCCS {
		return "GetCCS"
	}

	return "GetCRS"
}

// Local precondition status, ordered by precedence for the max-reduction.
const (
	statusOK = iota
	statusSize
	statusNotFilled
)

// extract runs one collective extraction.
//
// Implementation:
//   - Stage 1 (Validate): check fill state and, on receivers, buffer sizes.
//   - Stage 2 (Agree): all-reduce the worst local status so every rank fails
//     together instead of leaving peers in the gather.
//   - Stage 3 (Gather): ship this rank's triplets in global index space to the
//     receiver(s).
//   - Stage 4 (Assemble): bucket by row (CRS) or by column with a per-column
//     row sort (CCS).
//
// Complexity: O(nnz + n) on receivers for CRS, plus O(Σ k·log k) over column
// lengths k for CCS; O(local nnz) elsewhere.
func (a *MatrixAdapter[S]) extract(f format, values []S, ind, ptr []int) (int, error) {
	c := a.mat.Comm()
	op := f.op()
	receiver := a.IsReceiver()

	n := a.GlobalNumRows()
	if f == formatCCS {
		n = a.GlobalNumCols()
	}

	// Stage 1
	status, localErr := statusOK, error(nil)
	switch {
	case !a.mat.IsFillComplete():
		status = statusNotFilled
		localErr = fmt.Errorf("%s: matrix is not fill-complete: %w", op, lvsolve.ErrPreconditionViolation)
	case receiver:
		if err := checkBuffers(op, a.GlobalNNZ(), n, len(values), len(ind), len(ptr)); err != nil {
			status, localErr = statusSize, err
		}
	}

	// Stage 2
	agreed, err := comm.AllreduceInt(c, comm.OpMax, status)
	if err != nil {
		return 0, fmt.Errorf("%s: agree: %w", op, err)
	}
	switch {
	case localErr != nil:
		return 0, localErr
	case agreed == statusNotFilled:
		return 0, fmt.Errorf("%s: a peer rank's matrix is not fill-complete: %w", op, lvsolve.ErrPreconditionViolation)
	case agreed == statusSize:
		return 0, fmt.Errorf("%s: a receiving peer rank has undersized buffers: %w", op, lvsolve.ErrSizeMismatch)
	}

	// Stage 3
	local := a.localTriplets()
	var parts [][]matrix.Triplet[S]
	if a.opts.replicated {
		parts, err = comm.Allgather(c, local)
	} else {
		parts, err = comm.Gather(c, a.opts.root, local)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: gather: %w", op, err)
	}
	if !receiver {
		return 0, nil
	}

	// Stage 4
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	if total > len(values) || total > len(ind) {
		return 0, fmt.Errorf("%s: gathered %d entries, buffers hold %d: %w", op, total, min(len(values), len(ind)), lvsolve.ErrSizeMismatch)
	}
	if f == formatCCS {
		return assembleCCS(n, parts, values, ind, ptr), nil
	}

	return assembleCRS(n, parts, values, ind, ptr), nil
}

// checkBuffers validates receiver buffer lengths against nnz and n slices.
func checkBuffers(op string, nnz, n, nv, ni, np int) error {
	switch {
	case nv < nnz:
		return fmt.Errorf("%s: values holds %d, need %d: %w", op, nv, nnz, lvsolve.ErrSizeMismatch)
	case ni < nnz:
		return fmt.Errorf("%s: index buffer holds %d, need %d: %w", op, ni, nnz, lvsolve.ErrSizeMismatch)
	case np < n+1:
		return fmt.Errorf("%s: pointer buffer holds %d, need %d: %w", op, np, n+1, lvsolve.ErrSizeMismatch)
	}

	return nil
}

// localTriplets reconciles local row indices into global ones, in local
// storage order.
func (a *MatrixAdapter[S]) localTriplets() []matrix.Triplet[S] {
	out := make([]matrix.Triplet[S], 0, a.mat.LocalNNZ())
	a.mat.ForEachLocalEntry(func(l, gc int, v S) {
		out = append(out, matrix.Triplet[S]{Row: a.mat.GlobalRow(l), Col: gc, Val: v})
	})

	return out
}

// assembleCRS buckets the gathered triplets by row. Parts are consumed in
// rank order, so a row's entries keep the order they had on their owner.
func assembleCRS[S matrix.Scalar](n int, parts [][]matrix.Triplet[S], values []S, colind, rowptr []int) int {
	ptr := rowptr[:n+1]
	clear(ptr)
	for _, p := range parts {
		for _, t := range p {
			ptr[t.Row+1]++
		}
	}
	for i := 0; i < n; i++ {
		ptr[i+1] += ptr[i]
	}

	next := make([]int, n)
	copy(next, ptr[:n])
	for _, p := range parts {
		for _, t := range p {
			k := next[t.Row]
			colind[k], values[k] = t.Col, t.Val
			next[t.Row]++
		}
	}

	return ptr[n]
}

// assembleCCS buckets the gathered triplets by column, then sorts every
// column slice by row index. The sort is what guarantees ascending rows.
func assembleCCS[S matrix.Scalar](n int, parts [][]matrix.Triplet[S], values []S, rowind, colptr []int) int {
	ptr := colptr[:n+1]
	clear(ptr)
	for _, p := range parts {
		for _, t := range p {
			ptr[t.Col+1]++
		}
	}
	for j := 0; j < n; j++ {
		ptr[j+1] += ptr[j]
	}

	next := make([]int, n)
	copy(next, ptr[:n])
	for _, p := range parts {
		for _, t := range p {
			k := next[t.Col]
			rowind[k], values[k] = t.Row, t.Val
			next[t.Col]++
		}
	}

	for j := 0; j < n; j++ {
		lo, hi := ptr[j], ptr[j+1]
		if hi-lo > 1 {
			sort.Sort(byIndex[S]{ind: rowind[lo:hi], val: values[lo:hi]})
		}
	}

	return ptr[n]
}

// byIndex sorts parallel index/value slices by index.
type byIndex[S matrix.Scalar] struct {
	ind []int
	val []S
}

func (s byIndex[S]) Len() int           { return len(s.ind) }
func (s byIndex[S]) Less(i, j int) bool { return s.ind[i] < s.ind[j] }
func (s byIndex[S]) Swap(i, j int) {
	s.ind[i], s.ind[j] = s.ind[j], s.ind[i]
	s.val[i], s.val[j] = s.val[j], s.val[i]
}
