// SPDX-License-Identifier: MIT
package precond_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvsolve"
	"github.com/katalvlaran/lvsolve/adapter"
	"github.com/katalvlaran/lvsolve/comm"
	"github.com/katalvlaran/lvsolve/distmat"
	"github.com/katalvlaran/lvsolve/matrix"
	"github.com/katalvlaran/lvsolve/precond"
	"github.com/stretchr/testify/require"
)

// poisson1D returns the n×n tridiagonal [-1 2 -1] matrix.
func poisson1D(n int) *matrix.CRS[float64] {
	m := &matrix.CRS[float64]{Rows: n, Cols: n, RowPtr: make([]int, 1, n+1)}
	for i := 0; i < n; i++ {
		if i > 0 {
			m.ColInd = append(m.ColInd, i-1)
			m.Values = append(m.Values, -1)
		}
		m.ColInd = append(m.ColInd, i)
		m.Values = append(m.Values, 2)
		if i < n-1 {
			m.ColInd = append(m.ColInd, i+1)
			m.Values = append(m.Values, -1)
		}
		m.RowPtr = append(m.RowPtr, len(m.Values))
	}

	return m
}

func TestNewJacobiHierarchy(t *testing.T) {
	t.Parallel()

	_, err := precond.NewJacobiHierarchy(nil, 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	rect := &matrix.CRS[float64]{Rows: 2, Cols: 3, RowPtr: []int{0, 0, 0}}
	_, err = precond.NewJacobiHierarchy(rect, 1)
	require.ErrorIs(t, err, lvsolve.ErrSizeMismatch)

	for _, omega := range []float64{0, -1, 2, 3} {
		_, err = precond.NewJacobiHierarchy(poisson1D(3), omega)
		require.ErrorIs(t, err, precond.ErrInvalidDamping, "omega=%g", omega)
	}

	// row 1 has no diagonal entry
	holed := &matrix.CRS[float64]{Rows: 2, Cols: 2, RowPtr: []int{0, 1, 2}, ColInd: []int{0, 0}, Values: []float64{1, 1}}
	_, err = precond.NewJacobiHierarchy(holed, 1)
	require.ErrorIs(t, err, precond.ErrSingularDiagonal)
}

func TestJacobiIterate(t *testing.T) {
	t.Parallel()

	h, err := precond.NewJacobiHierarchy(poisson1D(3), 1)
	require.NoError(t, err)

	b, err := precond.NewMultiVectorFrom([]float64{2, 4, 6})
	require.NoError(t, err)
	x := precond.NewMultiVector(3, 1)

	// zero guess: x = D⁻¹b
	require.NoError(t, h.Iterate(b, x, 1, true))
	require.InDeltaSlice(t, []float64{1, 2, 3}, x.Column(0), 1e-12)

	// Ax = [0 0 4], r = [2 4 2], x += D⁻¹r
	require.NoError(t, h.Iterate(b, x, 1, false))
	require.InDeltaSlice(t, []float64{2, 4, 4}, x.Column(0), 1e-12)

	// many sweeps converge to A⁻¹b = [5 8 7]
	x.PutScalar(0)
	require.NoError(t, h.Iterate(b, x, 200, true))
	require.InDeltaSlice(t, []float64{5, 8, 7}, x.Column(0), 1e-8)

	require.ErrorIs(t, h.Iterate(b, precond.NewMultiVector(4, 1), 1, true), lvsolve.ErrSizeMismatch)
	require.ErrorIs(t, h.Iterate(nil, x, 1, true), lvsolve.ErrPreconditionViolation)
	require.ErrorIs(t, h.Iterate(b, nil, 1, true), lvsolve.ErrPreconditionViolation)
}

// TestExtractThenPrecondition composes both adapters: CRS assembled on rank 0
// from a two-rank matrix drives a Jacobi preconditioner.
func TestExtractThenPrecondition(t *testing.T) {
	t.Parallel()

	const n = 6
	w, err := comm.NewWorld(2)
	require.NoError(t, err)
	rowMap, err := distmat.NewRoundRobinMap(n, 2)
	require.NoError(t, err)

	var crs *matrix.CRS[float64]
	err = w.Run(context.Background(), func(c *comm.Comm) error {
		m, err := distmat.New[float64](c, rowMap)
		if err != nil {
			return err
		}
		ref := poisson1D(n)
		for _, tr := range ref.Triplets() {
			if tr.Row%2 != c.Rank() {
				continue
			}
			if err := m.InsertGlobalValues(tr.Row, []int{tr.Col}, []float64{tr.Val}); err != nil {
				return err
			}
		}
		if err := m.FillComplete(); err != nil {
			return err
		}
		a, err := adapter.New(m)
		if err != nil {
			return err
		}
		out, err := a.CRS()
		if c.Rank() == 0 {
			crs = out
		}
		return err
	})
	require.NoError(t, err)
	require.Equal(t, poisson1D(n).RowPtr, crs.RowPtr)

	h, err := precond.NewJacobiHierarchy(crs, precond.DefaultDamping)
	require.NoError(t, err)
	op, err := precond.NewOperatorAdapter(h)
	require.NoError(t, err)

	x := precond.NewMultiVector(n, 1)
	x.PutScalar(1)
	y := precond.NewMultiVector(n, 1)
	y.PutScalar(-99)
	require.NoError(t, op.Apply(x, y, precond.NoTrans))
	for _, v := range y.Column(0) {
		require.InDelta(t, precond.DefaultDamping/2, v, 1e-12)
	}
}
