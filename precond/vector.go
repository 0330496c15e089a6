// SPDX-License-Identifier: MIT

package precond

import (
	"fmt"

	"github.com/katalvlaran/lvsolve"
	"gonum.org/v1/gonum/floats"
)

// Vector is the generic vector capability seen at the operator boundary.
type Vector interface {
	// Len returns the number of rows.
	Len() int
	// NumVectors returns the number of columns.
	NumVectors() int
}

// MultiVector is a dense block of NumVectors columns of equal length, stored
// column-major.
type MultiVector struct {
	n, k int
	data []float64
}

// NewMultiVector returns a zeroed n×k block. Panics on negative sizes.
func NewMultiVector(n, k int) *MultiVector {
	if n < 0 || k < 0 {
		panic(fmt.Sprintf("precond: NewMultiVector(%d, %d): negative size", n, k))
	}

	return &MultiVector{n: n, k: k, data: make([]float64, n*k)}
}

// NewMultiVectorFrom copies the given columns into a new block.
// Errors: lvsolve.ErrSizeMismatch if the columns differ in length.
func NewMultiVectorFrom(cols ...[]float64) (*MultiVector, error) {
	n := 0
	if len(cols) > 0 {
		n = len(cols[0])
	}
	v := NewMultiVector(n, len(cols))
	for j, c := range cols {
		if len(c) != n {
			return nil, fmt.Errorf("NewMultiVectorFrom: column %d has %d rows, want %d: %w", j, len(c), n, lvsolve.ErrSizeMismatch)
		}
		copy(v.Column(j), c)
	}

	return v, nil
}

// Len returns the number of rows.
func (v *MultiVector) Len() int { return v.n }

// NumVectors returns the number of columns.
func (v *MultiVector) NumVectors() int { return v.k }

// Column returns column j as a slice aliasing the block's storage.
func (v *MultiVector) Column(j int) []float64 { return v.data[j*v.n : (j+1)*v.n] }

// PutScalar sets every entry to a.
func (v *MultiVector) PutScalar(a float64) {
	for i := range v.data {
		v.data[i] = a
	}
}

// Norm2 returns the Euclidean norm of each column.
func (v *MultiVector) Norm2() []float64 {
	out := make([]float64, v.k)
	for j := range out {
		out[j] = floats.Norm(v.Column(j), 2)
	}

	return out
}

// Dot returns the column-wise dot products with w.
// Errors: lvsolve.ErrSizeMismatch on different shapes.
func (v *MultiVector) Dot(w *MultiVector) ([]float64, error) {
	if !v.SameShape(w) {
		return nil, fmt.Errorf("MultiVector.Dot: %s vs %s: %w", v.shape(), w.shape(), lvsolve.ErrSizeMismatch)
	}
	out := make([]float64, v.k)
	for j := range out {
		out[j] = floats.Dot(v.Column(j), w.Column(j))
	}

	return out, nil
}

// Axpy computes v += alpha*w.
// Errors: lvsolve.ErrSizeMismatch on different shapes.
func (v *MultiVector) Axpy(alpha float64, w *MultiVector) error {
	if !v.SameShape(w) {
		return fmt.Errorf("MultiVector.Axpy: %s vs %s: %w", v.shape(), w.shape(), lvsolve.ErrSizeMismatch)
	}
	floats.AddScaled(v.data, alpha, w.data)

	return nil
}

// Clone returns a deep copy.
func (v *MultiVector) Clone() *MultiVector {
	return &MultiVector{n: v.n, k: v.k, data: append([]float64(nil), v.data...)}
}

// SameShape reports whether w has the same rows and columns as v.
func (v *MultiVector) SameShape(w *MultiVector) bool {
	return w != nil && v.n == w.n && v.k == w.k
}

func (v *MultiVector) shape() string { return fmt.Sprintf("%dx%d", v.n, v.k) }

// SliceVector is a single plain column. It satisfies Vector but is not
// accepted by OperatorAdapter.
type SliceVector []float64

// Len returns the number of entries.
func (s SliceVector) Len() int { return len(s) }

// NumVectors is always 1.
func (s SliceVector) NumVectors() int { return 1 }
