// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// CCS is a globally indexed compressed-column matrix.
//
// For every column c, the half-open slice [ColPtr[c], ColPtr[c+1]) of
// (RowInd, Values) is the column's nonzero set, and RowInd is strictly
// increasing within that slice.
type CCS[S Scalar] struct {
	Rows, Cols int
	ColPtr     []int // len Cols+1, ColPtr[0]=0, ColPtr[Cols]=NNZ
	RowInd     []int // len NNZ, ascending inside each column
	Values     []S   // len NNZ, aligned with RowInd
}

// NNZ returns the number of stored entries.
func (m *CCS[S]) NNZ() int { return len(m.Values) }

// Col returns the row indices and values of column c (shared, not copied).
// Returns ErrOutOfRange if c is outside [0, Cols).
func (m *CCS[S]) Col(c int) ([]int, []S, error) {
	if c < 0 || c >= m.Cols {
		return nil, nil, fmt.Errorf("CCS.Col(%d): %w", c, ErrOutOfRange)
	}
	lo, hi := m.ColPtr[c], m.ColPtr[c+1]

	return m.RowInd[lo:hi], m.Values[lo:hi], nil
}

// Validate enforces the compressed-column invariants, including strictly
// increasing row indices per column.
// Complexity: O(Cols + NNZ).
func (m *CCS[S]) Validate() error {
	if m == nil {
		return fmt.Errorf("CCS.Validate: %w", ErrNilMatrix)
	}
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("CCS.Validate: %dx%d: %w", m.Rows, m.Cols, ErrInvalidDimensions)
	}
	if len(m.RowInd) != len(m.Values) {
		return fmt.Errorf("CCS.Validate: %d indices, %d values: %w", len(m.RowInd), len(m.Values), ErrLengthMismatch)
	}
	if err := ValidatePointers(m.ColPtr, m.Cols, len(m.Values)); err != nil {
		return fmt.Errorf("CCS.Validate: %w", err)
	}
	if err := ValidateIndices(m.RowInd, m.Rows); err != nil {
		return fmt.Errorf("CCS.Validate: %w", err)
	}
	if err := ValidateStrictlyIncreasing(m.ColPtr, m.RowInd); err != nil {
		return fmt.Errorf("CCS.Validate: %w", err)
	}

	return nil
}

// Triplets expands the matrix into (row, col, value) triplets, column-major.
// Complexity: O(NNZ).
func (m *CCS[S]) Triplets() []Triplet[S] {
	out := make([]Triplet[S], 0, len(m.Values))
	for c := 0; c < m.Cols; c++ {
		for k := m.ColPtr[c]; k < m.ColPtr[c+1]; k++ {
			out = append(out, Triplet[S]{Row: m.RowInd[k], Col: c, Val: m.Values[k]})
		}
	}

	return out
}

// ToDense scatters the matrix into a new Dense.
// Errors: ErrInvalidDimensions for an empty shape.
func (m *CCS[S]) ToDense() (*Dense[S], error) {
	d, err := NewDense[S](m.Rows, m.Cols)
	if err != nil {
		return nil, fmt.Errorf("CCS.ToDense: %w", err)
	}
	for c := 0; c < m.Cols; c++ {
		for k := m.ColPtr[c]; k < m.ColPtr[c+1]; k++ {
			d.add(m.RowInd[k], c, m.Values[k])
		}
	}

	return d, nil
}
