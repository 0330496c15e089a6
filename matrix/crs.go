// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// CRS is a globally indexed compressed-row matrix.
//
// For every row r, the half-open slice [RowPtr[r], RowPtr[r+1]) of
// (ColInd, Values) is the row's nonzero set. The order of entries inside a
// row is unspecified; treat each row slice as an unordered set.
type CRS[S Scalar] struct {
	Rows, Cols int
	RowPtr     []int // len Rows+1, RowPtr[0]=0, RowPtr[Rows]=NNZ
	ColInd     []int // len NNZ, global column indices
	Values     []S   // len NNZ, aligned with ColInd
}

// NNZ returns the number of stored entries.
func (m *CRS[S]) NNZ() int { return len(m.Values) }

// Row returns the column indices and values of row r (shared, not copied).
// Returns ErrOutOfRange if r is outside [0, Rows).
func (m *CRS[S]) Row(r int) ([]int, []S, error) {
	if r < 0 || r >= m.Rows {
		return nil, nil, fmt.Errorf("CRS.Row(%d): %w", r, ErrOutOfRange)
	}
	lo, hi := m.RowPtr[r], m.RowPtr[r+1]

	return m.ColInd[lo:hi], m.Values[lo:hi], nil
}

// Validate enforces the compressed-row invariants.
//
// Implementation:
//   - Stage 1: nil receiver and shape.
//   - Stage 2: ColInd/Values lengths agree.
//   - Stage 3: RowPtr shape and monotonicity.
//   - Stage 4: column bounds.
//
// Complexity: O(Rows + NNZ).
func (m *CRS[S]) Validate() error {
	if m == nil {
		return fmt.Errorf("CRS.Validate: %w", ErrNilMatrix)
	}
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("CRS.Validate: %dx%d: %w", m.Rows, m.Cols, ErrInvalidDimensions)
	}
	if len(m.ColInd) != len(m.Values) {
		return fmt.Errorf("CRS.Validate: %d indices, %d values: %w", len(m.ColInd), len(m.Values), ErrLengthMismatch)
	}
	if err := ValidatePointers(m.RowPtr, m.Rows, len(m.Values)); err != nil {
		return fmt.Errorf("CRS.Validate: %w", err)
	}
	if err := ValidateIndices(m.ColInd, m.Cols); err != nil {
		return fmt.Errorf("CRS.Validate: %w", err)
	}

	return nil
}

// Triplets expands the matrix into (row, col, value) triplets in storage order.
// Complexity: O(NNZ).
func (m *CRS[S]) Triplets() []Triplet[S] {
	out := make([]Triplet[S], 0, len(m.Values))
	for r := 0; r < m.Rows; r++ {
		for k := m.RowPtr[r]; k < m.RowPtr[r+1]; k++ {
			out = append(out, Triplet[S]{Row: r, Col: m.ColInd[k], Val: m.Values[k]})
		}
	}

	return out
}

// ToDense scatters the matrix into a new Dense.
// Duplicate positions, if any, are summed.
// Errors: ErrInvalidDimensions for an empty shape.
func (m *CRS[S]) ToDense() (*Dense[S], error) {
	d, err := NewDense[S](m.Rows, m.Cols)
	if err != nil {
		return nil, fmt.Errorf("CRS.ToDense: %w", err)
	}
	for r := 0; r < m.Rows; r++ {
		for k := m.RowPtr[r]; k < m.RowPtr[r+1]; k++ {
			d.add(r, m.ColInd[k], m.Values[k])
		}
	}

	return d, nil
}

// MulVec computes dst = A*x. dst is overwritten.
// Errors: ErrLengthMismatch when len(x) != Cols or len(dst) != Rows.
// Complexity: O(Rows + NNZ).
func (m *CRS[S]) MulVec(dst, x []S) error {
	if len(x) != m.Cols || len(dst) != m.Rows {
		return fmt.Errorf("CRS.MulVec: x %d dst %d for %dx%d: %w", len(x), len(dst), m.Rows, m.Cols, ErrLengthMismatch)
	}
	for r := 0; r < m.Rows; r++ {
		var sum S
		for k := m.RowPtr[r]; k < m.RowPtr[r+1]; k++ {
			sum += m.Values[k] * x[m.ColInd[k]]
		}
		dst[r] = sum
	}

	return nil
}
