// SPDX-License-Identifier: MIT
// Package matrix: Dense is a row-major matrix stored in a flat slice. It is
// the scatter target of CRS.ToDense and CCS.ToDense.
package matrix

import (
	"fmt"
	"strings"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of S values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense[S Scalar] struct {
	r, c int // number of rows and columns
	data []S // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense[S Scalar](rows, cols int) (*Dense[S], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}

	return &Dense[S]{r: rows, c: cols, data: make([]S, rows*cols)}, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense[S]) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense[S]) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense[S]) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense[S]) At(row, col int) (S, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		var zero S
		return zero, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense[S]) Set(row, col int, v S) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// add accumulates v into (row, col); indices are trusted.
func (m *Dense[S]) add(row, col int, v S) {
	m.data[row*m.c+col] += v
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory for copy.
func (m *Dense[S]) Clone() *Dense[S] {
	cp := make([]S, len(m.data))
	copy(cp, m.data)

	return &Dense[S]{r: m.r, c: m.c, data: cp}
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c) for string construction.
func (m *Dense[S]) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			fmt.Fprintf(&sb, "%v", m.data[i*m.c+j])
			if j < m.c-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
