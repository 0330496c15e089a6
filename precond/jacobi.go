// SPDX-License-Identifier: MIT

package precond

import (
	"fmt"

	"github.com/katalvlaran/lvsolve"
	"github.com/katalvlaran/lvsolve/matrix"
	"gonum.org/v1/gonum/floats"
)

// JacobiHierarchy is a single-level damped Jacobi smoother:
//
//	x ← x + ω·D⁻¹·(b − A·x)
//
// With zeroGuess the first sweep reduces to x = ω·D⁻¹·b and skips the
// product. It holds the matrix by reference and is read-only after
// construction.
type JacobiHierarchy struct {
	a       *matrix.CRS[float64]
	invDiag []float64
	omega   float64
}

// NewJacobiHierarchy precomputes the inverse diagonal of a square CRS matrix.
//
// Errors:
//   - matrix.ErrNilMatrix if a is nil.
//   - lvsolve.ErrSizeMismatch if a is not square.
//   - ErrInvalidDamping if omega is not in (0, 2).
//   - ErrSingularDiagonal on a zero or missing diagonal entry.
//
// Complexity: O(NNZ).
func NewJacobiHierarchy(a *matrix.CRS[float64], omega float64) (*JacobiHierarchy, error) {
	if a == nil {
		return nil, fmt.Errorf("NewJacobiHierarchy: %w", matrix.ErrNilMatrix)
	}
	if a.Rows != a.Cols {
		return nil, fmt.Errorf("NewJacobiHierarchy: %dx%d is not square: %w", a.Rows, a.Cols, lvsolve.ErrSizeMismatch)
	}
	if !(omega > 0 && omega < 2) {
		return nil, fmt.Errorf("NewJacobiHierarchy: omega %g: %w", omega, ErrInvalidDamping)
	}

	inv := make([]float64, a.Rows)
	for r := 0; r < a.Rows; r++ {
		var d float64
		for k := a.RowPtr[r]; k < a.RowPtr[r+1]; k++ {
			if a.ColInd[k] == r {
				d += a.Values[k]
			}
		}
		if d == 0 {
			return nil, fmt.Errorf("NewJacobiHierarchy: row %d: %w", r, ErrSingularDiagonal)
		}
		inv[r] = 1 / d
	}

	return &JacobiHierarchy{a: a, invDiag: inv, omega: omega}, nil
}

// Iterate runs nIts Jacobi sweeps per column, overwriting x.
// Errors: lvsolve.ErrPreconditionViolation for nil operands,
// lvsolve.ErrSizeMismatch if b or x do not match the matrix.
func (h *JacobiHierarchy) Iterate(b, x *MultiVector, nIts int, zeroGuess bool) error {
	if b == nil || x == nil {
		return fmt.Errorf("JacobiHierarchy.Iterate: nil vector: %w", lvsolve.ErrPreconditionViolation)
	}
	if !b.SameShape(x) || b.Len() != h.a.Rows {
		return fmt.Errorf("JacobiHierarchy.Iterate: b %s, x %s, matrix %d rows: %w", b.shape(), x.shape(), h.a.Rows, lvsolve.ErrSizeMismatch)
	}

	r := make([]float64, h.a.Rows)
	for j := 0; j < b.NumVectors(); j++ {
		bj, xj := b.Column(j), x.Column(j)
		for it := 0; it < nIts; it++ {
			if it == 0 && zeroGuess {
				// x = ω D⁻¹ b
				floats.MulTo(xj, h.invDiag, bj)
				floats.Scale(h.omega, xj)
				continue
			}
			if err := h.a.MulVec(r, xj); err != nil {
				return fmt.Errorf("JacobiHierarchy.Iterate: %w", err)
			}
			floats.SubTo(r, bj, r)
			floats.Mul(r, h.invDiag)
			floats.AddScaled(xj, h.omega, r)
		}
	}

	return nil
}
