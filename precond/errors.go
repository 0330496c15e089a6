// SPDX-License-Identifier: MIT

package precond

import "errors"

var (
	// ErrSingularDiagonal is returned when a Jacobi smoother meets a zero (or
	// missing) diagonal entry.
	ErrSingularDiagonal = errors.New("precond: zero diagonal entry")

	// ErrInvalidDamping is returned for a damping factor outside (0, 2).
	ErrInvalidDamping = errors.New("precond: damping must be in (0, 2)")
)
