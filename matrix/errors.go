// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (possibly wrapped with call-site
// context) and tests check them via errors.Is. No function panics on
// user-triggered conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for easy grepping across logs.
// Wrap with fmt.Errorf("ctx: %w", ErrX) when context is essential.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are invalid
	// (non-positive for Dense, negative for sparse artifacts).
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrBadPointer indicates a row/column pointer array that does not start at 0,
	// decreases, has the wrong length, or does not end at the nonzero count.
	ErrBadPointer = errors.New("matrix: malformed pointer array")

	// ErrLengthMismatch indicates index and value arrays of different lengths.
	ErrLengthMismatch = errors.New("matrix: index/value length mismatch")

	// ErrUnsortedIndices indicates a CCS column slice whose row indices are not
	// strictly increasing.
	ErrUnsortedIndices = errors.New("matrix: indices not strictly increasing")

	// ErrNilMatrix indicates that a nil receiver or argument was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
