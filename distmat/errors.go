// SPDX-License-Identifier: MIT

package distmat

import "errors"

var (
	// ErrInvalidMap indicates a row map that is not one-to-one over [0, n):
	// a row assigned twice, never, or outside the global range.
	ErrInvalidMap = errors.New("distmat: invalid row map")

	// ErrMapMismatch indicates a row map built for a different number of ranks
	// than the communicator it is used with.
	ErrMapMismatch = errors.New("distmat: map does not match communicator")

	// ErrRowOutOfRange indicates a global row index outside [0, NumGlobalRows).
	ErrRowOutOfRange = errors.New("distmat: row index out of range")

	// ErrColOutOfRange indicates a global column index outside [0, NumGlobalCols).
	ErrColOutOfRange = errors.New("distmat: column index out of range")

	// ErrLengthMismatch indicates column and value slices of different lengths.
	ErrLengthMismatch = errors.New("distmat: columns/values length mismatch")

	// ErrNilArgument indicates a nil communicator or map.
	ErrNilArgument = errors.New("distmat: nil argument")
)
