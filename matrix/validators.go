// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for the structural checks of compressed formats.
//  - Return sentinel errors tagged with the failing check so call sites can
//    wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Each validator is O(len(ptr) + nnz).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidatePointers checks a compressed pointer array for n slices holding nnz
// entries: len(ptr) == n+1, ptr[0] == 0, non-decreasing, ptr[n] == nnz.
//
// Errors: ErrInvalidDimensions if n < 0, ErrBadPointer otherwise.
// Complexity: O(n).
func ValidatePointers(ptr []int, n, nnz int) error {
	if n < 0 {
		return validatorErrorf("ValidatePointers", ErrInvalidDimensions)
	}
	if len(ptr) != n+1 {
		return validatorErrorf(fmt.Sprintf("ValidatePointers: len %d, want %d", len(ptr), n+1), ErrBadPointer)
	}
	if ptr[0] != 0 {
		return validatorErrorf(fmt.Sprintf("ValidatePointers: ptr[0]=%d", ptr[0]), ErrBadPointer)
	}
	for i := 0; i < n; i++ {
		if ptr[i+1] < ptr[i] {
			return validatorErrorf(fmt.Sprintf("ValidatePointers: ptr[%d]=%d > ptr[%d]=%d", i, ptr[i], i+1, ptr[i+1]), ErrBadPointer)
		}
	}
	if ptr[n] != nnz {
		return validatorErrorf(fmt.Sprintf("ValidatePointers: ptr[%d]=%d, nnz=%d", n, ptr[n], nnz), ErrBadPointer)
	}

	return nil
}

// ValidateIndices checks that every index lies in [0, bound).
// Complexity: O(len(ind)).
func ValidateIndices(ind []int, bound int) error {
	for k, i := range ind {
		if i < 0 || i >= bound {
			return validatorErrorf(fmt.Sprintf("ValidateIndices: ind[%d]=%d, bound %d", k, i, bound), ErrOutOfRange)
		}
	}

	return nil
}

// ValidateStrictlyIncreasing checks that every slice [ptr[j], ptr[j+1]) of ind
// is strictly increasing. Assumes ptr already passed ValidatePointers.
// Complexity: O(len(ind)).
func ValidateStrictlyIncreasing(ptr, ind []int) error {
	for j := 0; j+1 < len(ptr); j++ {
		for k := ptr[j] + 1; k < ptr[j+1]; k++ {
			if ind[k] <= ind[k-1] {
				return validatorErrorf(fmt.Sprintf("ValidateStrictlyIncreasing: slice %d at %d", j, k), ErrUnsortedIndices)
			}
		}
	}

	return nil
}
