// SPDX-License-Identifier: MIT
// Package lvsolve: shared error taxonomy of the adapter layer.
//
// Every adapter returns one of these sentinels, wrapped with operation context
// via fmt.Errorf("Op: ...: %w", ErrX). Callers match with errors.Is.
// Nothing here is retried automatically; retry is the caller's decision.

package lvsolve

import "errors"

var (
	// ErrSizeMismatch is returned when a caller-provided buffer is too small for
	// the extracted arrays, or when operand shapes disagree.
	ErrSizeMismatch = errors.New("lvsolve: size mismatch")

	// ErrUnsupportedOperation is returned when an operator is asked for a mode it
	// does not implement (e.g., transposed application of a preconditioner).
	ErrUnsupportedOperation = errors.New("lvsolve: unsupported operation")

	// ErrInterfaceMismatch is returned when a value passed through a generic
	// interface cannot be narrowed to the concrete type the adapter supports.
	ErrInterfaceMismatch = errors.New("lvsolve: interface mismatch")

	// ErrPreconditionViolation is returned when an object is used outside of its
	// lifecycle contract (e.g., extraction from a matrix that is not fill-complete).
	ErrPreconditionViolation = errors.New("lvsolve: precondition violation")
)
