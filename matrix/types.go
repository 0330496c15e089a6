// SPDX-License-Identifier: MIT

// Package matrix: element type constraint and the triplet entry type.
package matrix

import "golang.org/x/exp/constraints"

// Scalar is the set of element types a sparse artifact may carry.
// It mirrors the instantiations a direct-solver backend usually supports:
// single and double precision, real and complex.
type Scalar interface {
	constraints.Float | constraints.Complex
}

// Triplet is one nonzero in global index space.
type Triplet[S Scalar] struct {
	Row, Col int
	Val      S
}
