// SPDX-License-Identifier: MIT

package precond

// Trans selects how an operator is applied.
type Trans int

const (
	// NoTrans applies the operator as is. It is the only mode OperatorAdapter
	// supports.
	NoTrans Trans = iota
	// Transpose applies the transposed operator.
	Transpose
	// ConjTrans applies the conjugate transpose.
	ConjTrans
)

// String returns the mode name.
func (t Trans) String() string {
	switch t {
	case NoTrans:
		return "NoTrans"
	case Transpose:
		return "Transpose"
	case ConjTrans:
		return "ConjTrans"
	default:
		return "Trans(?)"
	}
}

// Hierarchy is a set-up preconditioner that can run cycles.
//
// Iterate runs nIts cycles mapping b to x, overwriting x. With zeroGuess the
// hierarchy may assume x is zero on entry.
type Hierarchy interface {
	Iterate(b, x *MultiVector, nIts int, zeroGuess bool) error
}
