// SPDX-License-Identifier: MIT

// Package precond bridges a preconditioner hierarchy to the "apply a linear
// operator" contract a Krylov solver expects.
//
// OperatorAdapter.Apply runs exactly one cycle of the wrapped Hierarchy,
// always on an explicitly zeroed output, and refuses transposed application.
// ApplyVector accepts the generic Vector interface and narrows it to
// *MultiVector, the only vector type the adapter supports.
//
// JacobiHierarchy is a one-level damped Jacobi smoother built from a CRS
// matrix, so the format adapter's output can be turned into a working
// preconditioner:
//
//	crs, _ := fmtAdapter.CRS()
//	h, _ := precond.NewJacobiHierarchy(crs, precond.DefaultDamping)
//	op, _ := precond.NewOperatorAdapter(h)
//	_ = op.Apply(x, y, precond.NoTrans)
package precond
