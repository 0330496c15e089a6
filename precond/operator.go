// SPDX-License-Identifier: MIT

package precond

import (
	"fmt"
	"time"

	"github.com/katalvlaran/lvsolve"
)

// OperatorAdapter exposes a Hierarchy as a linear operator y = M⁻¹x.
// It keeps a reference to the hierarchy and never mutates it outside
// Iterate. Safe for concurrent use if the hierarchy is.
type OperatorAdapter struct {
	h    Hierarchy
	opts options
}

// NewOperatorAdapter wraps a set-up hierarchy.
// Errors: lvsolve.ErrPreconditionViolation if h is nil.
func NewOperatorAdapter(h Hierarchy, opts ...Option) (*OperatorAdapter, error) {
	if h == nil {
		return nil, fmt.Errorf("precond.NewOperatorAdapter: nil hierarchy: %w", lvsolve.ErrPreconditionViolation)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &OperatorAdapter{h: h, opts: o}, nil
}

// Hierarchy returns the wrapped hierarchy.
func (a *OperatorAdapter) Hierarchy() Hierarchy { return a.h }

// Apply runs one preconditioning cycle x -> y.
//
// Implementation:
//   - Stage 1: reject every mode but NoTrans; the hierarchy is not called.
//   - Stage 2: require distinct x and y of the same shape; zeroing an aliased
//     y would erase the input.
//   - Stage 3: zero y explicitly, then Iterate(x, y, 1, true).
//
// Errors: lvsolve.ErrUnsupportedOperation, lvsolve.ErrPreconditionViolation
// (nil or aliased operands), lvsolve.ErrSizeMismatch, or the hierarchy's
// error wrapped.
func (a *OperatorAdapter) Apply(x, y *MultiVector, trans Trans) error {
	start := time.Now()
	err := a.apply(x, y, trans)
	elapsed := time.Since(start)

	a.opts.recorder.RecordApply(elapsed, err)
	if err != nil {
		a.opts.logger.Warn("apply failed", "trans", trans, "error", err)
		return err
	}
	a.opts.logger.Debug("apply complete",
		"rows", y.Len(),
		"vectors", y.NumVectors(),
		"elapsed", elapsed,
	)

	return nil
}

func (a *OperatorAdapter) apply(x, y *MultiVector, trans Trans) error {
	if trans != NoTrans {
		return fmt.Errorf("Apply: mode %s: %w", trans, lvsolve.ErrUnsupportedOperation)
	}
	if x == nil || y == nil {
		return fmt.Errorf("Apply: nil vector: %w", lvsolve.ErrPreconditionViolation)
	}
	if x == y {
		return fmt.Errorf("Apply: x and y are the same vector: %w", lvsolve.ErrPreconditionViolation)
	}
	if !x.SameShape(y) {
		return fmt.Errorf("Apply: x %s, y %s: %w", x.shape(), y.shape(), lvsolve.ErrSizeMismatch)
	}

	// The hierarchy's zero-guess path is not trusted to clear y.
	y.PutScalar(0)
	if err := a.h.Iterate(x, y, 1, true); err != nil {
		return fmt.Errorf("Apply: iterate: %w", err)
	}

	return nil
}

// ApplyVector is Apply behind the generic Vector interface. Both arguments
// must be *MultiVector.
// Errors: lvsolve.ErrInterfaceMismatch, then as Apply.
func (a *OperatorAdapter) ApplyVector(x, y Vector, trans Trans) error {
	mx, ok := x.(*MultiVector)
	if !ok {
		return a.mismatch("x", x)
	}
	my, ok := y.(*MultiVector)
	if !ok {
		return a.mismatch("y", y)
	}

	return a.Apply(mx, my, trans)
}

func (a *OperatorAdapter) mismatch(arg string, v Vector) error {
	err := fmt.Errorf("ApplyVector: %s is %T, want *MultiVector: %w", arg, v, lvsolve.ErrInterfaceMismatch)
	a.opts.recorder.RecordApply(0, err)

	return err
}
