// SPDX-License-Identifier: MIT

package metrics

import (
	"errors"
	"time"

	"github.com/katalvlaran/lvsolve"
)

// Recorder receives one call per adapter operation.
// Implementations must be safe for concurrent use: every rank of a World
// records through the same Recorder.
type Recorder interface {
	// RecordExtraction is called after each GetCRS/GetCCS. format is "crs" or
	// "ccs"; nnz is the number of entries assembled on this rank (0 on
	// non-receivers); err is nil on success.
	RecordExtraction(format string, nnz int, d time.Duration, err error)

	// RecordApply is called after each preconditioner application.
	RecordApply(d time.Duration, err error)
}

// Noop discards every record.
type Noop struct{}

// RecordExtraction does nothing.
func (Noop) RecordExtraction(string, int, time.Duration, error) {}

// RecordApply does nothing.
func (Noop) RecordApply(time.Duration, error) {}

// Error kinds used as label values.
const (
	KindSizeMismatch          = "size_mismatch"
	KindUnsupportedOperation  = "unsupported_operation"
	KindInterfaceMismatch     = "interface_mismatch"
	KindPreconditionViolation = "precondition_violation"
	KindOther                 = "other"
)

// ErrorKind classifies err against the lvsolve taxonomy.
// Returns "" for a nil error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, lvsolve.ErrSizeMismatch):
		return KindSizeMismatch
	case errors.Is(err, lvsolve.ErrUnsupportedOperation):
		return KindUnsupportedOperation
	case errors.Is(err, lvsolve.ErrInterfaceMismatch):
		return KindInterfaceMismatch
	case errors.Is(err, lvsolve.ErrPreconditionViolation):
		return KindPreconditionViolation
	default:
		return KindOther
	}
}
