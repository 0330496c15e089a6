// SPDX-License-Identifier: MIT

package distmat

import (
	"io"
	"log/slog"
)

// Option configures a CrsMatrix at construction.
type Option func(*options)

type options struct {
	numGlobalCols int // -1 ⇒ square (NumGlobal of the row map)
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		numGlobalCols: -1,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithNumGlobalCols sets the global column count; by default the matrix is
// square. Panics on a negative count (programmer error).
func WithNumGlobalCols(n int) Option {
	if n < 0 {
		panic("distmat: WithNumGlobalCols: n must be >= 0")
	}

	return func(o *options) { o.numGlobalCols = n }
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("distmat: WithLogger: nil logger")
	}

	return func(o *options) { o.logger = l }
}
