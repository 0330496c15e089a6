// SPDX-License-Identifier: MIT

package adapter

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/lvsolve/metrics"
)

// Defaults.
const (
	// DefaultRoot is the rank that receives extracted arrays.
	DefaultRoot = 0

	// DefaultReplicated controls whether every rank receives the arrays.
	DefaultReplicated = false
)

const (
	panicRootInvalid = "adapter: WithRoot: rank must be >= 0"
	panicLoggerNil   = "adapter: WithLogger: nil logger"
	panicRecorderNil = "adapter: WithRecorder: nil recorder"
)

// Option configures a MatrixAdapter.
type Option func(*options)

type options struct {
	root       int
	replicated bool
	logger     *slog.Logger
	recorder   metrics.Recorder
}

func defaultOptions() options {
	return options{
		root:       DefaultRoot,
		replicated: DefaultReplicated,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:   metrics.Noop{},
	}
}

// WithRoot selects the receiving rank. The upper bound is checked against the
// communicator in New. Panics on a negative rank (programmer error).
func WithRoot(rank int) Option {
	if rank < 0 {
		panic(panicRootInvalid)
	}

	return func(o *options) { o.root = rank }
}

// WithReplicated makes every rank a receiver of the assembled arrays.
func WithReplicated() Option {
	return func(o *options) { o.replicated = true }
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

// WithRecorder sets the metrics recorder. Panics on nil.
func WithRecorder(r metrics.Recorder) Option {
	if r == nil {
		panic(panicRecorderNil)
	}

	return func(o *options) { o.recorder = r }
}
