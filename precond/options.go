// SPDX-License-Identifier: MIT

package precond

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/lvsolve/metrics"
)

// DefaultDamping is the Jacobi damping factor used by the command-line driver.
const DefaultDamping = 2.0 / 3.0

const (
	panicLoggerNil   = "precond: WithLogger: nil logger"
	panicRecorderNil = "precond: WithRecorder: nil recorder"
)

// Option configures an OperatorAdapter.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

func defaultOptions() options {
	return options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: metrics.Noop{},
	}
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
