package radix

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout bounds how long a sort waits for its pool to drain.
const DefaultShutdownTimeout = time.Hour

// PassStats describes the global byte distribution of one completed count phase.
type PassStats struct {
	Pass    int
	Shift   uint
	Workers int
	Counts  Histogram
}

// Option configures a sort call.
type Option func(*options)

type options struct {
	logger          *zap.Logger
	observer        func(PassStats)
	shutdownTimeout time.Duration
}

// WithLogger sets the logger used for per-pass debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPassObserver registers fn to be called after every aggregation step.
// fn runs on the orchestrating goroutine while all workers are idle.
func WithPassObserver(fn func(PassStats)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithShutdownTimeout bounds the wait for worker pool shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:          zap.NewNop(),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DefaultWorkers returns the number of available hardware execution units.
func DefaultWorkers() int {
	return runtime.NumCPU()
}
