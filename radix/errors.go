package radix

import "errors"

var (
	// ErrInvalidWorkers is returned when the worker count is below one.
	ErrInvalidWorkers = errors.New("radix: worker count must be at least 1")

	// ErrInterrupted is returned when a worker stopped before its pass completed.
	// The caller's buffer is left untouched in that case.
	ErrInterrupted = errors.New("radix: sort interrupted")

	// ErrShutdownTimeout is returned when the worker pool did not drain in time.
	ErrShutdownTimeout = errors.New("radix: worker pool shutdown timed out")
)
