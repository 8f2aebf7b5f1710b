package radix

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"
)

// workerPool runs one task per worker id and waits for all of them, which makes
// every call to run a full barrier. The goroutines are reused across phases.
type workerPool struct {
	pool    *ants.Pool
	workers int
}

func newWorkerPool(workers int) (*workerPool, error) {
	p, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	return &workerPool{pool: p, workers: workers}, nil
}

// run executes task(w) for w in [0, workers) and blocks until every task
// returned. onSubmitErr is called when a task could not be scheduled, so
// tasks that wait on each other can be released.
func (wp *workerPool) run(task func(w int) error, onSubmitErr func()) error {
	var wg sync.WaitGroup
	errs := make([]error, wp.workers)

	for w := 0; w < wp.workers; w++ {
		w := w
		wg.Add(1)
		err := wp.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[w] = fmt.Errorf("worker %d panicked: %v", w, r)
				}
			}()
			errs[w] = task(w)
		})
		if err != nil {
			wg.Done()
			errs[w] = fmt.Errorf("submitting worker %d: %w", w, err)
			if onSubmitErr != nil {
				onSubmitErr()
			}
		}
	}
	wg.Wait()

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// close releases the pool and waits until every worker goroutine has exited.
func (wp *workerPool) close(timeout time.Duration) error {
	if err := wp.pool.ReleaseTimeout(timeout); err != nil {
		if errors.Is(err, ants.ErrTimeout) {
			return fmt.Errorf("%w after %s", ErrShutdownTimeout, timeout)
		}
		return fmt.Errorf("releasing worker pool: %w", err)
	}
	return nil
}
