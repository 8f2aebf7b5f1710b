// Package radix sorts float32 slices with a parallel, four pass, 8-bit LSD
// radix sort.
//
// Every pass runs a count phase on all workers, a single threaded prefix sum,
// and a scatter phase on all workers, each separated by a full barrier.
// Keys are derived once with floatkey.Encode and travel next to their values;
// values are never decoded.
package radix

import (
	"context"
	"fmt"

	"github.com/ChristianF88/fradix/floatkey"
	"go.uber.org/zap"
)

// ParallelRadixSort sorts buf in ascending order using numWorkers workers.
func ParallelRadixSort(buf []float32, numWorkers int, opts ...Option) error {
	return SortContext(context.Background(), buf, numWorkers, opts...)
}

// SortContext is ParallelRadixSort with cancellation. When ctx is done before
// the last pass completes, buf is left as it was and the returned error
// matches ErrInterrupted.
func SortContext(ctx context.Context, buf []float32, numWorkers int, opts ...Option) (err error) {
	if numWorkers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, numWorkers)
	}
	if len(buf) < 2 {
		return nil
	}

	o := newOptions(opts)
	pool, err := newWorkerPool(numWorkers)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pool.close(o.shutdownTimeout); cerr != nil && err == nil {
			err = cerr
		}
	}()

	s := newSorter(buf, pool, o)
	if err := s.run(ctx); err != nil {
		o.logger.Warn("radix sort failed",
			zap.Int("n", len(buf)),
			zap.Int("workers", numWorkers),
			zap.Error(err))
		return err
	}
	return nil
}

type sorter struct {
	buf   []float32
	pool  *workerPool
	opts  *options
	spans []span

	// keys[pass%2] is the source of pass; vals[pass%2] is its destination.
	keys [2][]uint32
	vals [2][]float32
}

func newSorter(buf []float32, pool *workerPool, o *options) *sorter {
	n := len(buf)
	return &sorter{
		buf:   buf,
		pool:  pool,
		opts:  o,
		spans: partition(n, pool.workers),
		keys:  [2][]uint32{make([]uint32, n), make([]uint32, n)},
		vals:  [2][]float32{make([]float32, n), make([]float32, n)},
	}
}

func (s *sorter) run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return interrupted(err)
	}

	err := s.pool.run(func(w int) error {
		sp := s.spans[w]
		floatkey.EncodeInto(s.keys[0][sp.lo:sp.hi], s.buf[sp.lo:sp.hi])
		return nil
	}, nil)
	if err != nil {
		return fmt.Errorf("encoding keys: %w", err)
	}

	for pass := 0; pass < passes; pass++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("before pass %d: %w", pass, interrupted(err))
		}
		if err := s.pass(ctx, pass); err != nil {
			return fmt.Errorf("pass %d: %w", pass, err)
		}
	}

	copy(s.buf, s.vals[(passes-1)%2])
	return nil
}

func (s *sorter) pass(ctx context.Context, pass int) error {
	shift := uint(pass * bitsPerPass)
	srcKeys, dstKeys := s.keys[pass%2], s.keys[(pass+1)%2]
	srcVals, dstVals := s.buf, s.vals[pass%2]
	if pass > 0 {
		srcVals = s.vals[(pass-1)%2]
	}

	local := make([]Histogram, s.pool.workers)
	err := s.pool.run(func(w int) error {
		return countRange(ctx, srcKeys, s.spans[w], shift, &local[w])
	}, nil)
	if err != nil {
		return fmt.Errorf("count phase: %w", err)
	}

	global := aggregate(local)
	if err := checkTotal(&global, len(s.buf)); err != nil {
		return err
	}
	offsets := exclusiveScan(&global)

	s.opts.logger.Debug("radix pass counted",
		zap.Int("pass", pass),
		zap.Uint("shift", shift),
		zap.Int("workers", s.pool.workers),
		zap.Int("n", len(s.buf)))
	if s.opts.observer != nil {
		s.opts.observer(PassStats{Pass: pass, Shift: shift, Workers: s.pool.workers, Counts: global})
	}

	cursors := newCursorTable(&offsets)
	turns := newTurnstile(s.pool.workers)
	err = s.pool.run(func(w int) error {
		pos := turns.reserveInOrder(w, cursors, &local[w])
		return scatterRange(ctx, srcKeys, dstKeys, srcVals, dstVals, s.spans[w], shift, &pos)
	}, turns.cancel)
	if err != nil {
		return fmt.Errorf("scatter phase: %w", err)
	}
	return nil
}

func interrupted(cause error) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, cause)
}
