package radix

import (
	"context"
	"sync"
	"sync/atomic"
)

// cursorTable holds the next free write position of every bucket for one
// scatter phase.
type cursorTable [buckets]atomic.Int64

func newCursorTable(offsets *Histogram) *cursorTable {
	var c cursorTable
	for b, off := range offsets {
		c[b].Store(int64(off))
	}
	return &c
}

// reserve claims local[b] consecutive slots in every bucket b and returns
// the first slot of each claim.
func (c *cursorTable) reserve(local *Histogram) Histogram {
	var start Histogram
	for b, n := range local {
		start[b] = int(c[b].Add(int64(n)) - int64(n))
	}
	return start
}

// turnstile admits workers to the reservation step in increasing id order.
// Worker w may enter once worker w-1 has left.
type turnstile struct {
	gates []chan struct{}
	abort chan struct{}
	once  sync.Once
}

func newTurnstile(workers int) *turnstile {
	t := &turnstile{
		gates: make([]chan struct{}, workers+1),
		abort: make(chan struct{}),
	}
	for i := range t.gates {
		t.gates[i] = make(chan struct{})
	}
	close(t.gates[0])
	return t
}

func (t *turnstile) enter(w int) {
	select {
	case <-t.gates[w]:
	case <-t.abort:
	}
}

func (t *turnstile) leave(w int) {
	close(t.gates[w+1])
}

// cancel lets every waiting worker through. Only used when a worker could
// not be scheduled, at which point the pass fails anyway.
func (t *turnstile) cancel() {
	t.once.Do(func() { close(t.abort) })
}

// reserveInOrder performs worker w's reservation once all lower ids are done.
func (t *turnstile) reserveInOrder(w int, cursors *cursorTable, local *Histogram) Histogram {
	t.enter(w)
	defer t.leave(w)
	return cursors.reserve(local)
}

// scatterRange moves the (key, value) pairs of sp to their reserved slots.
// pos is consumed as the worker's private cursor table.
func scatterRange(ctx context.Context, srcKeys, dstKeys []uint32, srcVals, dstVals []float32,
	sp span, shift uint, pos *Histogram) error {

	for i := sp.lo; i < sp.hi; i++ {
		if (i-sp.lo)&pollMask == pollMask {
			if err := ctx.Err(); err != nil {
				return interrupted(err)
			}
		}
		k := srcKeys[i]
		b := (k >> shift) & bucketMask
		p := pos[b]
		dstKeys[p] = k
		dstVals[p] = srcVals[i]
		pos[b] = p + 1
	}
	return nil
}
