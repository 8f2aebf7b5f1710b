package radix

import "context"

const (
	buckets     = 256
	bucketMask  = buckets - 1
	bitsPerPass = 8
	passes      = 4

	// cancellation is polled once per pollInterval elements
	pollInterval = 1 << 14
	pollMask     = pollInterval - 1
)

// Histogram counts keys per byte value for one pass.
type Histogram [buckets]int

// Total returns the number of keys counted.
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// span is the half-open index range [lo, hi) owned by one worker.
type span struct {
	lo, hi int
}

// partition splits [0, n) into workers contiguous spans of ceil(n/workers)
// elements. Trailing spans are empty when n < workers.
func partition(n, workers int) []span {
	chunk := (n + workers - 1) / workers
	spans := make([]span, workers)
	for w := range spans {
		lo := min(w*chunk, n)
		hi := min(lo+chunk, n)
		spans[w] = span{lo: lo, hi: hi}
	}
	return spans
}

// countRange fills h with the byte distribution of keys[sp.lo:sp.hi] at shift.
func countRange(ctx context.Context, keys []uint32, sp span, shift uint, h *Histogram) error {
	for i := sp.lo; i < sp.hi; i++ {
		if (i-sp.lo)&pollMask == pollMask {
			if err := ctx.Err(); err != nil {
				return interrupted(err)
			}
		}
		h[(keys[i]>>shift)&bucketMask]++
	}
	return nil
}
