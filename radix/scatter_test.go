package radix

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/ChristianF88/fradix/floatkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorTable_Reserve(t *testing.T) {
	var offsets Histogram
	offsets[0] = 0
	offsets[1] = 3
	for b := 2; b < buckets; b++ {
		offsets[b] = 5
	}
	cursors := newCursorTable(&offsets)

	var first, second Histogram
	first[0], first[1] = 2, 1
	second[0], second[1] = 1, 2

	a := cursors.reserve(&first)
	b := cursors.reserve(&second)

	assert.Equal(t, 0, a[0])
	assert.Equal(t, 3, a[1])
	assert.Equal(t, 2, b[0])
	assert.Equal(t, 4, b[1])
}

func TestTurnstile_GrantsInWorkerOrder(t *testing.T) {
	const workers = 8
	turns := newTurnstile(workers)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for w := workers - 1; w >= 0; w-- {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			turns.enter(w)
			mu.Lock()
			order = append(order, w)
			mu.Unlock()
			turns.leave(w)
		}(w)
	}
	wg.Wait()

	require.Len(t, order, workers)
	for i, w := range order {
		assert.Equal(t, i, w)
	}
}

func TestTurnstile_CancelReleasesWaiters(t *testing.T) {
	turns := newTurnstile(3)
	done := make(chan struct{})
	go func() {
		turns.enter(2)
		close(done)
	}()
	turns.cancel()
	turns.cancel()
	<-done
}

func TestScatterRange_StableWithinBucket(t *testing.T) {
	keys := []uint32{0x0201, 0x0101, 0x0302, 0x0401, 0x0102}
	vals := []float32{0, 1, 2, 3, 4}

	var h Histogram
	require.NoError(t, countRange(context.Background(), keys, span{0, len(keys)}, 0, &h))
	offsets := exclusiveScan(&h)

	dstKeys := make([]uint32, len(keys))
	dstVals := make([]float32, len(vals))
	require.NoError(t, scatterRange(context.Background(), keys, dstKeys, vals, dstVals,
		span{0, len(keys)}, 0, &offsets))

	assert.Equal(t, []uint32{0x0201, 0x0101, 0x0401, 0x0302, 0x0102}, dstKeys)
	assert.Equal(t, []float32{0, 1, 3, 2, 4}, dstVals)
}

// A single pass over several workers must equal a sequential stable
// counting sort on the same byte.
func TestPass_MatchesSequentialStableSort(t *testing.T) {
	buf := make([]float32, 5000)
	for i := range buf {
		buf[i] = float32(i%97) - float32(i%13)*0.5 + float32(i)*1e-3
	}

	for _, workers := range []int{1, 3, 8} {
		pool, err := newWorkerPool(workers)
		require.NoError(t, err)

		s := newSorter(buf, pool, newOptions(nil))
		for i, f := range buf {
			s.keys[0][i] = floatkey.Encode(f)
		}
		for pass := 0; pass < 2; pass++ {
			require.NoError(t, s.pass(context.Background(), pass))
		}

		type pair struct {
			key uint32
			val float32
		}
		want := make([]pair, len(buf))
		for i, f := range buf {
			want[i] = pair{floatkey.Encode(f), f}
		}
		sort.SliceStable(want, func(i, j int) bool {
			return want[i].key&0xFFFF < want[j].key&0xFFFF
		})

		for i := range want {
			require.Equal(t, want[i].key, s.keys[0][i], "workers=%d index=%d", workers, i)
			require.Equal(t, want[i].val, s.vals[1][i], "workers=%d index=%d", workers, i)
		}
		require.NoError(t, pool.close(DefaultShutdownTimeout))
	}
}
