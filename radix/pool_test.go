package radix

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_SubmitFailureReleasesTurnstile(t *testing.T) {
	const workers = 4
	pool, err := newWorkerPool(workers)
	require.NoError(t, err)
	pool.pool.Release()

	cursors := newCursorTable(&Histogram{})
	turns := newTurnstile(workers)
	var cancels atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- pool.run(func(w int) error {
			var local Histogram
			local[0] = 1
			turns.reserveInOrder(w, cursors, &local)
			return nil
		}, func() {
			cancels.Add(1)
			turns.cancel()
		})
	}()

	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after submit failures")
	}

	require.Error(t, err)
	assert.ErrorIs(t, err, ants.ErrPoolClosed)
	assert.Contains(t, err.Error(), "submitting worker 0")
	assert.Contains(t, err.Error(), "submitting worker 3")
	assert.Equal(t, int32(workers), cancels.Load())

	// a waiter on an unreleased gate gets through after cancel
	entered := make(chan struct{})
	go func() {
		turns.enter(2)
		close(entered)
	}()
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("turnstile still blocks after cancel")
	}
}

func TestWorkerPool_CloseTimeout(t *testing.T) {
	pool, err := newWorkerPool(2)
	require.NoError(t, err)

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.pool.Submit(func() {
		close(started)
		<-block
	}))
	<-started
	defer close(block)

	err = pool.close(10 * time.Millisecond)
	require.ErrorIs(t, err, ErrShutdownTimeout)
	assert.False(t, errors.Is(err, ants.ErrTimeout))
}

func TestWorkerPool_CloseWaitsForIdleWorkers(t *testing.T) {
	pool, err := newWorkerPool(3)
	require.NoError(t, err)
	require.NoError(t, pool.run(func(int) error { return nil }, nil))
	require.NoError(t, pool.close(time.Second))
}
