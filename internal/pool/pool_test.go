package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FactorySim_Go/internal/testing/leaktest"
)

func counting(n *int32) Job {
	return Func{JobName: "count", Fn: func(context.Context) error {
		atomic.AddInt32(n, 1)
		return nil
	}}
}

func TestPool_StopDrainsQueue(t *testing.T) {
	leaktest.Track(t, 0)
	var executed int32
	p := NewPool(2, 10)
	p.Start()

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Enqueue(counting(&executed)))
	}
	require.NoError(t, p.Enqueue(Func{JobName: "fails", Fn: func(context.Context) error {
		return errors.New("disk full")
	}}))

	p.Stop()
	assert.Equal(t, int32(5), atomic.LoadInt32(&executed))
	assert.ErrorIs(t, p.Enqueue(counting(&executed)), ErrStopped)
	p.Stop()
}

func TestPool_EnqueueDoesNotBlock(t *testing.T) {
	var executed int32
	p := NewPool(1, 1) // not started: nothing drains the queue

	require.NoError(t, p.Enqueue(counting(&executed)))
	assert.ErrorIs(t, p.Enqueue(counting(&executed)), ErrQueueFull)

	p.Start()
	p.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}
