package rtl_test

import (
	"testing"

	"github.com/jetsetilly/rv32oosim/rtl"
	"github.com/stretchr/testify/require"
)

func TestCircularQueueFullAndEmpty(t *testing.T) {
	q := rtl.NewCircularQueue[int](2)
	require.True(t, q.IsEmpty())
	require.False(t, q.IsFull())

	idx, ok, err := q.Enq(10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, idx)
	q.Tick()

	require.False(t, q.IsEmpty())

	idx, ok, err = q.Enq(20)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, idx)
	q.Tick()

	require.True(t, q.IsFull())

	_, ok, err = q.Enq(30)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCircularQueuePopBeforePushAtCapacityOne(t *testing.T) {
	q := rtl.NewCircularQueue[int](1)
	_, ok, err := q.Enq(1)
	require.NoError(t, err)
	require.True(t, ok)
	q.Tick()
	require.True(t, q.IsFull())

	// capacity-1 queue: dequeue and enqueue in the same cycle must succeed
	// because the pop is applied before the push.
	require.NoError(t, q.SetDeq())
	_, ok, err = q.Enq(2)
	require.NoError(t, err)
	require.True(t, ok)
	q.Tick()

	front, ok := q.Front()
	require.True(t, ok)
	require.Equal(t, 2, front)
}

func TestCircularQueueRandomAccessPorts(t *testing.T) {
	q := rtl.NewCircularQueue[int](4)
	_, _, _ = q.Enq(1)
	q.Tick()
	_, _, _ = q.Enq(2)
	q.Tick()

	require.NoError(t, q.UpdateIdx(0, 99))
	q.Tick()
	require.Equal(t, 99, q.SampleIdx(0))
	require.Equal(t, 2, q.SampleIdx(1))
}
