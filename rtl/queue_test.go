package rtl_test

import (
	"testing"

	"github.com/jetsetilly/rv32oosim/rtl"
	"github.com/stretchr/testify/require"
)

func TestQueueEnqDeqSameCycle(t *testing.T) {
	q := rtl.NewQueue[int]()
	q.Enq(1)
	q.Tick()

	_, ok := q.Front()
	require.True(t, ok)

	// enqueue a second element and dequeue the first in the same cycle:
	// pop-before-push means the front observed this cycle is the element
	// popped; the newly enqueued element is not visible until next Tick.
	require.NoError(t, q.SetDeq())
	q.Enq(2)
	q.Tick()

	front, ok := q.Front()
	require.True(t, ok)
	require.Equal(t, 2, front)
	require.Equal(t, 1, q.Len())
}

func TestQueueSetDeqOnEmptyIsError(t *testing.T) {
	q := rtl.NewQueue[int]()
	err := q.SetDeq()
	require.Error(t, err)
}

func TestQueueFIFOOrder(t *testing.T) {
	q := rtl.NewQueue[int]()
	q.Enq(1)
	q.Enq(2)
	q.Enq(3)
	q.Tick()

	var out []int
	for q.Len() > 0 {
		v, ok := q.Front()
		require.True(t, ok)
		out = append(out, v)
		require.NoError(t, q.SetDeq())
		q.Tick()
	}
	require.Equal(t, []int{1, 2, 3}, out)
}
