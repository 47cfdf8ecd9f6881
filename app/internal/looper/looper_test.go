// SPDX-License-Identifier: Unlicense OR MIT

package looper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueue(t *testing.T) *Queue[int] {
	t.Helper()
	q, err := New[int]()
	require.NoError(t, err)
	t.Cleanup(func() { q.Close() })
	return q
}

func TestPollOrder(t *testing.T) {
	q := newQueue(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Post(i))
	}
	assert.Equal(t, 3, q.Len())
	for i := 0; i < 3; i++ {
		v, ok := q.Poll(false)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := q.Poll(false)
	assert.False(t, ok)
}

func TestBlockingPollWakes(t *testing.T) {
	q := newQueue(t)
	got := make(chan int)
	go func() {
		v, ok := q.Poll(true)
		if !ok {
			v = -1
		}
		got <- v
	}()
	select {
	case v := <-got:
		t.Fatalf("Poll returned %d before any Post", v)
	case <-time.After(20 * time.Millisecond):
	}
	require.NoError(t, q.Post(7))
	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(5 * time.Second):
		t.Fatal("blocking Poll did not wake")
	}
}

func TestStopUnblocks(t *testing.T) {
	q := newQueue(t)
	done := make(chan bool)
	go func() {
		_, ok := q.Poll(true)
		done <- ok
	}()
	q.Stop()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not unblock Poll")
	}
	assert.True(t, q.Stopped())
}

func TestStopDeliversPending(t *testing.T) {
	q := newQueue(t)
	require.NoError(t, q.Post(1))
	q.Stop()
	v, ok := q.Poll(true)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = q.Poll(true)
	assert.False(t, ok)
}

func TestPostAfterClose(t *testing.T) {
	q, err := New[int]()
	require.NoError(t, err)
	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.Post(1), ErrClosed)
	assert.NoError(t, q.Close())
}
