// SPDX-License-Identifier: Unlicense OR MIT

// Package looper implements a FIFO event queue that can be
// polled with or without blocking, in the manner of a native
// looper: producers on any goroutine post items and wake the
// single consumer.
package looper

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrClosed is returned by Post after Close.
var ErrClosed = errors.New("looper: closed")

// Queue is a FIFO of T with a blocking Poll.
type Queue[T any] struct {
	mu      sync.Mutex
	items   []T
	stopped bool
	closed  bool
	waker   waker
}

type waker interface {
	// wake makes a pending or future wait return.
	wake()
	// wait blocks until wake is called, consuming
	// every wakeup delivered so far.
	wait() error
	close() error
}

// New returns an empty queue.
func New[T any]() (*Queue[T], error) {
	w, err := newWaker()
	if err != nil {
		return nil, err
	}
	return &Queue[T]{waker: w}, nil
}

// Post appends v to the queue and wakes the consumer.
func (q *Queue[T]) Post(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.waker.wake()
	return nil
}

// Stop makes every current and future blocking Poll return
// once the queue is drained. Items posted before Stop are
// still delivered.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	if q.stopped || q.closed {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	q.mu.Unlock()
	q.waker.wake()
}

// Stopped reports whether Stop has been called.
func (q *Queue[T]) Stopped() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stopped
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Poll removes and returns the oldest item. If the queue is
// empty and block is set, Poll waits for an item; it gives up
// and reports false when the queue is stopped or closed.
func (q *Queue[T]) Poll(block bool) (T, bool) {
	var zero T
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			v := q.items[0]
			q.items[0] = zero
			q.items = q.items[1:]
			q.mu.Unlock()
			return v, true
		}
		done := q.stopped || q.closed
		q.mu.Unlock()
		if !block || done {
			return zero, false
		}
		if err := q.waker.wait(); err != nil {
			return zero, false
		}
	}
}

// Close releases the wakeup resources. Close must not run
// concurrently with a blocking Poll.
func (q *Queue[T]) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.items = nil
	q.mu.Unlock()
	return q.waker.close()
}
