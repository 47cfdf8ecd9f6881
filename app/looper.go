// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"sync"

	"ndkarte.org/app/internal/looper"
	"ndkarte.org/io/event"
	"ndkarte.org/io/system"
)

// Looper is a Pump fed by host glue. Post, Command, SetWindow
// and RequestDestroy may be called from any goroutine; the
// remaining methods belong to the event loop.
type Looper struct {
	q *looper.Queue[event.Event]

	mu        sync.Mutex
	win       WindowHandle
	unhandled func(e event.Event)
}

var (
	_ Pump         = (*Looper)(nil)
	_ WindowSource = (*Looper)(nil)
)

// NewLooper returns an empty Looper.
func NewLooper() (*Looper, error) {
	q, err := looper.New[event.Event]()
	if err != nil {
		return nil, err
	}
	return &Looper{q: q}, nil
}

// Post queues e for the event loop.
func (l *Looper) Post(e event.Event) error {
	return l.q.Post(e)
}

// Command queues a lifecycle command.
func (l *Looper) Command(cmd system.Command) error {
	return l.Post(system.CommandEvent{Command: cmd})
}

// SetWindow sets the native window read when WindowAvailable is
// dispatched. Hosts set it before posting WindowAvailable and
// clear it after WindowUnavailable has been handled.
func (l *Looper) SetWindow(h WindowHandle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.win = h
}

// NativeWindow implements WindowSource.
func (l *Looper) NativeWindow() WindowHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.win
}

// OnUnhandled sets the fallback for input events the loop did
// not consume.
func (l *Looper) OnUnhandled(f func(e event.Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unhandled = f
}

// RequestDestroy asks the event loop to exit. A blocked Poll
// returns immediately.
func (l *Looper) RequestDestroy() {
	l.q.Stop()
}

// DestroyRequested implements Pump.
func (l *Looper) DestroyRequested() bool {
	return l.q.Stopped()
}

// Poll implements Pump.
func (l *Looper) Poll(block bool) (event.Event, bool) {
	return l.q.Poll(block)
}

// Finish implements Pump.
func (l *Looper) Finish(e event.Event, handled bool) {
	if handled {
		return
	}
	l.mu.Lock()
	f := l.unhandled
	l.mu.Unlock()
	if f != nil {
		f(e)
	}
}

// Pending returns the number of queued events.
func (l *Looper) Pending() int {
	return l.q.Len()
}

// Close releases the Looper. It must not be called while the
// event loop is running.
func (l *Looper) Close() error {
	return l.q.Close()
}
