// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux

package looper

type chanWaker struct {
	c chan struct{}
}

func newWaker() (waker, error) {
	return &chanWaker{c: make(chan struct{}, 1)}, nil
}

func (w *chanWaker) wake() {
	select {
	case w.c <- struct{}{}:
	default:
	}
}

func (w *chanWaker) wait() error {
	<-w.c
	return nil
}

func (w *chanWaker) close() error {
	return nil
}
