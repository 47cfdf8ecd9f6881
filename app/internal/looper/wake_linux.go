// SPDX-License-Identifier: Unlicense OR MIT

package looper

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// pipeWaker wakes the consumer through a non-blocking pipe,
// so the consumer sleeps in poll(2) with no timeout.
type pipeWaker struct {
	r, w int
}

func newWaker() (waker, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, errors.Wrap(err, "looper: pipe2")
	}
	return &pipeWaker{r: p[0], w: p[1]}, nil
}

func (p *pipeWaker) wake() {
	// EAGAIN means the pipe is full and a wakeup is already pending.
	unix.Write(p.w, []byte{1})
}

func (p *pipeWaker) wait() error {
	fds := []unix.PollFd{{Fd: int32(p.r), Events: unix.POLLIN}}
	for {
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "looper: poll")
		}
		break
	}
	var buf [64]byte
	for {
		n, err := unix.Read(p.r, buf[:])
		if n <= 0 || err != nil {
			return nil
		}
	}
}

func (p *pipeWaker) close() error {
	errr := unix.Close(p.r)
	errw := unix.Close(p.w)
	if errr != nil {
		return errors.Wrap(errr, "looper: close")
	}
	return errors.Wrap(errw, "looper: close")
}
