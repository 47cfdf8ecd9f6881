// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndkarte.org/io/system"
)

type fixedWindow WindowHandle

func (w fixedWindow) NativeWindow() WindowHandle { return WindowHandle(w) }

func newTestController(p *fakeProvider, draw func()) *Controller {
	opts := []Option{Logger(quietLogger()), Draw(draw)}
	return NewController(NewSurface(p, opts...), fixedWindow(1), opts...)
}

func TestControllerInitialState(t *testing.T) {
	c := newTestController(newFakeProvider(), nil)
	assert.Equal(t, StateNoWindow, c.State())
	assert.False(t, c.HasFocus())
	assert.False(t, c.ShuttingDown())
	assert.False(t, c.CanRender())
}

// A new window is acquired but frames wait for focus.
func TestControllerWindowAvailable(t *testing.T) {
	p := newFakeProvider()
	frames := 0
	c := newTestController(p, func() { frames++ })

	c.HandleCommand(system.WindowAvailable)
	assert.Equal(t, StateWindowReady, c.State())
	assert.True(t, c.surf.Valid())
	assert.False(t, c.CanRender(), "no focus yet")

	c.HandleCommand(system.FocusGained)
	assert.True(t, c.CanRender())
	c.surf.Present()
	assert.Equal(t, 1, frames)
}

// Losing the window releases the surface and stops frames.
func TestControllerWindowUnavailable(t *testing.T) {
	p := newFakeProvider()
	frames := 0
	c := newTestController(p, func() { frames++ })

	c.HandleCommand(system.WindowAvailable)
	c.HandleCommand(system.WindowUnavailable)
	assert.Equal(t, StateNoWindow, c.State())
	assert.False(t, c.surf.Valid())
	assert.Equal(t, 1, p.count("Terminate"))

	c.surf.Present()
	assert.Zero(t, frames)
	assert.Zero(t, p.count("SwapBuffers"))

	// Window shown again.
	c.HandleCommand(system.WindowAvailable)
	assert.Equal(t, StateWindowReady, c.State())
	assert.Equal(t, 2, p.count("Connect"))
}

// FocusLost presents exactly one forced frame.
func TestControllerFocusLostForcesOneFrame(t *testing.T) {
	p := newFakeProvider()
	frames := 0
	c := newTestController(p, func() { frames++ })

	c.HandleCommand(system.WindowAvailable)
	c.HandleCommand(system.FocusGained)
	assert.Zero(t, frames, "FocusGained does not render")
	c.HandleCommand(system.FocusLost)
	assert.Equal(t, 1, frames)
	assert.Equal(t, 1, c.ForcedFrames())
	assert.False(t, c.HasFocus())
	assert.False(t, c.CanRender())
}

func TestControllerFocusLostWithoutSurface(t *testing.T) {
	p := newFakeProvider()
	frames := 0
	c := newTestController(p, func() { frames++ })
	c.HandleCommand(system.FocusGained)
	c.HandleCommand(system.FocusLost)
	assert.Zero(t, frames)
	assert.Zero(t, c.ForcedFrames())
}

// A failed config choice leaves no handles behind.
func TestControllerAcquireFailure(t *testing.T) {
	p := newFakeProvider()
	p.failAt = "ChooseConfig"
	l, hook := test.NewNullLogger()
	c := NewController(NewSurface(p, Logger(l)), fixedWindow(1), Logger(l))

	c.HandleCommand(system.WindowAvailable)
	assert.Equal(t, StateNoWindow, c.State())
	assert.False(t, c.surf.Valid())
	assert.Zero(t, p.count("DestroyContext"))
	assert.Zero(t, p.count("DestroySurface"))
	assert.Equal(t, 1, p.count("Connect"), "no automatic retry")

	var errs int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errs++
		}
	}
	assert.Equal(t, 1, errs)

	// The host retries with a new WindowAvailable.
	p.failAt = ""
	c.HandleCommand(system.WindowAvailable)
	assert.Equal(t, StateWindowReady, c.State())
}

func TestControllerNoNativeWindow(t *testing.T) {
	p := newFakeProvider()
	c := NewController(NewSurface(p, Logger(quietLogger())), nil, Logger(quietLogger()))
	c.HandleCommand(system.WindowAvailable)
	assert.Equal(t, StateNoWindow, c.State())
	assert.Empty(t, p.calls)
}

func TestControllerPauseResumeInert(t *testing.T) {
	p := newFakeProvider()
	c := newTestController(p, nil)
	c.HandleCommand(system.WindowAvailable)
	c.HandleCommand(system.FocusGained)
	p.reset()
	c.HandleCommand(system.Pause)
	c.HandleCommand(system.Resume)
	assert.Empty(t, p.calls)
	assert.True(t, c.CanRender())
}

func TestControllerDestroy(t *testing.T) {
	p := newFakeProvider()
	c := newTestController(p, nil)
	c.HandleCommand(system.WindowAvailable)
	c.HandleCommand(system.FocusGained)
	c.HandleCommand(system.Destroy)

	assert.Equal(t, StateDestroyed, c.State())
	assert.True(t, c.ShuttingDown())
	assert.False(t, c.CanRender())
	assert.Equal(t, 1, p.count("Terminate"))

	p.reset()
	for _, cmd := range system.Commands {
		c.HandleCommand(cmd)
	}
	assert.Empty(t, p.calls, "commands after Destroy are ignored")
	assert.Equal(t, StateDestroyed, c.State())
}

func TestControllerUnknownCommand(t *testing.T) {
	c := newTestController(newFakeProvider(), nil)
	assert.NotPanics(t, func() {
		c.HandleCommand(system.Command(200))
	})
	assert.Equal(t, StateNoWindow, c.State())
}

// TestControllerInvariants runs every command sequence up to
// length 4 and checks that the state, the surface and its
// handles agree after each command.
func TestControllerInvariants(t *testing.T) {
	var run func(prefix []system.Command)
	run = func(prefix []system.Command) {
		p := newFakeProvider()
		frames := 0
		c := newTestController(p, func() { frames++ })
		for _, cmd := range prefix {
			before := frames
			c.HandleCommand(cmd)
			s := c.surf
			valid := s.Valid()
			require.Equal(t, valid, c.State() == StateWindowReady, "sequence %v", prefix)
			allSet := s.disp != 0 && s.surf != 0 && s.ctx != 0
			noneSet := s.disp == 0 && s.surf == 0 && s.ctx == 0
			if valid {
				require.True(t, allSet, "sequence %v", prefix)
			} else {
				require.True(t, noneSet, "sequence %v", prefix)
			}
			if cmd != system.FocusLost {
				require.Equal(t, before, frames, "only FocusLost renders, sequence %v", prefix)
			}
		}
		if len(prefix) == 4 {
			return
		}
		for _, cmd := range system.Commands {
			run(append(append([]system.Command(nil), prefix...), cmd))
		}
	}
	run(nil)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "NoWindow", StateNoWindow.String())
	assert.Equal(t, "WindowReady", StateWindowReady.String())
	assert.Equal(t, "Destroyed", StateDestroyed.String())
}
