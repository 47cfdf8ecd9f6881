// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/sirupsen/logrus"

	"ndkarte.org/io/system"
)

// State of the window as seen by the Controller. Focus is
// tracked separately.
type State uint8

const (
	// StateNoWindow is the initial state: no surface exists.
	StateNoWindow State = iota
	// StateWindowReady means the Surface is acquired.
	StateWindowReady
	// StateDestroyed is terminal.
	StateDestroyed
)

// WindowSource supplies the host's current native window.
type WindowSource interface {
	NativeWindow() WindowHandle
}

// Controller maps lifecycle commands onto the Surface and is
// the single authority on whether a frame may be rendered.
// It must only be used from the event loop goroutine.
type Controller struct {
	surf *Surface
	win  WindowSource
	log  logrus.FieldLogger

	state        State
	hasFocus     bool
	shuttingDown bool
	forced       int
}

// NewController returns a Controller in StateNoWindow without
// focus. win may be nil if the host never reports a window.
func NewController(surf *Surface, win WindowSource, options ...Option) *Controller {
	cnf := newConfig(options)
	return newController(surf, win, cnf)
}

func newController(surf *Surface, win WindowSource, cnf *config) *Controller {
	if win == nil {
		win = noWindow{}
	}
	return &Controller{
		surf: surf,
		win:  win,
		log:  cnf.logger("lifecycle"),
	}
}

// HandleCommand applies cmd. Commands received after Destroy
// are ignored.
func (c *Controller) HandleCommand(cmd system.Command) {
	from := c.state
	if from == StateDestroyed {
		c.log.WithField("command", cmd).Debug("command after destroy ignored")
		return
	}
	switch cmd {
	case system.WindowAvailable:
		if c.state == StateWindowReady {
			c.log.Warn("window replaced while surface is live")
		}
		c.state = StateNoWindow
		if _, err := c.surf.Acquire(c.win.NativeWindow()); err == nil {
			c.state = StateWindowReady
		}
	case system.WindowUnavailable:
		if c.state == StateWindowReady {
			c.surf.Release()
			c.state = StateNoWindow
		}
	case system.FocusGained:
		c.hasFocus = true
	case system.FocusLost:
		c.hasFocus = false
		// Flush the visual state before input goes away.
		if c.surf.Valid() {
			c.surf.Present()
			c.forced++
		}
	case system.Pause, system.Resume:
	case system.Destroy:
		c.shuttingDown = true
		c.surf.Release()
		c.state = StateDestroyed
	default:
		c.log.WithField("command", uint8(cmd)).Warn("unknown command ignored")
		return
	}
	c.log.WithFields(logrus.Fields{
		"command": cmd,
		"from":    from,
		"to":      c.state,
		"focus":   c.hasFocus,
	}).Info("lifecycle")
}

// CanRender reports whether a regular frame may be presented:
// the surface is ready, the window has focus and no shutdown
// is in progress.
func (c *Controller) CanRender() bool {
	return c.state == StateWindowReady && c.hasFocus && !c.shuttingDown
}

// State returns the window state.
func (c *Controller) State() State {
	return c.state
}

// HasFocus reports whether the window has input focus.
func (c *Controller) HasFocus() bool {
	return c.hasFocus
}

// ShuttingDown reports whether Destroy has been handled.
func (c *Controller) ShuttingDown() bool {
	return c.shuttingDown
}

// ForcedFrames returns the number of frames presented on
// FocusLost.
func (c *Controller) ForcedFrames() int {
	return c.forced
}

func (s State) String() string {
	switch s {
	case StateNoWindow:
		return "NoWindow"
	case StateWindowReady:
		return "WindowReady"
	case StateDestroyed:
		return "Destroyed"
	default:
		panic("unexpected State value")
	}
}

type noWindow struct{}

func (noWindow) NativeWindow() WindowHandle { return 0 }
