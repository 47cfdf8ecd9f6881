// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ndkarte.org/io/event"
	"ndkarte.org/io/input"
	"ndkarte.org/io/system"
)

// Pump is the host event pump.
type Pump interface {
	// Poll returns the next pending event. If block is set and
	// nothing is pending, Poll waits for an event. A blocking Poll
	// may still return false, on a destroy request or a wakeup
	// without an event.
	Poll(block bool) (event.Event, bool)
	// Finish reports whether an input event was consumed.
	// Unconsumed events are left to the host default handling.
	Finish(e event.Event, handled bool)
	// DestroyRequested reports whether the host asked the loop
	// to exit.
	DestroyRequested() bool
}

// CommandHandler receives lifecycle commands.
type CommandHandler interface {
	HandleCommand(cmd system.Command)
}

// InputHandler receives raw input and reports whether it was
// consumed.
type InputHandler interface {
	HandleInput(raw input.Raw) bool
}

// Loop is the event loop. It drains the pump, dispatches
// commands and input, and presents one frame per iteration
// while the window has focus. Without focus it blocks in the
// pump and uses no CPU.
type Loop struct {
	pump   Pump
	surf   *Surface
	ctrl   *Controller
	router *Router
	log    logrus.FieldLogger

	started bool
}

var (
	_ CommandHandler = (*Loop)(nil)
	_ InputHandler   = (*Loop)(nil)
)

// NewLoop returns a Loop rendering through p and reading events
// from pump.
func NewLoop(pump Pump, p Provider, options ...Option) *Loop {
	cnf := newConfig(options)
	win := cnf.window
	if win == nil {
		if src, ok := pump.(WindowSource); ok {
			win = src
		}
	}
	surf := newSurface(p, cnf)
	return &Loop{
		pump:   pump,
		surf:   surf,
		ctrl:   newController(surf, win, cnf),
		router: newRouter(cnf),
		log:    cnf.logger("loop"),
	}
}

// Run runs the loop until the Destroy command or a destroy
// request from the pump. The surface is released before Run
// returns. Run fails only when misused. Run locks the calling goroutine to its OS thread for
// the lifetime of the rendering context.
func (l *Loop) Run() error {
	if l.pump == nil {
		return errors.New("app: nil pump")
	}
	if l.started {
		return errors.New("app: Run called twice")
	}
	l.started = true
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	l.log.Info("event loop started")
	for {
		if l.drain() {
			l.shutdown()
			return nil
		}
		if l.ctrl.CanRender() {
			l.surf.Present()
		}
	}
}

// drain dispatches every pending event. The first poll blocks
// when the window has no focus. drain reports whether the loop
// must stop. A blocking poll that returns nothing ends the
// drain; the next iteration polls again.
func (l *Loop) drain() bool {
	block := !l.ctrl.HasFocus()
	for {
		e, ok := l.pump.Poll(block)
		if !ok {
			if l.stopping() {
				return true
			}
			if block {
				l.log.Warn("blocking poll woke without an event")
			}
			return false
		}
		block = false
		l.dispatch(e)
		if l.stopping() {
			return true
		}
	}
}

func (l *Loop) dispatch(e event.Event) {
	switch e := e.(type) {
	case system.CommandEvent:
		l.HandleCommand(e.Command)
	case input.Raw:
		l.pump.Finish(e, l.HandleInput(e))
	default:
		l.log.WithField("event", fmt.Sprintf("%T", e)).Debug("unhandled event")
		l.pump.Finish(e, false)
	}
}

func (l *Loop) stopping() bool {
	return l.ctrl.ShuttingDown() || l.pump.DestroyRequested()
}

func (l *Loop) shutdown() {
	if !l.ctrl.ShuttingDown() {
		l.ctrl.HandleCommand(system.Destroy)
	}
	l.surf.Release()
	stats := l.surf.Stats()
	l.log.WithFields(logrus.Fields{
		"presented": stats.Presented,
		"dropped":   stats.Dropped,
		"forced":    l.ctrl.ForcedFrames(),
	}).Info("event loop stopped")
}

// HandleCommand dispatches cmd to the lifecycle controller.
func (l *Loop) HandleCommand(cmd system.Command) {
	l.ctrl.HandleCommand(cmd)
}

// HandleInput dispatches raw to the input router.
func (l *Loop) HandleInput(raw input.Raw) bool {
	return l.router.HandleInput(raw)
}

// Surface returns the loop's surface.
func (l *Loop) Surface() *Surface {
	return l.surf
}

// Controller returns the loop's lifecycle controller.
func (l *Loop) Controller() *Controller {
	return l.ctrl
}
