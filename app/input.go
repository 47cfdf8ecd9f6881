// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/sirupsen/logrus"

	"ndkarte.org/io/input"
	"ndkarte.org/io/pointer"
)

// Router classifies raw host input into pointer events and
// forwards them. It keeps no state between events.
type Router struct {
	handler func(pointer.Event)
	log     logrus.FieldLogger
}

// NewRouter returns a Router forwarding to the handler set
// with OnPointer, if any.
func NewRouter(options ...Option) *Router {
	return newRouter(newConfig(options))
}

func newRouter(cnf *config) *Router {
	return &Router{
		handler: cnf.onPointer,
		log:     cnf.logger("input"),
	}
}

// Classify maps a motion event to a pointer event of its
// primary pointer. Unrecognized motion actions classify as
// Move. It reports false for non-motion events and for motion
// events without pointers.
func Classify(raw input.Raw) (pointer.Event, bool) {
	if raw.Source != input.SourceMotion {
		return pointer.Event{}, false
	}
	pos, ok := raw.Primary()
	if !ok {
		return pointer.Event{}, false
	}
	var kind pointer.Kind
	switch raw.Masked() {
	case input.ActionDown, input.ActionPointerDown:
		kind = pointer.Press
	case input.ActionUp, input.ActionPointerUp:
		kind = pointer.Release
	default:
		kind = pointer.Move
	}
	return pointer.Event{Kind: kind, Position: pos}, true
}

// HandleInput forwards raw if it is a pointer event. It
// reports whether the event was consumed, which is true for
// every motion event; other events are left to the host.
func (r *Router) HandleInput(raw input.Raw) bool {
	if raw.Source != input.SourceMotion {
		return false
	}
	e, ok := Classify(raw)
	if !ok {
		r.log.Debug("motion event without pointers")
		return true
	}
	if e.Kind != pointer.Move {
		r.log.WithFields(logrus.Fields{
			"kind": e.Kind,
			"x":    e.Position.X,
			"y":    e.Position.Y,
		}).Debug("touch")
	}
	if r.handler != nil {
		r.handler(e)
	}
	return true
}
