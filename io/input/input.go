// SPDX-License-Identifier: Unlicense OR MIT

// Package input describes raw input events as the host
// delivers them, before classification.
//
// Source and action values match the Android NDK input
// constants so host glue can copy them through unchanged.
package input

import "ndkarte.org/f32"

// Raw is an unclassified host input event.
type Raw struct {
	Source Source
	// Action is the host action code. For motion events the
	// low byte, selected by ActionMask, is the action and the
	// remaining bits hold the pointer index.
	Action int32
	// Pointers holds the coordinates of every pointer, primary
	// pointer first.
	Pointers []f32.Point
}

// Source is the category of a raw event.
type Source int32

const (
	SourceKey    Source = 1
	SourceMotion Source = 2
	SourceFocus  Source = 3
)

// Motion action codes.
const (
	ActionDown        int32 = 0
	ActionUp          int32 = 1
	ActionMove        int32 = 2
	ActionCancel      int32 = 3
	ActionOutside     int32 = 4
	ActionPointerDown int32 = 5
	ActionPointerUp   int32 = 6
	ActionHoverMove   int32 = 7

	ActionMask int32 = 0xff
)

// Masked returns the action code without the pointer index bits.
func (r Raw) Masked() int32 {
	return r.Action & ActionMask
}

// Primary returns the position of the primary pointer. It
// reports false if the event carries no pointers.
func (r Raw) Primary() (f32.Point, bool) {
	if len(r.Pointers) == 0 {
		return f32.Point{}, false
	}
	return r.Pointers[0], true
}

func (s Source) String() string {
	switch s {
	case SourceKey:
		return "Key"
	case SourceMotion:
		return "Motion"
	case SourceFocus:
		return "Focus"
	default:
		return "Unknown"
	}
}

func (Raw) ImplementsEvent() {}
