// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer contains the classified pointer events
// forwarded to the map and gesture layer.
//
// Only the primary pointer is tracked; there is no pointer
// identity or multi-touch state.
package pointer

import (
	"fmt"
	"strings"

	"ndkarte.org/f32"
)

// Event is a pointer event.
type Event struct {
	Kind Kind
	// Position is the coordinates of the primary pointer
	// in window pixels.
	Position f32.Point
}

// Kind of an Event.
type Kind uint8

const (
	// Press of a pointer.
	Press Kind = 1 << iota
	// Move of a pointer.
	Move
	// Release of a pointer.
	Release
)

func (e Event) String() string {
	return fmt.Sprintf("%v(%.1f, %.1f)", e.Kind, e.Position.X, e.Position.Y)
}

func (t Kind) String() string {
	var buf strings.Builder
	for tt := Kind(1); tt > 0; tt <<= 1 {
		if t&tt > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((t & tt).string())
		}
	}
	return buf.String()
}

func (t Kind) string() string {
	switch t {
	case Press:
		return "Press"
	case Move:
		return "Move"
	case Release:
		return "Release"
	default:
		panic("unknown Kind")
	}
}

func (Event) ImplementsEvent() {}
