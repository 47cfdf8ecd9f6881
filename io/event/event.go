// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types for event handling.
//
// Events are delivered by the host pump on a single goroutine.
// Lifecycle commands are in package system, raw host input in
// package input and classified pointer events in package pointer.
package event

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}
