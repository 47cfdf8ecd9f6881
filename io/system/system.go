// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains the lifecycle commands delivered
// by the host to the top-level program.
package system

// Command is a host lifecycle command. The set of commands is
// closed; switches over Command must handle every value.
type Command uint8

// CommandEvent carries a Command through the host pump.
//
// WindowAvailable carries no window handle. The handle is read
// from the host when the command is dispatched.
type CommandEvent struct {
	Command Command
}

const (
	// WindowAvailable is sent when a native window is ready
	// for a rendering surface.
	WindowAvailable Command = iota
	// WindowUnavailable is sent before the native window is
	// invalidated. The surface must be released before returning.
	WindowUnavailable
	// FocusGained is sent when the window gains input focus.
	FocusGained
	// FocusLost is sent when the window loses input focus.
	FocusLost
	// Pause is sent when the application is paused.
	Pause
	// Resume is sent when the application resumes.
	Resume
	// Destroy is the last command. No command follows it.
	Destroy
)

// Commands lists every Command in declaration order.
var Commands = []Command{
	WindowAvailable,
	WindowUnavailable,
	FocusGained,
	FocusLost,
	Pause,
	Resume,
	Destroy,
}

func (c Command) String() string {
	switch c {
	case WindowAvailable:
		return "WindowAvailable"
	case WindowUnavailable:
		return "WindowUnavailable"
	case FocusGained:
		return "FocusGained"
	case FocusLost:
		return "FocusLost"
	case Pause:
		return "Pause"
	case Resume:
		return "Resume"
	case Destroy:
		return "Destroy"
	default:
		panic("unexpected Command value")
	}
}

func (CommandEvent) ImplementsEvent() {}
