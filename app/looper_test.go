// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndkarte.org/io/event"
	"ndkarte.org/io/input"
	"ndkarte.org/io/system"
)

func TestLooperPump(t *testing.T) {
	l, err := NewLooper()
	require.NoError(t, err)
	defer l.Close()

	assert.Zero(t, l.NativeWindow())
	l.SetWindow(42)
	assert.Equal(t, WindowHandle(42), l.NativeWindow())

	require.NoError(t, l.Command(system.WindowAvailable))
	require.NoError(t, l.Post(input.Raw{Source: input.SourceKey}))
	assert.Equal(t, 2, l.Pending())

	e, ok := l.Poll(false)
	require.True(t, ok)
	assert.Equal(t, system.CommandEvent{Command: system.WindowAvailable}, e)
	e, ok = l.Poll(false)
	require.True(t, ok)
	assert.Equal(t, input.Raw{Source: input.SourceKey}, e)
	_, ok = l.Poll(false)
	assert.False(t, ok)
}

func TestLooperFinish(t *testing.T) {
	l, err := NewLooper()
	require.NoError(t, err)
	defer l.Close()

	// No fallback registered.
	l.Finish(input.Raw{}, false)

	var unhandled []event.Event
	l.OnUnhandled(func(e event.Event) { unhandled = append(unhandled, e) })
	l.Finish(input.Raw{Source: input.SourceMotion}, true)
	l.Finish(input.Raw{Source: input.SourceKey}, false)
	assert.Equal(t, []event.Event{input.Raw{Source: input.SourceKey}}, unhandled)
}

func TestLooperRequestDestroy(t *testing.T) {
	l, err := NewLooper()
	require.NoError(t, err)
	defer l.Close()

	assert.False(t, l.DestroyRequested())
	l.RequestDestroy()
	assert.True(t, l.DestroyRequested())
	_, ok := l.Poll(true)
	assert.False(t, ok, "blocking poll returns once destroy is requested")
}
