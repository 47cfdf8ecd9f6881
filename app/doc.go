// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app keeps a rendering surface in step with a window whose
lifecycle is driven by the host, and renders frames while the window
has focus.

# Components

A Surface owns the display connection, window surface and rendering
context obtained from a Provider. They are created together by Acquire
and destroyed together by Release.

A Controller maps the lifecycle commands of package system onto the
Surface and decides whether a frame may be rendered.

A Router classifies raw input from package input into the pointer
events of package pointer.

A Loop ties them together: it drains a Pump, dispatches each event, and
presents one frame per iteration while the window has focus. Without
focus it blocks in the Pump.

# Hosting

A host feeds a Looper from its native callbacks and runs the Loop on a
dedicated goroutine:

	lp, err := app.NewLooper()
	...
	l := app.NewLoop(lp, provider, app.Draw(drawMap))
	go func() {
		if err := l.Run(); err != nil {
			log.Fatal(err)
		}
	}()
	lp.SetWindow(nativeWindow)
	lp.Command(system.WindowAvailable)

Run returns after the Destroy command or Looper.RequestDestroy. The
surface is always released first.

# Providers

On Android, DefaultProvider returns an EGL provider rendering with
GL ES 3, and draw callbacks may use ClearFrame to clear the frame
to the background color. Package headless provides a software
Provider for other platforms and for tests.
*/
package app
