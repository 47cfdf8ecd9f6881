// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements an app.Provider that renders into
// offscreen images, for running the event loop without a native
// window system and for tests.
package headless

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"ndkarte.org/app"
)

// Window is an offscreen native window. Presented frames are
// copied to its front buffer.
type Window struct {
	size   image.Point
	front  *image.RGBA
	frames int
	closed bool
}

// Provider is a software app.Provider. Windows must be
// registered to obtain a handle before they can back a surface.
type Provider struct {
	next     uintptr
	windows  map[app.WindowHandle]*Window
	displays map[app.Display]bool
	surfaces map[app.SurfaceHandle]*surface
	contexts map[app.ContextHandle]bool

	current  *surface
	viewport image.Rectangle
}

type surface struct {
	win  *Window
	back *image.RGBA
}

// NewWindow returns a window of the given size.
func NewWindow(width, height int) *Window {
	if width <= 0 || height <= 0 {
		panic("window size must be positive")
	}
	size := image.Point{X: width, Y: height}
	return &Window{
		size:  size,
		front: image.NewRGBA(image.Rectangle{Max: size}),
	}
}

// NewProvider returns a Provider without windows.
func NewProvider() *Provider {
	return &Provider{
		windows:  make(map[app.WindowHandle]*Window),
		displays: make(map[app.Display]bool),
		surfaces: make(map[app.SurfaceHandle]*surface),
		contexts: make(map[app.ContextHandle]bool),
	}
}

var _ app.Provider = (*Provider)(nil)

func (p *Provider) handle() uintptr {
	p.next++
	return p.next
}

// Register makes w available as a native window.
func (p *Provider) Register(w *Window) app.WindowHandle {
	h := app.WindowHandle(p.handle())
	p.windows[h] = w
	return h
}

// Unregister removes the window behind h.
func (p *Provider) Unregister(h app.WindowHandle) {
	delete(p.windows, h)
}

// Live returns the number of displays, surfaces and contexts
// that have not been released.
func (p *Provider) Live() (displays, surfaces, contexts int) {
	return len(p.displays), len(p.surfaces), len(p.contexts)
}

// Target returns the back buffer of the current surface, or nil
// if no surface is current. Draw callbacks render into it.
func (p *Provider) Target() *image.RGBA {
	if p.current == nil {
		return nil
	}
	return p.current.back
}

// Clear fills the viewport of the current surface with c.
func (p *Provider) Clear(c color.Color) {
	if t := p.Target(); t != nil {
		xdraw.Draw(t, p.viewport, image.NewUniform(c), image.Point{}, xdraw.Src)
	}
}

func (p *Provider) Connect() (app.Display, error) {
	d := app.Display(p.handle())
	p.displays[d] = false
	return d, nil
}

func (p *Provider) Initialize(d app.Display) error {
	if _, ok := p.displays[d]; !ok {
		return errors.Errorf("headless: unknown display %d", d)
	}
	p.displays[d] = true
	return nil
}

// ChooseConfig supports up to 8 bits per channel and a 24 bit
// depth buffer.
func (p *Provider) ChooseConfig(d app.Display, spec app.ConfigSpec) (app.FBConfig, error) {
	if !p.displays[d] {
		return 0, errors.Errorf("headless: display %d not initialized", d)
	}
	for _, bits := range []int{spec.Red, spec.Green, spec.Blue, spec.Alpha} {
		if bits > 8 {
			return 0, errors.Errorf("headless: %d bit channels not supported", bits)
		}
	}
	if spec.Depth > 24 {
		return 0, errors.Errorf("headless: %d bit depth not supported", spec.Depth)
	}
	return app.FBConfig(p.handle()), nil
}

func (p *Provider) CreateWindowSurface(d app.Display, cfg app.FBConfig, h app.WindowHandle) (app.SurfaceHandle, error) {
	w, ok := p.windows[h]
	if !ok || w.closed {
		return 0, errors.Errorf("headless: no window for handle %d", h)
	}
	s := app.SurfaceHandle(p.handle())
	p.surfaces[s] = &surface{
		win:  w,
		back: image.NewRGBA(image.Rectangle{Max: w.size}),
	}
	return s, nil
}

func (p *Provider) CreateContext(d app.Display, cfg app.FBConfig, spec app.ConfigSpec) (app.ContextHandle, error) {
	if spec.ClientVersion > 3 {
		return 0, errors.Errorf("headless: client version %d not supported", spec.ClientVersion)
	}
	c := app.ContextHandle(p.handle())
	p.contexts[c] = true
	return c, nil
}

func (p *Provider) MakeCurrent(d app.Display, s app.SurfaceHandle, c app.ContextHandle) error {
	surf, ok := p.surfaces[s]
	if !ok {
		return errors.Errorf("headless: unknown surface %d", s)
	}
	if !p.contexts[c] {
		return errors.Errorf("headless: unknown context %d", c)
	}
	p.current = surf
	return nil
}

func (p *Provider) QuerySize(d app.Display, s app.SurfaceHandle) (image.Point, error) {
	surf, ok := p.surfaces[s]
	if !ok {
		return image.Point{}, errors.Errorf("headless: unknown surface %d", s)
	}
	return surf.win.size, nil
}

func (p *Provider) Viewport(r image.Rectangle) {
	p.viewport = r
}

// SwapBuffers copies the back buffer to the window. It fails
// once the window is closed.
func (p *Provider) SwapBuffers(d app.Display, s app.SurfaceHandle) error {
	surf, ok := p.surfaces[s]
	if !ok {
		return errors.Errorf("headless: unknown surface %d", s)
	}
	if surf.win.closed {
		return errors.New("headless: window closed")
	}
	xdraw.Copy(surf.win.front, image.Point{}, surf.back, surf.back.Bounds(), xdraw.Src, nil)
	surf.win.frames++
	return nil
}

func (p *Provider) ReleaseCurrent(d app.Display) {
	p.current = nil
}

func (p *Provider) DestroyContext(d app.Display, c app.ContextHandle) {
	delete(p.contexts, c)
}

func (p *Provider) DestroySurface(d app.Display, s app.SurfaceHandle) {
	if surf := p.surfaces[s]; surf != nil && surf == p.current {
		p.current = nil
	}
	delete(p.surfaces, s)
}

func (p *Provider) Terminate(d app.Display) {
	delete(p.displays, d)
}

// Size returns the window size.
func (w *Window) Size() image.Point {
	return w.size
}

// Frames returns the number of frames presented to w.
func (w *Window) Frames() int {
	return w.frames
}

// Close marks the window as gone. Presenting to it fails.
func (w *Window) Close() {
	w.closed = true
}

// Screenshot returns a copy of the last presented frame.
func (w *Window) Screenshot() *image.RGBA {
	img := image.NewRGBA(w.front.Bounds())
	copy(img.Pix, w.front.Pix)
	return img
}
