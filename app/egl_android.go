// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"github.com/sirupsen/logrus"

	"ndkarte.org/app/internal/egl"
	_ "ndkarte.org/app/internal/log"
)

// eglProvider renders to an ANativeWindow through EGL and
// GL ES.
type eglProvider struct {
	log logrus.FieldLogger
}

// DefaultProvider returns the EGL provider.
func DefaultProvider() (Provider, error) {
	return &eglProvider{log: logrus.WithField("component", "egl")}, nil
}

func (p *eglProvider) Connect() (Display, error) {
	d, err := egl.GetDisplay()
	return Display(d), err
}

func (p *eglProvider) Initialize(d Display) error {
	major, minor, err := egl.Initialize(uintptr(d))
	if err != nil {
		return err
	}
	p.log.WithField("version", [2]int{major, minor}).Debug("egl initialized")
	return nil
}

func (p *eglProvider) ChooseConfig(d Display, spec ConfigSpec) (FBConfig, error) {
	cfg, err := egl.ChooseConfig(uintptr(d), egl.Config{
		Red:           spec.Red,
		Green:         spec.Green,
		Blue:          spec.Blue,
		Alpha:         spec.Alpha,
		Depth:         spec.Depth,
		Window:        spec.Window,
		ClientVersion: spec.ClientVersion,
	})
	return FBConfig(cfg), err
}

func (p *eglProvider) CreateWindowSurface(d Display, cfg FBConfig, win WindowHandle) (SurfaceHandle, error) {
	s, err := egl.CreateWindowSurface(uintptr(d), uintptr(cfg), uintptr(win))
	return SurfaceHandle(s), err
}

func (p *eglProvider) CreateContext(d Display, cfg FBConfig, spec ConfigSpec) (ContextHandle, error) {
	c, err := egl.CreateContext(uintptr(d), uintptr(cfg), spec.ClientVersion)
	return ContextHandle(c), err
}

func (p *eglProvider) MakeCurrent(d Display, s SurfaceHandle, c ContextHandle) error {
	if err := egl.MakeCurrent(uintptr(d), uintptr(s), uintptr(c)); err != nil {
		return err
	}
	vendor, renderer, version := egl.GLString()
	p.log.WithFields(logrus.Fields{
		"vendor":   vendor,
		"renderer": renderer,
		"version":  version,
	}).Info("context current")
	return nil
}

func (p *eglProvider) QuerySize(d Display, s SurfaceHandle) (image.Point, error) {
	w, h, err := egl.QuerySize(uintptr(d), uintptr(s))
	return image.Point{X: w, Y: h}, err
}

func (p *eglProvider) Viewport(r image.Rectangle) {
	egl.Viewport(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

func (p *eglProvider) SwapBuffers(d Display, s SurfaceHandle) error {
	return egl.SwapBuffers(uintptr(d), uintptr(s))
}

func (p *eglProvider) ReleaseCurrent(d Display) {
	egl.ReleaseCurrent(uintptr(d))
}

func (p *eglProvider) DestroyContext(d Display, c ContextHandle) {
	egl.DestroyContext(uintptr(d), uintptr(c))
}

func (p *eglProvider) DestroySurface(d Display, s SurfaceHandle) {
	egl.DestroySurface(uintptr(d), uintptr(s))
}

func (p *eglProvider) Terminate(d Display) {
	egl.Terminate(uintptr(d))
}

// ClearFrame clears the current surface to the given color. It
// is meant for use in a Draw callback.
func ClearFrame(r, g, b, a float32) {
	egl.Clear(r, g, b, a)
}
