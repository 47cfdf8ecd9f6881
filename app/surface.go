// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Opaque handles owned by a Provider. The zero value of each
// handle means "none".
type (
	Display       uintptr
	FBConfig      uintptr
	SurfaceHandle uintptr
	ContextHandle uintptr
	// WindowHandle is the host's native window, valid between
	// the WindowAvailable and WindowUnavailable commands.
	WindowHandle uintptr
)

// ConfigSpec is the minimum framebuffer configuration a
// surface is created with.
type ConfigSpec struct {
	Red, Green, Blue, Alpha int
	Depth                   int
	// Window requires configurations that can render to
	// a native window.
	Window bool
	// ClientVersion is the major version of the GL ES context.
	ClientVersion int
}

// DefaultConfigSpec requests 8 bits per channel, a 24 bit depth
// buffer and a GL ES 3 context for window rendering.
var DefaultConfigSpec = ConfigSpec{
	Red: 8, Green: 8, Blue: 8, Alpha: 8,
	Depth:         24,
	Window:        true,
	ClientVersion: 3,
}

// Provider is the platform graphics-context implementation,
// such as EGL. The Surface calls it only from the goroutine
// running the event loop.
type Provider interface {
	Connect() (Display, error)
	Initialize(d Display) error
	ChooseConfig(d Display, spec ConfigSpec) (FBConfig, error)
	CreateWindowSurface(d Display, cfg FBConfig, win WindowHandle) (SurfaceHandle, error)
	CreateContext(d Display, cfg FBConfig, spec ConfigSpec) (ContextHandle, error)
	MakeCurrent(d Display, s SurfaceHandle, c ContextHandle) error
	QuerySize(d Display, s SurfaceHandle) (image.Point, error)
	Viewport(r image.Rectangle)
	SwapBuffers(d Display, s SurfaceHandle) error
	ReleaseCurrent(d Display)
	DestroyContext(d Display, c ContextHandle)
	DestroySurface(d Display, s SurfaceHandle)
	Terminate(d Display)
}

// SurfaceErrorKind identifies the Acquire step that failed.
// Kinds are errors themselves, so errors.Is(err, ErrNoMatchingConfig)
// matches a *SurfaceError of that kind.
type SurfaceErrorKind uint8

const (
	ErrConnectionFailed SurfaceErrorKind = iota + 1
	ErrInitFailed
	ErrNoMatchingConfig
	ErrSurfaceCreateFailed
	ErrContextCreateFailed
	ErrMakeCurrentFailed
	ErrQueryFailed
)

// SurfaceError is returned by Surface.Acquire.
type SurfaceError struct {
	Kind SurfaceErrorKind
	Err  error
}

// FrameStats counts presentation results.
type FrameStats struct {
	Presented int
	// Dropped counts frames whose buffer swap failed.
	Dropped int
}

// Surface owns the display connection, the window surface and
// the rendering context. The three are created together by
// Acquire and destroyed together by Release; a Surface is never
// partially valid.
type Surface struct {
	provider Provider
	spec     ConfigSpec
	draw     func()
	log      logrus.FieldLogger

	disp    Display
	surf    SurfaceHandle
	ctx     ContextHandle
	current bool
	size    image.Point

	initialized bool
	stats       FrameStats
}

// NewSurface returns a released Surface backed by p.
func NewSurface(p Provider, options ...Option) *Surface {
	cnf := newConfig(options)
	return newSurface(p, cnf)
}

func newSurface(p Provider, cnf *config) *Surface {
	return &Surface{
		provider: p,
		spec:     cnf.spec,
		draw:     cnf.draw,
		log:      cnf.logger("surface"),
	}
}

// Acquire creates a rendering context and a surface for win,
// makes them current and sets the viewport to the surface size,
// which it returns. On failure the Surface is left fully
// released and the error is a *SurfaceError.
func (s *Surface) Acquire(win WindowHandle) (image.Point, error) {
	if s.initialized {
		s.Release()
	}
	size, err := s.acquire(win)
	if err != nil {
		s.teardown()
		s.log.WithError(err).Error("surface acquire failed")
		return image.Point{}, err
	}
	s.size = size
	s.provider.Viewport(image.Rectangle{Max: size})
	s.initialized = true
	s.log.WithFields(logrus.Fields{
		"width":  size.X,
		"height": size.Y,
	}).Info("surface acquired")
	return size, nil
}

func (s *Surface) acquire(win WindowHandle) (image.Point, error) {
	if win == 0 {
		return image.Point{}, surfaceError(ErrSurfaceCreateFailed, errors.New("no native window"))
	}
	disp, err := s.provider.Connect()
	if err == nil && disp == 0 {
		err = errors.New("no display")
	}
	if err != nil {
		return image.Point{}, surfaceError(ErrConnectionFailed, err)
	}
	s.disp = disp
	if err := s.provider.Initialize(disp); err != nil {
		return image.Point{}, surfaceError(ErrInitFailed, err)
	}
	cfg, err := s.provider.ChooseConfig(disp, s.spec)
	if err == nil && cfg == 0 {
		err = errors.New("no configs")
	}
	if err != nil {
		return image.Point{}, surfaceError(ErrNoMatchingConfig, err)
	}
	surf, err := s.provider.CreateWindowSurface(disp, cfg, win)
	if err == nil && surf == 0 {
		err = errors.New("no surface")
	}
	if err != nil {
		return image.Point{}, surfaceError(ErrSurfaceCreateFailed, err)
	}
	s.surf = surf
	ctx, err := s.provider.CreateContext(disp, cfg, s.spec)
	if err == nil && ctx == 0 {
		err = errors.New("no context")
	}
	if err != nil {
		return image.Point{}, surfaceError(ErrContextCreateFailed, err)
	}
	s.ctx = ctx
	if err := s.provider.MakeCurrent(disp, surf, ctx); err != nil {
		return image.Point{}, surfaceError(ErrMakeCurrentFailed, err)
	}
	s.current = true
	size, err := s.provider.QuerySize(disp, surf)
	if err != nil {
		return image.Point{}, surfaceError(ErrQueryFailed, err)
	}
	return size, nil
}

// Release unbinds and destroys the context and surface and
// closes the display connection. Release on a released Surface
// does nothing.
func (s *Surface) Release() {
	if s.disp == 0 {
		return
	}
	s.teardown()
	s.log.Info("surface released")
}

// teardown undoes exactly the acquire steps that completed.
func (s *Surface) teardown() {
	if s.disp != 0 {
		if s.current {
			s.provider.ReleaseCurrent(s.disp)
			s.current = false
		}
		if s.ctx != 0 {
			s.provider.DestroyContext(s.disp, s.ctx)
			s.ctx = 0
		}
		if s.surf != 0 {
			s.provider.DestroySurface(s.disp, s.surf)
			s.surf = 0
		}
		s.provider.Terminate(s.disp)
		s.disp = 0
	}
	s.size = image.Point{}
	s.initialized = false
}

// Present draws a frame and swaps it to the window. Present
// does nothing on a released Surface. Swap failures are logged
// and counted, never returned.
func (s *Surface) Present() {
	if !s.initialized {
		return
	}
	if s.draw != nil {
		s.draw()
	}
	if err := s.provider.SwapBuffers(s.disp, s.surf); err != nil {
		s.stats.Dropped++
		s.log.WithError(err).Warn("frame dropped")
		return
	}
	s.stats.Presented++
}

// Valid reports whether the surface is acquired and current.
func (s *Surface) Valid() bool {
	return s.initialized
}

// Size returns the surface size queried by the last successful
// Acquire, or the zero Point when released.
func (s *Surface) Size() image.Point {
	return s.size
}

// Stats returns the presentation counters.
func (s *Surface) Stats() FrameStats {
	return s.stats
}

func surfaceError(kind SurfaceErrorKind, err error) *SurfaceError {
	return &SurfaceError{Kind: kind, Err: err}
}

func (e *SurfaceError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// Is matches e against its kind.
func (e *SurfaceError) Is(target error) bool {
	k, ok := target.(SurfaceErrorKind)
	return ok && k == e.Kind
}

func (k SurfaceErrorKind) Error() string {
	switch k {
	case ErrConnectionFailed:
		return "display connection failed"
	case ErrInitFailed:
		return "display initialization failed"
	case ErrNoMatchingConfig:
		return "no matching framebuffer configuration"
	case ErrSurfaceCreateFailed:
		return "window surface creation failed"
	case ErrContextCreateFailed:
		return "context creation failed"
	case ErrMakeCurrentFailed:
		return "make current failed"
	case ErrQueryFailed:
		return "surface size query failed"
	default:
		return "unknown surface error"
	}
}
