// SPDX-License-Identifier: Unlicense OR MIT

//go:build android

// Package egl binds the EGL and GL ES calls needed to run a
// window surface. Handles cross the package boundary as
// uintptr; zero means none.
package egl

/*
#cgo LDFLAGS: -lEGL -lGLESv3

#include <EGL/egl.h>
#include <GLES3/gl3.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pkg/errors"
)

const (
	_EGL_OPENGL_ES2_BIT = 0x4
	_EGL_OPENGL_ES3_BIT = 0x40
)

// Config describes the minimum framebuffer configuration.
type Config struct {
	Red, Green, Blue, Alpha int
	Depth                   int
	Window                  bool
	ClientVersion           int
}

func GetDisplay() (uintptr, error) {
	d := C.eglGetDisplay(nil)
	if d == nil {
		return 0, errors.Errorf("eglGetDisplay(EGL_DEFAULT_DISPLAY) failed: 0x%x", eglGetError())
	}
	return uintptr(unsafe.Pointer(d)), nil
}

func Initialize(disp uintptr) (major, minor int, err error) {
	var maj, min C.EGLint
	if C.eglInitialize(display(disp), &maj, &min) == C.EGL_FALSE {
		return 0, 0, errors.Errorf("eglInitialize failed: 0x%x", eglGetError())
	}
	return int(maj), int(min), nil
}

func ChooseConfig(disp uintptr, cfg Config) (uintptr, error) {
	renderable := _EGL_OPENGL_ES2_BIT
	if cfg.ClientVersion >= 3 {
		renderable = _EGL_OPENGL_ES3_BIT
	}
	attribs := []C.EGLint{
		C.EGL_RENDERABLE_TYPE, C.EGLint(renderable),
		C.EGL_BLUE_SIZE, C.EGLint(cfg.Blue),
		C.EGL_GREEN_SIZE, C.EGLint(cfg.Green),
		C.EGL_RED_SIZE, C.EGLint(cfg.Red),
		C.EGL_ALPHA_SIZE, C.EGLint(cfg.Alpha),
		C.EGL_DEPTH_SIZE, C.EGLint(cfg.Depth),
	}
	if cfg.Window {
		attribs = append(attribs, C.EGL_SURFACE_TYPE, C.EGL_WINDOW_BIT)
	}
	attribs = append(attribs, C.EGL_NONE)
	var (
		conf C.EGLConfig
		n    C.EGLint
	)
	if C.eglChooseConfig(display(disp), &attribs[0], &conf, 1, &n) == C.EGL_FALSE {
		return 0, errors.Errorf("eglChooseConfig failed: 0x%x", eglGetError())
	}
	if n == 0 {
		return 0, errors.New("eglChooseConfig returned 0 configs")
	}
	return uintptr(unsafe.Pointer(conf)), nil
}

func CreateWindowSurface(disp, conf, win uintptr) (uintptr, error) {
	attribs := []C.EGLint{C.EGL_NONE}
	s := C.eglCreateWindowSurface(display(disp), C.EGLConfig(unsafe.Pointer(conf)), C.EGLNativeWindowType(unsafe.Pointer(win)), &attribs[0])
	if s == nil {
		return 0, errors.Errorf("eglCreateWindowSurface failed: 0x%x", eglGetError())
	}
	return uintptr(unsafe.Pointer(s)), nil
}

func CreateContext(disp, conf uintptr, version int) (uintptr, error) {
	attribs := []C.EGLint{
		C.EGL_CONTEXT_CLIENT_VERSION, C.EGLint(version),
		C.EGL_NONE,
	}
	c := C.eglCreateContext(display(disp), C.EGLConfig(unsafe.Pointer(conf)), nil, &attribs[0])
	if c == nil {
		return 0, errors.Errorf("eglCreateContext failed: 0x%x", eglGetError())
	}
	return uintptr(unsafe.Pointer(c)), nil
}

func MakeCurrent(disp, surf, ctx uintptr) error {
	s := surface(surf)
	if C.eglMakeCurrent(display(disp), s, s, context(ctx)) == C.EGL_FALSE {
		return errors.Errorf("eglMakeCurrent failed: 0x%x", eglGetError())
	}
	return nil
}

func ReleaseCurrent(disp uintptr) {
	C.eglMakeCurrent(display(disp), nil, nil, nil)
}

func QuerySize(disp, surf uintptr) (width, height int, err error) {
	var w, h C.EGLint
	d, s := display(disp), surface(surf)
	if C.eglQuerySurface(d, s, C.EGL_WIDTH, &w) == C.EGL_FALSE ||
		C.eglQuerySurface(d, s, C.EGL_HEIGHT, &h) == C.EGL_FALSE {
		return 0, 0, errors.Errorf("eglQuerySurface failed: 0x%x", eglGetError())
	}
	return int(w), int(h), nil
}

func SwapBuffers(disp, surf uintptr) error {
	if C.eglSwapBuffers(display(disp), surface(surf)) == C.EGL_FALSE {
		return errors.Errorf("eglSwapBuffers failed: 0x%x", eglGetError())
	}
	return nil
}

func DestroyContext(disp, ctx uintptr) {
	C.eglDestroyContext(display(disp), context(ctx))
}

func DestroySurface(disp, surf uintptr) {
	C.eglDestroySurface(display(disp), surface(surf))
}

func Terminate(disp uintptr) {
	C.eglTerminate(display(disp))
	C.eglReleaseThread()
}

func Viewport(x, y, width, height int) {
	C.glViewport(C.GLint(x), C.GLint(y), C.GLsizei(width), C.GLsizei(height))
}

// Clear clears the color and depth buffers of the current
// surface to the given color.
func Clear(r, g, b, a float32) {
	C.glClearColor(C.GLfloat(r), C.GLfloat(g), C.GLfloat(b), C.GLfloat(a))
	C.glClear(C.GL_COLOR_BUFFER_BIT | C.GL_DEPTH_BUFFER_BIT)
}

// GLString returns GL_VENDOR, GL_RENDERER and GL_VERSION of the
// current context.
func GLString() (vendor, renderer, version string) {
	str := func(name C.GLenum) string {
		s := C.glGetString(name)
		if s == nil {
			return ""
		}
		return C.GoString((*C.char)(unsafe.Pointer(s)))
	}
	return str(C.GL_VENDOR), str(C.GL_RENDERER), str(C.GL_VERSION)
}

func eglGetError() C.EGLint {
	return C.eglGetError()
}

func display(h uintptr) C.EGLDisplay {
	return C.EGLDisplay(unsafe.Pointer(h))
}

func surface(h uintptr) C.EGLSurface {
	return C.EGLSurface(unsafe.Pointer(h))
}

func context(h uintptr) C.EGLContext {
	return C.EGLContext(unsafe.Pointer(h))
}
