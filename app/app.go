// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/sirupsen/logrus"

	"ndkarte.org/io/pointer"
)

// ID is the application id reported in log output. Set it with
// the linker flag -X:
//
//	go build -ldflags="-X 'ndkarte.org/app.ID=org.ndkarte.app'" .
var ID = "ndkarte"

// Option configures the event loop and its components.
type Option func(cnf *config)

type config struct {
	log       logrus.FieldLogger
	draw      func()
	onPointer func(pointer.Event)
	spec      ConfigSpec
	window    WindowSource
}

func newConfig(options []Option) *config {
	cnf := &config{
		spec: DefaultConfigSpec,
	}
	for _, o := range options {
		o(cnf)
	}
	if cnf.log == nil {
		cnf.log = logrus.StandardLogger()
	}
	return cnf
}

func (c *config) logger(component string) logrus.FieldLogger {
	return c.log.WithFields(logrus.Fields{
		"app":       ID,
		"component": component,
	})
}

// Logger sets the logger for lifecycle diagnostics. The default
// is the logrus standard logger.
func Logger(l logrus.FieldLogger) Option {
	return func(cnf *config) {
		cnf.log = l
	}
}

// Draw sets the per-frame draw callback. It runs once per
// presented frame with the rendering context current, and must
// not block.
func Draw(f func()) Option {
	return func(cnf *config) {
		cnf.draw = f
	}
}

// OnPointer sets the consumer of classified pointer events.
func OnPointer(f func(pointer.Event)) Option {
	return func(cnf *config) {
		cnf.onPointer = f
	}
}

// Attribs sets the framebuffer configuration requested on
// Acquire. The default is DefaultConfigSpec.
func Attribs(spec ConfigSpec) Option {
	if spec.Red < 0 || spec.Green < 0 || spec.Blue < 0 || spec.Alpha < 0 || spec.Depth < 0 {
		panic("channel sizes must be larger than or equal to 0")
	}
	return func(cnf *config) {
		cnf.spec = spec
	}
}

// WindowFrom sets the source of the native window handle. By
// default the pump is used if it implements WindowSource.
func WindowFrom(src WindowSource) Option {
	return func(cnf *config) {
		cnf.window = src
	}
}
