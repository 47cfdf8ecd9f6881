// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"github.com/pkg/errors"

	"ndkarte.org/io/event"
	"ndkarte.org/io/system"
)

// fakeProvider records provider calls and fails the step named
// by failAt.
type fakeProvider struct {
	failAt  string
	swapErr error
	size    image.Point

	calls    []string
	viewport image.Rectangle
	next     uintptr
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{size: image.Pt(1920, 1200)}
}

func (p *fakeProvider) step(name string) (uintptr, error) {
	p.calls = append(p.calls, name)
	if p.failAt == name {
		return 0, errors.Errorf("%s failed", name)
	}
	p.next++
	return p.next, nil
}

func (p *fakeProvider) count(name string) int {
	n := 0
	for _, c := range p.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (p *fakeProvider) reset() {
	p.calls = nil
}

func (p *fakeProvider) Connect() (Display, error) {
	h, err := p.step("Connect")
	return Display(h), err
}

func (p *fakeProvider) Initialize(d Display) error {
	_, err := p.step("Initialize")
	return err
}

func (p *fakeProvider) ChooseConfig(d Display, spec ConfigSpec) (FBConfig, error) {
	h, err := p.step("ChooseConfig")
	return FBConfig(h), err
}

func (p *fakeProvider) CreateWindowSurface(d Display, cfg FBConfig, win WindowHandle) (SurfaceHandle, error) {
	h, err := p.step("CreateWindowSurface")
	return SurfaceHandle(h), err
}

func (p *fakeProvider) CreateContext(d Display, cfg FBConfig, spec ConfigSpec) (ContextHandle, error) {
	h, err := p.step("CreateContext")
	return ContextHandle(h), err
}

func (p *fakeProvider) MakeCurrent(d Display, s SurfaceHandle, c ContextHandle) error {
	_, err := p.step("MakeCurrent")
	return err
}

func (p *fakeProvider) QuerySize(d Display, s SurfaceHandle) (image.Point, error) {
	_, err := p.step("QuerySize")
	return p.size, err
}

func (p *fakeProvider) Viewport(r image.Rectangle) {
	p.calls = append(p.calls, "Viewport")
	p.viewport = r
}

func (p *fakeProvider) SwapBuffers(d Display, s SurfaceHandle) error {
	p.calls = append(p.calls, "SwapBuffers")
	return p.swapErr
}

func (p *fakeProvider) ReleaseCurrent(d Display) {
	p.calls = append(p.calls, "ReleaseCurrent")
}

func (p *fakeProvider) DestroyContext(d Display, c ContextHandle) {
	p.calls = append(p.calls, "DestroyContext")
}

func (p *fakeProvider) DestroySurface(d Display, s SurfaceHandle) {
	p.calls = append(p.calls, "DestroySurface")
}

func (p *fakeProvider) Terminate(d Display) {
	p.calls = append(p.calls, "Terminate")
}

// tick separates the events of two loop iterations in a
// scriptPump. A non-blocking poll stops at a tick; a blocking
// poll skips it.
type tick struct{}

func (tick) ImplementsEvent() {}

// wake makes any poll of a scriptPump return empty, like a host
// looper woken without an event.
type wake struct{}

func (wake) ImplementsEvent() {}

type finished struct {
	e       event.Event
	handled bool
}

// scriptPump replays a fixed event script.
type scriptPump struct {
	script  []event.Event
	blocks  []bool
	done    []finished
	destroy bool
	win     WindowHandle
	onPoll  func(block bool)
}

func (p *scriptPump) Poll(block bool) (event.Event, bool) {
	p.blocks = append(p.blocks, block)
	if p.onPoll != nil {
		p.onPoll(block)
	}
	for len(p.script) > 0 {
		e := p.script[0]
		p.script = p.script[1:]
		if _, ok := e.(wake); ok {
			return nil, false
		}
		if _, ok := e.(tick); ok {
			if block {
				continue
			}
			return nil, false
		}
		return e, true
	}
	return nil, false
}

func (p *scriptPump) Finish(e event.Event, handled bool) {
	p.done = append(p.done, finished{e, handled})
}

func (p *scriptPump) DestroyRequested() bool {
	return p.destroy
}

func (p *scriptPump) NativeWindow() WindowHandle {
	return p.win
}

func cmd(c system.Command) event.Event {
	return system.CommandEvent{Command: c}
}
