// SPDX-License-Identifier: Unlicense OR MIT

// Command ndkarte renders GPX files through the surface event loop
// without a native window, and prints navigation data.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"ndkarte.org/app"
	"ndkarte.org/app/headless"
	"ndkarte.org/f32"
	"ndkarte.org/gpx"
	"ndkarte.org/io/event"
	"ndkarte.org/io/input"
	"ndkarte.org/io/system"
	"ndkarte.org/mapview"
	"ndkarte.org/nav"
)

var (
	gpxPath   = flag.String("gpx", "", "GPX file to load.")
	size      = flag.String("size", "800x600", "window size as WxH.")
	frames    = flag.Int("frames", 3, "number of frames to render before shutting down.")
	destPath  = flag.String("o", "", "write the last frame as PNG to this file.")
	printJSON = flag.Bool("json", false, "print the parsed data and route instructions as JSON instead of rendering.")
	tolerance = flag.Float64("tolerance", 0, "if positive, simplify every track into a route with this tolerance in metres.")
	tap       = flag.String("tap", "", "simulate a tap at X,Y after the first frame.")
	logLevel  = flag.String("v", "info", "log level (debug, info, warn, error).")
)

const mainUsage = `ndkarte renders GPX data headlessly.

Usage:

	ndkarte [flags]

Flags:
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "ndkarte: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	lvl, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		return errors.Wrap(err, "invalid -v")
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)

	w, h, err := parseSize(*size)
	if err != nil {
		return err
	}
	data, err := load(*gpxPath)
	if err != nil {
		return err
	}
	if *tolerance > 0 {
		for _, t := range data.Tracks {
			data.Routes = append(data.Routes, nav.TrackToRoute(t, *tolerance))
		}
	}
	if *printJSON {
		return writeJSON(os.Stdout, data)
	}
	job := renderJob{
		data:   data,
		width:  w,
		height: h,
		frames: *frames,
		log:    log,
	}
	if *tap != "" {
		x, y, err := parsePair(*tap, ",")
		if err != nil {
			return errors.Wrap(err, "invalid -tap")
		}
		job.taps = append(job.taps, f32.Pt(float32(x), float32(y)))
	}
	win, err := job.run()
	if err != nil {
		return err
	}
	if *destPath == "" {
		return nil
	}
	f, err := os.Create(*destPath)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := png.Encode(f, win.Screenshot()); err != nil {
		f.Close()
		return errors.Wrap(err, "encode png")
	}
	return errors.WithStack(f.Close())
}

func load(path string) (*gpx.Data, error) {
	if path == "" {
		return &gpx.Data{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return gpx.Parse(f)
}

type routeReport struct {
	Name         string            `json:"name,omitempty"`
	Length       float64           `json:"length_m"`
	Instructions []nav.Instruction `json:"instructions"`
}

type report struct {
	Data   *gpx.Data     `json:"data"`
	Routes []routeReport `json:"routes"`
}

func writeJSON(out io.Writer, data *gpx.Data) error {
	r := report{Data: data, Routes: []routeReport{}}
	for _, rt := range data.Routes {
		ins := nav.Instructions(rt.Points)
		if ins == nil {
			ins = []nav.Instruction{}
		}
		r.Routes = append(r.Routes, routeReport{
			Name:         rt.Name,
			Length:       nav.TrackLength(rt.Points),
			Instructions: ins,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(r), "encode json")
}

// renderJob drives the event loop like a native host would: a
// host goroutine posts lifecycle commands while the loop renders.
type renderJob struct {
	data          *gpx.Data
	width, height int
	frames        int
	taps          []f32.Point
	log           logrus.FieldLogger
}

func (j renderJob) run() (*headless.Window, error) {
	if j.frames < 1 {
		return nil, errors.Errorf("frame count must be positive, got %d", j.frames)
	}
	p := headless.NewProvider()
	win := headless.NewWindow(j.width, j.height)
	lp, err := app.NewLooper()
	if err != nil {
		return nil, err
	}
	defer lp.Close()
	lp.SetWindow(p.Register(win))

	var taps []event.Event
	for _, pt := range j.taps {
		for _, a := range []int32{input.ActionDown, input.ActionUp} {
			taps = append(taps, input.Raw{Source: input.SourceMotion, Action: a, Pointers: []f32.Point{pt}})
		}
	}
	view := mapview.New(j.data)
	rendered := 0
	l := app.NewLoop(lp, p,
		app.Logger(j.log),
		app.OnPointer(view.HandlePointer),
		app.Draw(func() {
			view.Draw(p.Target())
			rendered++
			if rendered == 1 {
				// Taps snap to the map once a frame has laid it out.
				for _, e := range taps {
					if err := lp.Post(e); err != nil {
						j.log.WithError(err).Warn("tap dropped")
					}
				}
			}
			if rendered == j.frames {
				// Leave the way a backgrounded activity does.
				_ = lp.Command(system.FocusLost)
				_ = lp.Command(system.Destroy)
			}
		}),
	)

	var g errgroup.Group
	g.Go(l.Run)
	g.Go(func() error {
		for _, cmd := range []system.Command{system.WindowAvailable, system.FocusGained} {
			if err := lp.Command(cmd); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	j.log.WithFields(logrus.Fields{
		"frames": win.Frames(),
		"size":   win.Size(),
	}).Info("rendering finished")
	return win, nil
}

func parseSize(s string) (int, int, error) {
	w, h, err := parsePair(s, "x")
	if err != nil {
		return 0, 0, errors.Wrap(err, "invalid -size")
	}
	if w <= 0 || h <= 0 {
		return 0, 0, errors.Errorf("invalid -size %s: dimensions must be positive", s)
	}
	return w, h, nil
}

func parsePair(s, sep string) (int, int, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, errors.Errorf("%q: expected two values separated by %q", s, sep)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	return x, y, nil
}
