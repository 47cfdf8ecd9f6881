// SPDX-License-Identifier: Unlicense OR MIT

// Package mapview renders GPX data as a simple map and tracks the
// user's last touch.
package mapview

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/colornames"

	"ndkarte.org/f32"
	"ndkarte.org/gpx"
	"ndkarte.org/io/pointer"
	"ndkarte.org/nav"
	"ndkarte.org/raster"
)

// Margin is the space in pixels kept free around the data.
const Margin = 16

var (
	// Background is the clear color (0.1, 0.15, 0.2).
	Background = color.RGBA{R: 26, G: 38, B: 51, A: 255}

	trackColor    = colornames.Orangered
	routeColor    = colornames.Deepskyblue
	waypointColor = colornames.Gold
	touchColor    = colornames.White
	nearestColor  = colornames.Limegreen
)

const (
	lineWidth      = 3
	waypointRadius = 5
	touchRadius    = 8
)

// View draws a gpx.Data scaled to fit the target image.
type View struct {
	data   *gpx.Data
	bounds gpx.Bounds
	hasGeo bool

	// size of the last frame, used to map touches back to
	// coordinates.
	size image.Point

	touch   f32.Point
	touched bool
	nearest nav.Projection
	near    bool
}

// New returns a View of d. A nil d draws only the background.
func New(d *gpx.Data) *View {
	if d == nil {
		d = &gpx.Data{}
	}
	b, ok := d.Bounds()
	return &View{data: d, bounds: b, hasGeo: ok}
}

// HandlePointer records the position of e. Presses and moves
// inside the map area also snap the touch to the nearest track
// point.
func (v *View) HandlePointer(e pointer.Event) {
	v.touch = e.Position
	v.touched = true
	if e.Kind == pointer.Release {
		return
	}
	v.near = false
	if !v.hasGeo || !e.Position.In(content(v.size)) {
		return
	}
	pos := v.Unproject(e.Position, v.size)
	for _, t := range v.data.Tracks {
		p, ok := nav.ProjectOnTrack(pos, t.Points)
		if ok && (!v.near || p.Distance < v.nearest.Distance) {
			v.nearest, v.near = p, true
		}
	}
}

// Touch returns the last pointer position.
func (v *View) Touch() (f32.Point, bool) {
	return v.touch, v.touched
}

// Nearest returns the track point nearest to the last press or
// move.
func (v *View) Nearest() (nav.Projection, bool) {
	return v.nearest, v.near
}

// Draw renders the view into dst.
func (v *View) Draw(dst *image.RGBA) {
	size := dst.Bounds().Size()
	v.size = size
	c := raster.New(dst)
	c.Fill(Background)
	if v.hasGeo {
		for _, t := range v.data.Tracks {
			c.Stroke(v.path(t.Points, size), lineWidth, trackColor)
		}
		for _, r := range v.data.Routes {
			c.Stroke(v.path(r.Points, size), lineWidth, routeColor)
		}
		for _, w := range v.data.Waypoints {
			c.Dot(v.Project(w.Point, size), waypointRadius, waypointColor)
		}
		if v.near {
			c.Dot(v.Project(v.nearest.Point, size), waypointRadius, nearestColor)
		}
	}
	if v.touched {
		c.Dot(v.touch, touchRadius, touchColor)
	}
}

func (v *View) path(pts []gpx.Point, size image.Point) []f32.Point {
	out := make([]f32.Point, len(pts))
	for i, p := range pts {
		out[i] = v.Project(p, size)
	}
	return out
}

// Project maps p to pixel coordinates in an image of the given
// size. Longitudes are scaled by the cosine of the center
// latitude.
func (v *View) Project(p gpx.Point, size image.Point) f32.Point {
	scale, cx, cy, cos := v.transform(size)
	x := float64(size.X)/2 + (p.Lon-cx)*cos*scale
	y := float64(size.Y)/2 - (p.Lat-cy)*scale
	return f32.Pt(float32(x), float32(y))
}

// Unproject is the inverse of Project.
func (v *View) Unproject(pt f32.Point, size image.Point) gpx.Point {
	scale, cx, cy, cos := v.transform(size)
	if scale == 0 {
		return gpx.Point{Lat: cy, Lon: cx}
	}
	lon := cx + (float64(pt.X)-float64(size.X)/2)/(cos*scale)
	lat := cy - (float64(pt.Y)-float64(size.Y)/2)/scale
	return gpx.Point{Lat: lat, Lon: lon}
}

// transform returns the pixels per degree of latitude, the center
// and the longitude scale.
func (v *View) transform(size image.Point) (scale, cx, cy, cos float64) {
	b := v.bounds
	cx = (b.MinLon + b.MaxLon) / 2
	cy = (b.MinLat + b.MaxLat) / 2
	cos = math.Cos(cy * math.Pi / 180)
	w := (b.MaxLon - b.MinLon) * cos
	h := b.MaxLat - b.MinLat
	r := content(size)
	if r.Empty() {
		return 0, cx, cy, cos
	}
	aw, ah := float64(r.Dx()), float64(r.Dy())
	switch {
	case w == 0 && h == 0:
		// A single point; any scale centers it.
		scale = 1
	case w == 0:
		scale = ah / h
	case h == 0:
		scale = aw / w
	default:
		scale = math.Min(aw/w, ah/h)
	}
	return scale, cx, cy, cos
}

// content returns the area of an image of the given size that
// the data is fitted into.
func content(size image.Point) f32.Rectangle {
	return f32.Rect(0, 0, float32(size.X), float32(size.Y)).Inset(Margin)
}
