// SPDX-License-Identifier: Unlicense OR MIT

/*
Package raster draws anti-aliased polylines and dots into RGBA
images in software.
*/
package raster

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"ndkarte.org/f32"
)

// dotSides is the number of sides of the polygon approximating a
// dot.
const dotSides = 24

// Canvas draws into an image. Coordinates are relative to the
// image bounds.
type Canvas struct {
	dst *image.RGBA
	vr  *vector.Rasterizer
}

func New(dst *image.RGBA) *Canvas {
	sz := dst.Bounds().Size()
	vr := vector.NewRasterizer(sz.X, sz.Y)
	vr.DrawOp = xdraw.Over
	return &Canvas{dst: dst, vr: vr}
}

// Fill replaces every pixel with col.
func (c *Canvas) Fill(col color.Color) {
	xdraw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
}

// Stroke draws the path through pts with the given width. Each
// segment is a quad oriented along its direction, so that
// overlapping segments add up instead of cancelling.
func (c *Canvas) Stroke(pts []f32.Point, width float32, col color.Color) {
	c.reset()
	n := 0
	hw := width / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		l := d.Len()
		if l == 0 {
			continue
		}
		off := f32.Pt(-d.Y, d.X).Mul(hw / l)
		c.polygon(a.Add(off), b.Add(off), b.Sub(off), a.Sub(off))
		n++
	}
	if n > 0 {
		c.draw(col)
	}
}

// Dot draws a filled circle.
func (c *Canvas) Dot(center f32.Point, radius float32, col color.Color) {
	if radius <= 0 {
		return
	}
	c.reset()
	var vs [dotSides]f32.Point
	for i := range vs {
		a := 2 * math.Pi * float64(i) / dotSides
		vs[i] = center.Add(f32.Pt(float32(math.Cos(a)), float32(math.Sin(a))).Mul(radius))
	}
	c.polygon(vs[:]...)
	c.draw(col)
}

func (c *Canvas) polygon(vs ...f32.Point) {
	c.vr.MoveTo(vs[0].X, vs[0].Y)
	for _, v := range vs[1:] {
		c.vr.LineTo(v.X, v.Y)
	}
	c.vr.ClosePath()
}

func (c *Canvas) reset() {
	sz := c.dst.Bounds().Size()
	c.vr.Reset(sz.X, sz.Y)
	c.vr.DrawOp = xdraw.Over
}

func (c *Canvas) draw(col color.Color) {
	b := c.dst.Bounds()
	c.vr.Draw(c.dst, b, image.NewUniform(col), image.Point{})
}
