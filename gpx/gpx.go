// SPDX-License-Identifier: Unlicense OR MIT

// Package gpx reads GPX 1.1 files into tracks, routes and
// waypoints.
package gpx

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Point is a WGS84 coordinate in degrees with an optional
// elevation in metres.
type Point struct {
	Lat  float64    `json:"lat"`
	Lon  float64    `json:"lon"`
	Ele  *float64   `json:"ele,omitempty"`
	Time *time.Time `json:"time,omitempty"`
}

// Track is a recorded path. The points of every segment are
// joined into one list.
type Track struct {
	Name   string  `json:"name,omitempty"`
	Points []Point `json:"points"`
}

// Route is a planned path.
type Route struct {
	Name   string  `json:"name,omitempty"`
	Points []Point `json:"points"`
}

// Waypoint is a named point of interest. Icon is the GPX <sym>
// symbol name.
type Waypoint struct {
	Name  string `json:"name,omitempty"`
	Point Point  `json:"point"`
	Icon  string `json:"icon,omitempty"`
}

// Data is the content of a GPX file.
type Data struct {
	Tracks    []Track    `json:"tracks"`
	Routes    []Route    `json:"routes"`
	Waypoints []Waypoint `json:"waypoints"`
}

// Bounds is a latitude/longitude box.
type Bounds struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

type xmlGPX struct {
	XMLName   xml.Name `xml:"gpx"`
	Waypoints []xmlWpt `xml:"wpt"`
	Routes    []xmlRte `xml:"rte"`
	Tracks    []xmlTrk `xml:"trk"`
}

type xmlWpt struct {
	Lat  string     `xml:"lat,attr"`
	Lon  string     `xml:"lon,attr"`
	Ele  *float64   `xml:"ele"`
	Time *time.Time `xml:"time"`
	Name string     `xml:"name"`
	Sym  string     `xml:"sym"`
}

type xmlRte struct {
	Name   string   `xml:"name"`
	Points []xmlWpt `xml:"rtept"`
}

type xmlTrk struct {
	Name     string      `xml:"name"`
	Segments []xmlTrkseg `xml:"trkseg"`
}

type xmlTrkseg struct {
	Points []xmlWpt `xml:"trkpt"`
}

// Parse decodes a GPX document.
func Parse(r io.Reader) (*Data, error) {
	var doc xmlGPX
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "gpx: parse")
	}
	d := &Data{
		Tracks:    make([]Track, 0, len(doc.Tracks)),
		Routes:    make([]Route, 0, len(doc.Routes)),
		Waypoints: make([]Waypoint, 0, len(doc.Waypoints)),
	}
	for i, t := range doc.Tracks {
		tr := Track{Name: t.Name, Points: []Point{}}
		for _, seg := range t.Segments {
			pts, err := points(seg.Points)
			if err != nil {
				return nil, errors.Wrapf(err, "gpx: track %d", i)
			}
			tr.Points = append(tr.Points, pts...)
		}
		d.Tracks = append(d.Tracks, tr)
	}
	for i, r := range doc.Routes {
		pts, err := points(r.Points)
		if err != nil {
			return nil, errors.Wrapf(err, "gpx: route %d", i)
		}
		d.Routes = append(d.Routes, Route{Name: r.Name, Points: pts})
	}
	for i, w := range doc.Waypoints {
		p, err := w.point()
		if err != nil {
			return nil, errors.Wrapf(err, "gpx: waypoint %d", i)
		}
		d.Waypoints = append(d.Waypoints, Waypoint{Name: w.Name, Point: p, Icon: w.Sym})
	}
	return d, nil
}

// ParseBytes decodes a GPX document held in memory.
func ParseBytes(data []byte) (*Data, error) {
	return Parse(bytes.NewReader(data))
}

// JSON encodes d for consumers outside Go.
func (d *Data) JSON() ([]byte, error) {
	b, err := json.Marshal(d)
	return b, errors.Wrap(err, "gpx: encode json")
}

// Bounds returns the box containing every point in d. It
// reports false if d has no points.
func (d *Data) Bounds() (Bounds, bool) {
	var b Bounds
	first := true
	add := func(p Point) {
		if first {
			b = Bounds{MinLat: p.Lat, MinLon: p.Lon, MaxLat: p.Lat, MaxLon: p.Lon}
			first = false
			return
		}
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lon < b.MinLon {
			b.MinLon = p.Lon
		}
		if p.Lon > b.MaxLon {
			b.MaxLon = p.Lon
		}
	}
	for _, t := range d.Tracks {
		for _, p := range t.Points {
			add(p)
		}
	}
	for _, r := range d.Routes {
		for _, p := range r.Points {
			add(p)
		}
	}
	for _, w := range d.Waypoints {
		add(w.Point)
	}
	return b, !first
}

func points(wpts []xmlWpt) ([]Point, error) {
	pts := make([]Point, 0, len(wpts))
	for i, w := range wpts {
		p, err := w.point()
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func (w xmlWpt) point() (Point, error) {
	lat, err := coord(w.Lat, "lat", 90)
	if err != nil {
		return Point{}, err
	}
	lon, err := coord(w.Lon, "lon", 180)
	if err != nil {
		return Point{}, err
	}
	return Point{Lat: lat, Lon: lon, Ele: w.Ele, Time: w.Time}, nil
}

func coord(s, name string, limit float64) (float64, error) {
	if s == "" {
		return 0, errors.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	if v < -limit || v > limit {
		return 0, errors.Errorf("%s %v out of range", name, v)
	}
	return v, nil
}
