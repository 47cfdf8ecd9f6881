// SPDX-License-Identifier: Unlicense OR MIT

// Package nav computes distances, track projections, route
// simplification and turn-by-turn instructions on WGS84
// coordinates.
package nav

import (
	"math"

	"ndkarte.org/gpx"
)

// EarthRadius is the WGS84 mean radius in metres.
const EarthRadius = 6371008.8

// Projection is the result of projecting a position onto a track.
type Projection struct {
	// Point is the nearest point on the track.
	Point gpx.Point `json:"point"`
	// Segment is the index of the start point of the nearest
	// segment.
	Segment int `json:"segment_index"`
	// Distance from the position to Point in metres.
	Distance float64 `json:"distance_m"`
	// Along is the distance from the track start to Point in
	// metres.
	Along float64 `json:"distance_along_m"`
}

// Haversine returns the great circle distance between a and b in
// metres.
func Haversine(a, b gpx.Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dlat := radians(b.Lat - a.Lat)
	dlon := radians(b.Lon - a.Lon)
	sdlat, sdlon := math.Sin(dlat/2), math.Sin(dlon/2)
	h := sdlat*sdlat + math.Cos(lat1)*math.Cos(lat2)*sdlon*sdlon
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// TrackLength returns the length of the path through pts in
// metres.
func TrackLength(pts []gpx.Point) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += Haversine(pts[i-1], pts[i])
	}
	return l
}

// ProjectOnTrack finds the point of track nearest to pos. It
// reports false if track has fewer than two points.
func ProjectOnTrack(pos gpx.Point, track []gpx.Point) (Projection, bool) {
	if len(track) < 2 {
		return Projection{}, false
	}
	var (
		best  Projection
		found bool
		cum   float64
	)
	for i := 0; i < len(track)-1; i++ {
		a, b := track[i], track[i+1]
		p := projectOnSegment(pos, a, b)
		d := Haversine(pos, p)
		if !found || d < best.Distance {
			best = Projection{
				Point:    p,
				Segment:  i,
				Distance: d,
				Along:    cum + Haversine(a, p),
			}
			found = true
		}
		cum += Haversine(a, b)
	}
	return best, true
}

// projectOnSegment projects p onto the segment ab in a plane
// scaled by the cosine of the mean latitude. It is accurate for
// segments shorter than about 10 km.
func projectOnSegment(p, a, b gpx.Point) gpx.Point {
	cos := math.Cos(radians((a.Lat + b.Lat) / 2))
	dx := (b.Lon - a.Lon) * cos
	dy := b.Lat - a.Lat
	px := (p.Lon - a.Lon) * cos
	py := p.Lat - a.Lat
	l2 := dx*dx + dy*dy
	if l2 < 1e-20 {
		return gpx.Point{Lat: a.Lat, Lon: a.Lon, Ele: a.Ele}
	}
	t := clamp((px*dx+py*dy)/l2, 0, 1)
	r := gpx.Point{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lon: a.Lon + t*(b.Lon-a.Lon),
	}
	if a.Ele != nil && b.Ele != nil {
		e := *a.Ele + t*(*b.Ele-*a.Ele)
		r.Ele = &e
	}
	return r
}

// bearing returns the initial bearing from a to b in degrees,
// in [0, 360).
func bearing(a, b gpx.Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dlon := radians(b.Lon - a.Lon)
	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
