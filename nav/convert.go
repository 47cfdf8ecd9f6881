// SPDX-License-Identifier: Unlicense OR MIT

package nav

import (
	"math"

	"ndkarte.org/gpx"
)

// metresPerDegree is the length of one degree of latitude.
const metresPerDegree = 111320

// TrackToRoute simplifies a track into a route with the
// Ramer-Douglas-Peucker algorithm. Points closer than tolerance
// metres to the simplified line are dropped; the endpoints are
// always kept.
func TrackToRoute(t gpx.Track, tolerance float64) gpx.Route {
	return gpx.Route{Name: t.Name, Points: Simplify(t.Points, tolerance)}
}

// RouteToTrack copies the points of a route into a track.
func RouteToTrack(r gpx.Route) gpx.Track {
	return gpx.Track{Name: r.Name, Points: append([]gpx.Point{}, r.Points...)}
}

// Simplify returns the Ramer-Douglas-Peucker simplification of
// pts. The result never aliases pts.
func Simplify(pts []gpx.Point, tolerance float64) []gpx.Point {
	if len(pts) <= 2 {
		return append([]gpx.Point{}, pts...)
	}
	first, last := pts[0], pts[len(pts)-1]
	var (
		maxDist float64
		maxIdx  int
	)
	for i := 1; i < len(pts)-1; i++ {
		if d := perpendicular(pts[i], first, last); d > maxDist {
			maxDist, maxIdx = d, i
		}
	}
	if maxDist <= tolerance {
		return []gpx.Point{first, last}
	}
	left := Simplify(pts[:maxIdx+1], tolerance)
	right := Simplify(pts[maxIdx:], tolerance)
	// The split point ends left and starts right.
	return append(left[:len(left)-1], right...)
}

// perpendicular returns the distance in metres from p to the line
// through a and b, in a plane scaled by the mean latitude.
func perpendicular(p, a, b gpx.Point) float64 {
	mLat := float64(metresPerDegree)
	mLon := metresPerDegree * math.Cos(radians((a.Lat+b.Lat)/2))
	ax, ay := a.Lon*mLon, a.Lat*mLat
	bx, by := b.Lon*mLon, b.Lat*mLat
	px, py := p.Lon*mLon, p.Lat*mLat
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 < 1e-10 {
		return math.Hypot(px-ax, py-ay)
	}
	return math.Abs((px-ax)*dy-(py-ay)*dx) / math.Sqrt(l2)
}
