// SPDX-License-Identifier: Unlicense OR MIT

package nav

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"ndkarte.org/gpx"
)

// Turn is the direction taken at a route point.
type Turn uint8

const (
	Start Turn = iota
	Straight
	SlightLeft
	Left
	SharpLeft
	SlightRight
	Right
	SharpRight
	UTurn
	Arrive
)

var turnNames = [...]string{
	Start:       "start",
	Straight:    "straight",
	SlightLeft:  "slight_left",
	Left:        "left",
	SharpLeft:   "sharp_left",
	SlightRight: "slight_right",
	Right:       "right",
	SharpRight:  "sharp_right",
	UTurn:       "u_turn",
	Arrive:      "arrive",
}

var turnTexts = [...]string{
	Start:       "start navigation",
	Straight:    "continue straight",
	SlightLeft:  "keep slightly left",
	Left:        "turn left",
	SharpLeft:   "turn sharp left",
	SlightRight: "keep slightly right",
	Right:       "turn right",
	SharpRight:  "turn sharp right",
	UTurn:       "make a U-turn",
	Arrive:      "arrive at destination",
}

// Instruction describes what to do on reaching a route point.
type Instruction struct {
	// Index of the route point.
	Index int `json:"waypoint_index"`
	// Distance from the previous point in metres.
	Distance float64 `json:"distance_m"`
	Turn     Turn    `json:"turn"`
	Text     string  `json:"text"`
}

func (t Turn) String() string {
	if int(t) >= len(turnNames) {
		panic("invalid Turn")
	}
	return turnNames[t]
}

// Text returns the spoken form of t.
func (t Turn) Text() string {
	if int(t) >= len(turnTexts) {
		panic("invalid Turn")
	}
	return turnTexts[t]
}

func (t Turn) MarshalText() ([]byte, error) {
	if int(t) >= len(turnNames) {
		return nil, errors.Errorf("nav: invalid turn %d", uint8(t))
	}
	return []byte(turnNames[t]), nil
}

func (t *Turn) UnmarshalText(b []byte) error {
	for i, n := range turnNames {
		if n == string(b) {
			*t = Turn(i)
			return nil
		}
	}
	return errors.Errorf("nav: unknown turn %q", b)
}

// Instructions returns one instruction per point of a route with
// at least two points, and nil otherwise.
func Instructions(pts []gpx.Point) []Instruction {
	if len(pts) < 2 {
		return nil
	}
	ins := make([]Instruction, 0, len(pts))
	ins = append(ins, Instruction{Index: 0, Turn: Start, Text: "Start navigation"})
	for i := 1; i < len(pts)-1; i++ {
		d := Haversine(pts[i-1], pts[i])
		t := turnAt(pts[i-1], pts[i], pts[i+1])
		ins = append(ins, Instruction{
			Index:    i,
			Distance: d,
			Turn:     t,
			Text:     fmt.Sprintf("In %s, %s", FormatDistance(d), t.Text()),
		})
	}
	last := len(pts) - 1
	d := Haversine(pts[last-1], pts[last])
	ins = append(ins, Instruction{
		Index:    last,
		Distance: d,
		Turn:     Arrive,
		Text:     fmt.Sprintf("In %s, %s", FormatDistance(d), Arrive.Text()),
	})
	return ins
}

// FormatDistance renders metres as kilometres with one decimal
// from 1 km up, and as metres rounded to 10 below.
func FormatDistance(m float64) string {
	if m >= 1000 {
		return fmt.Sprintf("%.1f km", m/1000)
	}
	return fmt.Sprintf("%d m", int64(math.Round(m/10))*10)
}

// turnAt classifies the turn at b when arriving from a and
// leaving toward c.
func turnAt(a, b, c gpx.Point) Turn {
	angle := bearing(b, c) - bearing(a, b)
	for angle > 180 {
		angle -= 360
	}
	for angle < -180 {
		angle += 360
	}
	return classify(angle)
}

// classify maps a relative bearing to a Turn. Positive angles
// turn right.
func classify(angle float64) Turn {
	abs := math.Abs(angle)
	right := angle > 0
	switch {
	case abs > 170:
		return UTurn
	case abs > 120:
		if right {
			return SharpRight
		}
		return SharpLeft
	case abs > 60:
		if right {
			return Right
		}
		return Left
	case abs > 20:
		if right {
			return SlightRight
		}
		return SlightLeft
	default:
		return Straight
	}
}
