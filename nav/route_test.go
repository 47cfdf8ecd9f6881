// SPDX-License-Identifier: Unlicense OR MIT

package nav

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndkarte.org/gpx"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		angle float64
		want  Turn
	}{
		{5, Straight},
		{-10, Straight},
		{20, Straight},
		{30, SlightRight},
		{-30, SlightLeft},
		{90, Right},
		{-90, Left},
		{150, SharpRight},
		{-150, SharpLeft},
		{175, UTurn},
		{-175, UTurn},
	} {
		assert.Equal(t, tc.want, classify(tc.angle), "angle %v", tc.angle)
	}
}

func TestInstructions(t *testing.T) {
	ins := Instructions([]gpx.Point{pt(48, 16), pt(48.5, 16), pt(49, 16)})
	require.Len(t, ins, 3)
	assert.Equal(t, Start, ins[0].Turn)
	assert.Equal(t, "Start navigation", ins[0].Text)
	assert.Zero(t, ins[0].Distance)
	assert.Equal(t, Straight, ins[1].Turn)
	assert.Equal(t, "In 55.6 km, continue straight", ins[1].Text)
	assert.Equal(t, Arrive, ins[2].Turn)
	assert.Equal(t, 2, ins[2].Index)
	assert.Equal(t, "In 55.6 km, arrive at destination", ins[2].Text)
}

func TestInstructionsRightTurn(t *testing.T) {
	ins := Instructions([]gpx.Point{pt(48, 16), pt(48.5, 16), pt(48.5, 17)})
	require.Len(t, ins, 3)
	assert.Equal(t, Right, ins[1].Turn)
}

func TestInstructionsShortRoutes(t *testing.T) {
	assert.Empty(t, Instructions([]gpx.Point{pt(48, 16)}))
	assert.Empty(t, Instructions(nil))

	ins := Instructions([]gpx.Point{pt(48, 16), pt(49, 16)})
	require.Len(t, ins, 2)
	assert.Equal(t, Start, ins[0].Turn)
	assert.Equal(t, Arrive, ins[1].Turn)
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "150 m", FormatDistance(150))
	assert.Equal(t, "10 m", FormatDistance(5))
	assert.Equal(t, "0 m", FormatDistance(4))
	assert.Equal(t, "1000 m", FormatDistance(999.9))
	assert.Equal(t, "1.0 km", FormatDistance(1000))
	assert.Equal(t, "2.5 km", FormatDistance(2500))
}

func TestTurnJSON(t *testing.T) {
	b, err := json.Marshal(Instruction{Index: 1, Turn: SlightLeft, Text: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"waypoint_index":1,"distance_m":0,"turn":"slight_left","text":"x"}`, string(b))

	var in Instruction
	require.NoError(t, json.Unmarshal(b, &in))
	assert.Equal(t, SlightLeft, in.Turn)
	assert.Error(t, json.Unmarshal([]byte(`{"turn":"sideways"}`), &in))
	assert.Equal(t, "u_turn", UTurn.String())
}
