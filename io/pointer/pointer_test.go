// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"testing"

	"ndkarte.org/f32"
)

func TestKindString(t *testing.T) {
	for _, tc := range []struct {
		typ Kind
		res string
	}{
		{Press, "Press"},
		{Move, "Move"},
		{Release, "Release"},
		{Press | Release, "Press|Release"},
		{Press | Move | Release, "Press|Move|Release"},
	} {
		t.Run(tc.res, func(t *testing.T) {
			if want, got := tc.res, tc.typ.String(); want != got {
				t.Errorf("got %q; want %q", got, want)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	e := Event{Kind: Press, Position: f32.Pt(12.5, 3)}
	if want, got := "Press(12.5, 3.0)", e.String(); want != got {
		t.Errorf("got %q; want %q", got, want)
	}
}
