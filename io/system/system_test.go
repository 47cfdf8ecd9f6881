// SPDX-License-Identifier: Unlicense OR MIT

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandString(t *testing.T) {
	want := []string{
		"WindowAvailable",
		"WindowUnavailable",
		"FocusGained",
		"FocusLost",
		"Pause",
		"Resume",
		"Destroy",
	}
	var got []string
	for _, c := range Commands {
		got = append(got, c.String())
	}
	assert.Equal(t, want, got)
}

func TestUnknownCommandPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = Command(len(Commands)).String()
	})
}
