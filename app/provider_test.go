// SPDX-License-Identifier: Unlicense OR MIT

//go:build !android

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoDefaultProvider(t *testing.T) {
	p, err := DefaultProvider()
	assert.Nil(t, p)
	assert.Error(t, err)
	assert.NotPanics(t, func() { ClearFrame(0.1, 0.15, 0.2, 1) })
}
