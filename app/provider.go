// SPDX-License-Identifier: Unlicense OR MIT

//go:build !android

package app

import (
	"runtime"

	"github.com/pkg/errors"
)

// DefaultProvider returns the platform graphics provider. Only
// android has one; elsewhere use package headless.
func DefaultProvider() (Provider, error) {
	return nil, errors.Errorf("app: no native graphics provider on %s", runtime.GOOS)
}

// ClearFrame is a no-op without a native provider.
func ClearFrame(r, g, b, a float32) {}
