//go:build !radiantdebug

package integrator

import (
	"github.com/achilleasa/radiant/spectrum"
	"github.com/achilleasa/radiant/types"
)

// Compiled out in release builds.
func assertThroughput(spectrum.Spectrum) {}

func assertUnitDirection(types.Vec3) {}
