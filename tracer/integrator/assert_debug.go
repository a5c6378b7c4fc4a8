//go:build radiantdebug

package integrator

import (
	"fmt"
	"math"

	"github.com/achilleasa/radiant/spectrum"
	"github.com/achilleasa/radiant/types"
)

const unitLengthEpsilon = 1e-3

func assertThroughput(beta spectrum.Spectrum) {
	if beta.HasNaN() || !beta.IsNonNegative() {
		panic(fmt.Sprintf("integrator: invalid path throughput %v", beta))
	}
}

func assertUnitDirection(dir types.Vec3) {
	if l := dir.Len(); math.Abs(float64(l)-1) > unitLengthEpsilon {
		panic(fmt.Sprintf("integrator: bounce direction %v is not unit length (%f)", dir, l))
	}
}
