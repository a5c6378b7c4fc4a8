package sampling

import (
	"fmt"
	"math"

	"github.com/achilleasa/radiant/types"
)

// HemisphereSampler selects the distribution used for drawing bounce directions
// in the local shading frame where +Z is the surface normal.
type HemisphereSampler uint8

const (
	// Uniform over the solid angle of the upper hemisphere; pdf = 1/2π.
	UniformHemisphere HemisphereSampler = iota

	// Proportional to the cosine of the angle with the normal; pdf = cosθ/π.
	CosineHemisphere
)

func (s HemisphereSampler) String() string {
	switch s {
	case UniformHemisphere:
		return "uniform"
	case CosineHemisphere:
		return "cosine"
	}
	return "invalid"
}

// Lookup a hemisphere sampler by its name.
func ParseHemisphereSampler(name string) (HemisphereSampler, error) {
	switch name {
	case "uniform":
		return UniformHemisphere, nil
	case "cosine":
		return CosineHemisphere, nil
	}
	return 0, fmt.Errorf("sampling: unknown hemisphere sampler %q", name)
}

// Draw a local direction and return it together with its pdf. Each call
// consumes two samples from rng.
func (s HemisphereSampler) Sample(rng RandGen) (types.Vec3, float32) {
	u1, u2 := rng.Float32(), rng.Float32()
	switch s {
	case CosineHemisphere:
		dir := SampleCosineHemisphere(u1, u2)
		return dir, CosineHemispherePdf(dir[2])
	default:
		return SampleUniformHemisphere(u1, u2), UniformHemispherePdf()
	}
}

// Map two uniform samples to a direction uniformly distributed over the
// upper hemisphere. The Z component equals u1.
func SampleUniformHemisphere(u1, u2 float32) types.Vec3 {
	z := u1
	r := float32(math.Sqrt(math.Max(0, float64(1-z*z))))
	phi := 2 * math.Pi * float64(u2)
	return types.Vec3{
		r * float32(math.Cos(phi)),
		r * float32(math.Sin(phi)),
		z,
	}
}

// Get the pdf of SampleUniformHemisphere over solid angle.
func UniformHemispherePdf() float32 {
	return 0.5 / math.Pi
}

// Map two uniform samples to a cosine-weighted direction over the upper
// hemisphere (Malley's method).
func SampleCosineHemisphere(u1, u2 float32) types.Vec3 {
	r := float32(math.Sqrt(float64(u1)))
	phi := 2 * math.Pi * float64(u2)
	return types.Vec3{
		r * float32(math.Cos(phi)),
		r * float32(math.Sin(phi)),
		float32(math.Sqrt(math.Max(0, float64(1-u1)))),
	}
}

// Get the pdf of SampleCosineHemisphere for a direction with the given cosine.
func CosineHemispherePdf(cosTheta float32) float32 {
	return cosTheta / math.Pi
}

// Map two uniform samples to barycentric coordinates uniformly distributed
// over a triangle. The returned weights apply to the first two vertices; the
// third weight is 1 - b0 - b1.
func SampleTriangle(u1, u2 float32) (b0, b1 float32) {
	su := float32(math.Sqrt(float64(u1)))
	return 1 - su, u2 * su
}
