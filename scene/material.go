package scene

import (
	"github.com/achilleasa/radiant/spectrum"
	"github.com/achilleasa/radiant/types"
)

// MaterialKind tags the surface behaviour of a material.
type MaterialKind uint8

const (
	// A Lambertian reflector.
	Diffuse MaterialKind = iota

	// A light source. Emissive surfaces do not reflect light.
	Emissive
)

func (k MaterialKind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Emissive:
		return "emissive"
	}
	return "invalid"
}

// Defines a scene material.
type Material struct {
	Name string

	Kind MaterialKind

	// Reflectance for diffuse materials or radiance for emissive ones.
	Colour spectrum.Spectrum
}

// Returns true if this material is a light source.
func (m *Material) EmitsLight() bool {
	return m.Kind == Emissive
}

// Get emitted radiance. Non-emissive materials emit Black.
func (m *Material) EmittedColour() spectrum.Spectrum {
	if m.Kind != Emissive {
		return spectrum.Black
	}
	return m.Colour
}

// Get the intrinsic material colour.
func (m *Material) BaseColour() spectrum.Spectrum {
	return m.Colour
}

// Map a direction from the local shading frame (where +Z is the normal) to
// world space using the frame vectors of an interaction.
func (m *Material) ToWorld(normal, e1, e2, local types.Vec3) types.Vec3 {
	return e1.Mul(local[0]).Add(e2.Mul(local[1])).Add(normal.Mul(local[2]))
}
