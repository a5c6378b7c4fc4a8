// Package light estimates direct illumination from the emissive triangles
// of a compiled scene.
package light

import (
	"math"
	"sort"

	"github.com/achilleasa/radiant/sampling"
	"github.com/achilleasa/radiant/scene"
	"github.com/achilleasa/radiant/spectrum"
)

const (
	// Shadow rays start this far above the surface along its normal.
	shadowRayEpsilon float32 = 1e-3

	// Light samples closer than this squared distance or seen at a grazing
	// angle are discarded.
	minDistSquared float32 = 1e-8
	minCosLight    float32 = 1e-6
)

// Sampler estimates the radiance arriving directly from scene emitters by
// picking emissive triangles with a probability proportional to their area.
// A Sampler is immutable once created and may be shared between goroutines.
type Sampler struct {
	sc *scene.Scene

	// Running sum of emitter areas.
	cdf       []float32
	totalArea float32
}

// Create a sampler for the emissive primitives of sc.
func NewSampler(sc *scene.Scene) *Sampler {
	s := &Sampler{
		sc:  sc,
		cdf: make([]float32, len(sc.Emissives)),
	}

	for index, em := range sc.Emissives {
		s.totalArea += em.Area
		s.cdf[index] = s.totalArea
	}

	return s
}

// Get the number of emitters that can be sampled.
func (s *Sampler) NumEmitters() int {
	return len(s.cdf)
}

// Get the total emissive area.
func (s *Sampler) TotalArea() float32 {
	return s.totalArea
}

// Estimate the reflected radiance at in due to light arriving directly from
// the scene emitters. The estimate averages nShadowSamples light samples and
// is Black if the scene has no emitters.
func (s *Sampler) Illuminate(mat *scene.Material, in *scene.Interaction, rng sampling.RandGen, nShadowSamples int, aux *scene.TraversalStack) spectrum.Spectrum {
	if nShadowSamples <= 0 || s.totalArea <= 0 {
		return spectrum.Black
	}

	point, normal, _, _ := in.Triad()
	origin := point.Add(normal.Mul(shadowRayEpsilon))
	brdf := mat.BaseColour().Scale(1 / math.Pi)

	sum := spectrum.Black
	for sample := 0; sample < nShadowSamples; sample++ {
		em := s.sc.Emissives[s.pick(rng.Float32())]
		verts := s.sc.Triangle(em.PrimitiveIndex)
		b0, b1 := sampling.SampleTriangle(rng.Float32(), rng.Float32())
		target := verts[0].Mul(b0).Add(verts[1].Mul(b1)).Add(verts[2].Mul(1 - b0 - b1))

		toLight := target.Sub(origin)
		distSquared := toLight.Dot(toLight)
		if distSquared < minDistSquared {
			continue
		}
		wi := toLight.Mul(1 / float32(math.Sqrt(float64(distSquared))))

		cosSurface := normal.Dot(wi)
		if cosSurface <= 0 {
			continue
		}

		// The side of the light facing the shading point must emit
		side := scene.Front
		cosLight := -scene.TriangleNormal(verts).Normalize().Dot(wi)
		if cosLight < 0 {
			side = scene.Back
			cosLight = -cosLight
		}
		if cosLight < minCosLight {
			continue
		}
		lightMat := s.sc.MaterialFor(em.PrimitiveIndex, side)
		if !lightMat.EmitsLight() {
			continue
		}

		if s.sc.Occluded(origin, target, aux) {
			continue
		}

		// Area sampling pdf is 1/totalArea; convert to solid angle.
		geomTerm := cosSurface * cosLight / distSquared
		sum = sum.Add(lightMat.EmittedColour().Mul(brdf).Scale(geomTerm * s.totalArea))
	}

	return sum.Scale(1 / float32(nShadowSamples))
}

// Select an emitter index given a uniform sample in [0, 1).
func (s *Sampler) pick(u float32) int {
	target := u * s.totalArea
	index := sort.Search(len(s.cdf), func(i int) bool {
		return s.cdf[i] > target
	})
	if index == len(s.cdf) {
		index--
	}
	return index
}
