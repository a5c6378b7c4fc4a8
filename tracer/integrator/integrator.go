// Package integrator implements a forward Monte-Carlo path tracing estimator
// for the radiance arriving along a ray.
package integrator

import (
	"math"

	"github.com/achilleasa/radiant/sampling"
	"github.com/achilleasa/radiant/scene"
	"github.com/achilleasa/radiant/spectrum"
	"github.com/achilleasa/radiant/types"
)

// Scene is the geometry provider queried by the estimator.
type Scene interface {
	// Find the nearest hit along ray.
	CastRay(ray scene.Ray, aux *scene.TraversalStack) (uint32, scene.Interaction, bool)

	// Get the material for a triangle side; nil for NonApplicable.
	MaterialFor(triIndex uint32, side scene.SurfaceSide) *scene.Material

	// Get the per-vertex normals of a triangle.
	VertexNormals(triIndex uint32) [3]types.Vec3
}

// DirectLighting estimates the radiance reflected at a surface point due to
// light arriving straight from the scene emitters.
type DirectLighting interface {
	Illuminate(mat *scene.Material, in *scene.Interaction, rng sampling.RandGen, nShadowSamples int, aux *scene.TraversalStack) spectrum.Spectrum
}

// MonteCarlo estimates incoming radiance by tracing random paths with
// uniform (or cosine weighted) diffuse bounces and next event estimation at
// every vertex. It is immutable and may be shared by concurrent callers as
// long as each one supplies its own random source and traversal stack.
type MonteCarlo struct {
	direct DirectLighting
	opts   Options
}

// Create an estimator. Returns an error if opts are invalid.
func NewMonteCarlo(direct DirectLighting, opts Options) (*MonteCarlo, error) {
	if direct == nil {
		return nil, ErrMissingDirectLighting
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &MonteCarlo{
		direct: direct,
		opts:   opts,
	}, nil
}

// Get the estimator options.
func (mc *MonteCarlo) Options() Options {
	return mc.opts
}

// The state of a single path.
type pathState struct {
	ray            scene.Ray
	beta           spectrum.Spectrum
	depth          int
	specularBounce bool
}

// Estimate the radiance arriving at the ray origin from the ray direction.
// The estimate averages AmbientSamples independent trials, or a single
// trial if MaxDepth is 0. Rays that miss the scene carry no radiance.
func (mc *MonteCarlo) Estimate(rng sampling.RandGen, sc Scene, ray scene.Ray, aux *scene.TraversalStack) spectrum.Spectrum {
	nAmbientSamples := mc.opts.AmbientSamples
	if mc.opts.MaxDepth == 0 {
		nAmbientSamples = 1
	}

	radiance := spectrum.Black
	for sample := 0; sample < nAmbientSamples; sample++ {
		radiance = radiance.Add(mc.trace(rng, sc, ray, aux))
	}

	return radiance.Div(float32(nAmbientSamples))
}

// Follow a single path starting at ray and return the radiance it collects.
func (mc *MonteCarlo) trace(rng sampling.RandGen, sc Scene, ray scene.Ray, aux *scene.TraversalStack) spectrum.Spectrum {
	path := pathState{
		ray:            ray,
		beta:           spectrum.One,
		specularBounce: true,
	}

	radiance := spectrum.Black
	for {
		triIndex, in, hit := sc.CastRay(path.ray, aux)
		if !hit {
			break
		}

		// Hit parallel to the surface
		if in.Side == scene.NonApplicable {
			break
		}
		mat := sc.MaterialFor(triIndex, in.Side)

		// Lights do not reflect. Emission reached through a diffuse bounce
		// was already accounted for by the direct light estimate.
		if mat.EmitsLight() {
			if path.specularBounce {
				radiance = radiance.Add(path.beta.Mul(mat.EmittedColour()))
			}
			break
		}

		in.InterpolateNormal(sc.VertexNormals(triIndex))

		nShadowSamples := 1
		if path.depth == 0 {
			nShadowSamples = mc.opts.ShadowSamples
		}
		direct := mc.direct.Illuminate(mat, &in, rng, nShadowSamples, aux)
		radiance = radiance.Add(path.beta.Mul(direct))

		path.depth++
		if path.depth > mc.opts.MaxDepth {
			break
		}

		local, pdf := mc.opts.Sampler.Sample(rng)
		path.beta = path.beta.Mul(mc.throughputScale(mat, local[2], pdf))
		assertThroughput(path.beta)

		path.specularBounce = false
		point, normal, e1, e2 := in.Triad()
		dir := mat.ToWorld(normal, e1, e2, local)
		assertUnitDirection(dir)
		path.ray = scene.Ray{
			Origin: point.Add(normal.Mul(mc.opts.RayEpsilon)),
			Dir:    dir,
		}
	}

	return radiance
}

// Get the factor a Lambertian bounce with the given cosine and pdf applies
// to the path throughput.
func (mc *MonteCarlo) throughputScale(mat *scene.Material, cosTheta, pdf float32) spectrum.Spectrum {
	if pdf <= 0 {
		return spectrum.Black
	}
	brdf := mat.BaseColour().Scale(1 / math.Pi)
	return brdf.Scale(cosTheta / (pdf * mc.opts.CorrectionFactor))
}
