package integrator

import (
	"fmt"
	"math"

	"github.com/achilleasa/radiant/sampling"
)

// A throughput divisor that reproduces the slightly darker output of earlier
// renderer versions. It is only applied when set explicitly.
const LegacyCorrectionFactor float32 = 1.07

// Options tune the estimator.
type Options struct {
	// Bounces after the first hit. A value of 0 only evaluates emission and
	// direct light at the first hit.
	MaxDepth int

	// Independent trials averaged per estimate. Ignored when MaxDepth is 0.
	AmbientSamples int

	// Light samples taken at the first hit. Deeper hits use a single sample.
	ShadowSamples int

	// Offset applied along the surface normal when spawning bounce rays.
	RayEpsilon float32

	// Divisor applied to the throughput of every bounce.
	CorrectionFactor float32

	// Distribution used for drawing bounce directions.
	Sampler sampling.HemisphereSampler
}

// Get the default estimator options.
func DefaultOptions() Options {
	return Options{
		MaxDepth:         4,
		AmbientSamples:   8,
		ShadowSamples:    4,
		RayEpsilon:       0.001,
		CorrectionFactor: 1.0,
		Sampler:          sampling.UniformHemisphere,
	}
}

// Check that options are within their valid range.
func (opts Options) Validate() error {
	switch {
	case opts.MaxDepth < 0:
		return ErrNegativeMaxDepth
	case opts.AmbientSamples < 1:
		return ErrInvalidAmbientSamples
	case opts.ShadowSamples < 0:
		return ErrNegativeShadowSamples
	case !(opts.RayEpsilon > 0) || math.IsInf(float64(opts.RayEpsilon), 0):
		return ErrInvalidRayEpsilon
	case !(opts.CorrectionFactor > 0) || math.IsInf(float64(opts.CorrectionFactor), 0):
		return ErrInvalidCorrectionFactor
	}

	if _, err := sampling.ParseHemisphereSampler(opts.Sampler.String()); err != nil {
		return err
	}

	return nil
}

func (opts Options) String() string {
	return fmt.Sprintf(
		"max depth: %d, ambient samples: %d, shadow samples: %d, ray epsilon: %g, correction: %g, sampler: %s",
		opts.MaxDepth, opts.AmbientSamples, opts.ShadowSamples, opts.RayEpsilon, opts.CorrectionFactor, opts.Sampler,
	)
}
