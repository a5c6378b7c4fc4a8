package integrator

import "errors"

var (
	ErrNegativeMaxDepth        = errors.New("integrator: max depth must not be negative")
	ErrInvalidAmbientSamples   = errors.New("integrator: ambient sample count must be at least 1")
	ErrNegativeShadowSamples   = errors.New("integrator: shadow sample count must not be negative")
	ErrInvalidRayEpsilon       = errors.New("integrator: ray epsilon must be positive")
	ErrInvalidCorrectionFactor = errors.New("integrator: correction factor must be positive")
	ErrMissingDirectLighting   = errors.New("integrator: no direct lighting estimator specified")
)
