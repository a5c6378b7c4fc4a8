// Package tracer drives the radiance estimator for caller supplied rays.
package tracer

import (
	"context"
	"math"
	"time"

	"github.com/achilleasa/radiant/log"
	"github.com/achilleasa/radiant/sampling"
	"github.com/achilleasa/radiant/scene"
	"github.com/achilleasa/radiant/spectrum"
	"github.com/achilleasa/radiant/tracer/integrator"
	"github.com/achilleasa/radiant/tracer/light"
)

// Wraps a scene and counts primary and bounce ray casts.
type countingScene struct {
	*scene.Scene
	rayCasts uint64
}

func (cs *countingScene) CastRay(ray scene.Ray, aux *scene.TraversalStack) (uint32, scene.Interaction, bool) {
	cs.rayCasts++
	return cs.Scene.CastRay(ray, aux)
}

// A Probe repeatedly estimates the radiance along a single ray and averages
// the results. Each pass is an independent estimator invocation drawing from
// a shared random source, so a Probe must not be used concurrently.
type Probe struct {
	logger    log.Logger
	sc        *scene.Scene
	estimator *integrator.MonteCarlo
	passes    int
	seed      uint64
}

// Create a probe for sc. Direct lighting is estimated by sampling the scene
// emitters.
func NewProbe(sc *scene.Scene, opts integrator.Options, passes int, seed uint64) (*Probe, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if passes < 1 {
		return nil, ErrInvalidPassCount
	}

	estimator, err := integrator.NewMonteCarlo(light.NewSampler(sc), opts)
	if err != nil {
		return nil, err
	}

	return &Probe{
		logger:    log.New("probe"),
		sc:        sc,
		estimator: estimator,
		passes:    passes,
		seed:      seed,
	}, nil
}

// Estimate the radiance along ray. The same seed and ray always produce the
// same result. Cancelling ctx aborts the run between passes and returns
// ErrInterrupted together with the stats collected so far.
func (p *Probe) Run(ctx context.Context, ray scene.Ray) (spectrum.Spectrum, Stats, error) {
	rng := sampling.NewRand(p.seed)
	aux := scene.NewTraversalStack()
	cs := &countingScene{Scene: p.sc}

	p.logger.Infof("probing ray origin %v, direction %v (%d passes)", ray.Origin, ray.Dir, p.passes)
	p.logger.Debugf("estimator options: %s", p.estimator.Options())

	var stats Stats
	var acc welford
	sum := spectrum.Black
	start := time.Now()
	for pass := 0; pass < p.passes; pass++ {
		select {
		case <-ctx.Done():
			stats.fill(pass, cs.rayCasts, time.Since(start), &acc)
			return spectrum.Black, stats, ErrInterrupted
		default:
		}

		estimate := p.estimator.Estimate(rng, cs, ray, aux)
		sum = sum.Add(estimate)
		acc.add(float64(estimate.Luminance()))
	}

	radiance := sum.Div(float32(p.passes))
	stats.fill(p.passes, cs.rayCasts, time.Since(start), &acc)
	stats.Radiance = radiance

	p.logger.Infof("completed %d passes in %s", p.passes, stats.Elapsed)
	return radiance, stats, nil
}

// Running mean and variance (Welford's algorithm).
type welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *welford) add(x float64) {
	w.n++
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

// Get the standard error of the mean.
func (w *welford) stdErr() float64 {
	if w.n < 2 {
		return 0
	}
	variance := w.m2 / float64(w.n-1)
	return math.Sqrt(variance / float64(w.n))
}
