package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/radiant/sampling"
	"github.com/achilleasa/radiant/tracer/integrator"
	"github.com/achilleasa/radiant/types"
	"github.com/urfave/cli"
)

// Get the flags accepted by the estimate command.
func EstimateFlags() []cli.Flag {
	defaults := integrator.DefaultOptions()
	return []cli.Flag{
		cli.StringFlag{
			Name:   "origin, o",
			Value:  "0,1,3",
			Usage:  "ray origin as a comma separated x,y,z triplet",
			EnvVar: "RADIANT_ORIGIN",
		},
		cli.StringFlag{
			Name:   "dir, d",
			Value:  "0,0,-1",
			Usage:  "ray direction as a comma separated x,y,z triplet",
			EnvVar: "RADIANT_DIR",
		},
		cli.IntFlag{
			Name:   "passes, p",
			Value:  64,
			Usage:  "number of averaged estimator invocations",
			EnvVar: "RADIANT_PASSES",
		},
		cli.IntFlag{
			Name:   "max-depth",
			Value:  defaults.MaxDepth,
			Usage:  "number of diffuse bounces",
			EnvVar: "RADIANT_MAX_DEPTH",
		},
		cli.IntFlag{
			Name:   "ambient-samples",
			Value:  defaults.AmbientSamples,
			Usage:  "paths traced per estimator invocation",
			EnvVar: "RADIANT_AMBIENT_SAMPLES",
		},
		cli.IntFlag{
			Name:   "shadow-samples",
			Value:  defaults.ShadowSamples,
			Usage:  "light samples at the first path vertex",
			EnvVar: "RADIANT_SHADOW_SAMPLES",
		},
		cli.Float64Flag{
			Name:   "ray-epsilon",
			Value:  float64(defaults.RayEpsilon),
			Usage:  "normal offset for bounce ray origins",
			EnvVar: "RADIANT_RAY_EPSILON",
		},
		cli.Float64Flag{
			Name:   "correction",
			Value:  float64(defaults.CorrectionFactor),
			Usage:  fmt.Sprintf("throughput divisor; use %g to match older renderer output", integrator.LegacyCorrectionFactor),
			EnvVar: "RADIANT_CORRECTION",
		},
		cli.BoolFlag{
			Name:   "cosine",
			Usage:  "draw bounce directions from a cosine weighted distribution",
			EnvVar: "RADIANT_COSINE",
		},
		cli.Uint64Flag{
			Name:   "seed",
			Value:  1,
			Usage:  "random generator seed",
			EnvVar: "RADIANT_SEED",
		},
	}
}

// Populate estimator options from command flags.
func optionsFromFlags(ctx *cli.Context) (integrator.Options, error) {
	opts := integrator.Options{
		MaxDepth:         ctx.Int("max-depth"),
		AmbientSamples:   ctx.Int("ambient-samples"),
		ShadowSamples:    ctx.Int("shadow-samples"),
		RayEpsilon:       float32(ctx.Float64("ray-epsilon")),
		CorrectionFactor: float32(ctx.Float64("correction")),
		Sampler:          sampling.UniformHemisphere,
	}
	if ctx.Bool("cosine") {
		opts.Sampler = sampling.CosineHemisphere
	}

	return opts, opts.Validate()
}

// Parse a comma separated x,y,z triplet.
func parseVec3(value string) (types.Vec3, error) {
	var v types.Vec3

	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("expected 3 comma separated components; got %d", len(parts))
	}

	for index, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return v, fmt.Errorf("component %d: %v", index, err)
		}
		v[index] = float32(f)
	}

	return v, nil
}
