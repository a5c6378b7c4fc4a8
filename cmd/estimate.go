package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/achilleasa/radiant/asset/library"
	"github.com/achilleasa/radiant/scene"
	"github.com/achilleasa/radiant/tracer"
	"github.com/urfave/cli"
)

// Estimate the radiance along a ray through a built-in scene.
func EstimateRadiance(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}

	origin, err := parseVec3(ctx.String("origin"))
	if err != nil {
		return fmt.Errorf("invalid ray origin: %v", err)
	}
	dir, err := parseVec3(ctx.String("dir"))
	if err != nil {
		return fmt.Errorf("invalid ray direction: %v", err)
	}
	if dir.Len() == 0 {
		return errors.New("invalid ray direction: zero length vector")
	}

	opts, err := optionsFromFlags(ctx)
	if err != nil {
		return err
	}

	sc, err := library.Build(ctx.Args().First())
	if err != nil {
		return err
	}

	probe, err := tracer.NewProbe(sc, opts, ctx.Int("passes"), ctx.Uint64("seed"))
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Infof("estimator options: %s", opts)
	radiance, stats, err := probe.Run(runCtx, scene.NewRay(origin, dir))
	if err != nil {
		if err == tracer.ErrInterrupted {
			logger.Warningf("interrupted after %d passes", stats.Passes)
		}
		return err
	}

	// Display stats
	logger.Noticef("probe statistics\n%s", stats.Table())
	fmt.Fprintln(ctx.App.Writer, radiance)

	return nil
}
