package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/radiant/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "radiant"
	app.Usage = "estimate radiance along rays with monte-carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "set log level (debug, info, notice, warning, error)",
			EnvVar: "RADIANT_LOG_LEVEL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "info",
			Usage:     "compile a built-in scene and display its statistics",
			ArgsUsage: "scene_name",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:  "estimate",
			Usage: "estimate the radiance arriving along a ray",
			Description: `
Compile a built-in scene, trace the supplied ray through it and report the
radiance averaged over a number of estimator passes.

Each pass traces --ambient-samples paths of at most --max-depth diffuse
bounces and evaluates direct lighting at every path vertex.`,
			ArgsUsage: "scene_name",
			Flags:     cmd.EstimateFlags(),
			Action:    cmd.EstimateRadiance,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
