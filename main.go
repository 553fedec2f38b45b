package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagConfig      = "config"
	flagOut         = "out"
	flagIn          = "in"
	flagBackend     = "backend"
	flagModel       = "model"
	flagURL         = "url"
	flagImages      = "images"
	flagAnnotations = "annotations"
	flagLabels      = "labels"
	flagExt         = "ext"
	flagCount       = "count"
	flagInterval    = "interval"
	flagRect        = "rect"
	flagDebug       = "debug"

	defaultConfigPath = "boxlabel.json"
)

func main() {
	app := &cli.App{
		Name:  "boxlabel",
		Usage: "draw and correct bounding-box annotations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Value:   defaultConfigPath,
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging and runtime stats",
			},
		},
		// Without a subcommand the editor starts.
		Action: editAction,
		Commands: []*cli.Command{
			{
				Name:      "edit",
				Usage:     "open the annotation editor",
				ArgsUsage: "[image-or-folder]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagOut,
						Usage: "write annotations to `DIR` instead of next to each image",
					},
				},
				Action: editAction,
			},
			{
				Name:  "detect",
				Usage: "auto-label one image and write Pascal VOC XML",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagIn, Required: true, Usage: "image `FILE`"},
					&cli.StringFlag{Name: flagBackend, Usage: "detector backend (ollama or contour)"},
					&cli.StringFlag{Name: flagModel, Usage: "ollama model name"},
					&cli.StringFlag{Name: flagURL, Usage: "ollama server URL"},
					&cli.PathFlag{Name: flagOut, Usage: "output `FILE` (default: next to the image)"},
				},
				Action: detectAction,
			},
			{
				Name:  "check",
				Usage: "render annotated images with their boxes for review",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagImages, Required: true, Usage: "image `DIR`"},
					&cli.PathFlag{Name: flagAnnotations, Required: true, Usage: "annotation `DIR`"},
					&cli.StringSliceFlag{Name: flagLabels, Usage: "labels to keep (default: configured labels)"},
					&cli.PathFlag{Name: flagOut, Value: "dataset_check", Usage: "output `DIR`"},
					&cli.StringFlag{Name: flagExt, Value: "jpg", Usage: "output format: jpg, png or webp"},
				},
				Action: checkAction,
			},
			{
				Name:  "grab",
				Usage: "record screen captures into a folder to annotate",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagOut, Required: true, Usage: "output `DIR`"},
					&cli.IntFlag{Name: flagCount, Value: 1, Usage: "frames to record, 0 until interrupted"},
					&cli.DurationFlag{Name: flagInterval, Value: defaultGrabInterval, Usage: "time between frames"},
					&cli.StringFlag{Name: flagRect, Usage: "screen region as `x,y,w,h` (default: configured region)"},
					&cli.StringFlag{Name: flagExt, Value: "png", Usage: "output format: jpg, png or webp"},
				},
				Action: grabAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
