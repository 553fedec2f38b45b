package main

import (
	"context"
	"image/color"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/soocke/boxlabel-go/app"
	"github.com/soocke/boxlabel-go/config"
	"github.com/soocke/boxlabel-go/debug"
	"github.com/soocke/boxlabel-go/domain/annotation"
	"github.com/soocke/boxlabel-go/domain/capture"
	"github.com/soocke/boxlabel-go/domain/dataset"
	"github.com/soocke/boxlabel-go/domain/detect"
	"github.com/soocke/boxlabel-go/domain/imageio"
)

const (
	defaultGrabInterval = time.Second
	statsInterval       = 5 * time.Second
)

// setup loads the configuration and builds the logger shared by all commands.
func setup(c *cli.Context) (*config.Config, string, *slog.Logger) {
	path := c.String(flagConfig)
	cfg, err := config.Load(path)
	level := slog.LevelInfo
	if cfg.Debug || c.Bool(flagDebug) {
		cfg.Debug = true
		level = slog.LevelDebug
	}
	logger := NewLogger(level, cfg.LogFile)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", path, "error", err)
	}
	return cfg, path, logger
}

func editAction(c *cli.Context) error {
	cfg, cfgPath, logger := setup(c)
	if out := c.String(flagOut); out != "" {
		cfg.OutputDir = out
	}
	container, err := app.BuildContainer(cfg, cfgPath, logger)
	if err != nil {
		return err
	}
	if cfg.Debug {
		ctx, cancel := context.WithCancel(c.Context)
		defer cancel()
		debug.StartStatsLogger(ctx, statsInterval, logger, container.BoxCount)
	}
	app.NewApp("Box Label", container, c.Args().First()).Start()
	return nil
}

func detectAction(c *cli.Context) error {
	cfg, _, logger := setup(c)
	if v := c.String(flagBackend); v != "" {
		cfg.Detector.Backend = v
	}
	if v := c.String(flagModel); v != "" {
		cfg.Detector.Model = v
	}
	if v := c.String(flagURL); v != "" {
		cfg.Detector.URL = v
	}
	_ = cfg.Validate()

	in := c.Path(flagIn)
	img, err := imageio.Load(in)
	if err != nil {
		return err
	}
	det, err := detect.New(cfg, logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Context, time.Duration(cfg.Detector.TimeoutSeconds)*time.Second)
	defer cancel()
	start := time.Now()
	dets, err := det.Detect(ctx, img)
	if err != nil {
		return errors.Wrapf(err, "detect %s", in)
	}
	b := img.Bounds()
	src := annotation.Size{W: b.Dx(), H: b.Dy()}
	kept := detect.Apply(dets, detect.Postprocessors(cfg)...)
	rects, err := exportProposals(cfg, src, detect.ToCanvas(kept, src, src), logger)
	if err != nil {
		return err
	}

	out := c.Path(flagOut)
	if out == "" {
		out = imageio.SidecarPath(in, cfg.OutputDir, "xml")
	}
	if err := dataset.WriteFile(out, dataset.NewVOC(in, src.W, src.H, rects)); err != nil {
		return err
	}
	logger.Info("detection written", "detector", det.Name(), "raw", len(dets), "kept", len(rects),
		"out", absPath(out), "duration", time.Since(start))
	return nil
}

// exportProposals runs proposals through an editor sized to the image so the
// written rects follow the same clipping and label rules as the GUI.
func exportProposals(cfg *config.Config, src annotation.Size, props []annotation.Proposal, logger *slog.Logger) ([]annotation.ExportRect, error) {
	labels, err := annotation.NewLabelSet(cfg.Labels, cfg.LabelColors, cfg.DefaultLabel)
	if err != nil {
		return nil, err
	}
	ed, err := annotation.NewEditor(labels, src, annotation.Options{
		Tolerance:     cfg.Tolerance,
		AreaThreshold: cfg.AreaThreshold,
		HistoryDepth:  1,
	}, logger)
	if err != nil {
		return nil, err
	}
	ed.ReplaceAll(props)
	return ed.Export(src.W, src.H)
}

func checkAction(c *cli.Context) error {
	cfg, _, logger := setup(c)
	labels := c.StringSlice(flagLabels)
	if len(labels) == 0 {
		labels = cfg.Labels
	}
	res, parseErr := dataset.ParseDir(c.Path(flagAnnotations), c.Path(flagImages), labels, logger)
	if len(res.Instances) == 0 && parseErr != nil {
		return parseErr
	}
	for name, n := range res.Seen {
		logger.Info("label count", "label", name, "objects", n)
	}
	ls, err := annotation.NewLabelSet(labels, cfg.LabelColors, "")
	if err != nil {
		return err
	}
	written, err := dataset.Check(res.Instances, dataset.CheckOptions{
		OutDir: c.Path(flagOut),
		Ext:    c.String(flagExt),
		Color:  func(label string) color.Color { return ls.Color(label) },
	}, logger)
	logger.Info("dataset check done", "instances", len(res.Instances), "written", written, "out", c.Path(flagOut))
	if parseErr != nil {
		logger.Warn("some annotations could not be parsed", "error", parseErr)
	}
	return err
}

func grabAction(c *cli.Context) error {
	cfg, _, logger := setup(c)
	sel := cfg.GrabRect()
	if v := c.String(flagRect); v != "" {
		r, err := parseRect(v)
		if err != nil {
			return err
		}
		cfg.GrabX, cfg.GrabY, cfg.GrabW, cfg.GrabH = r.x, r.y, r.w, r.h
		sel = cfg.GrabRect()
	}
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	rec := capture.NewRecorder(nil, c.Duration(flagInterval), sel, logger)
	dir := c.Path(flagOut)
	err := rec.Run(ctx, c.Int(flagCount), capture.DirSink(dir, c.String(flagExt), 0, logger))
	st := rec.Stats()
	logger.Info("grab done", "dir", absPath(dir), "captures", st.Captures, "failures", st.Failures)
	return err
}

type region struct{ x, y, w, h int }

// parseRect parses "x,y,w,h" with a positive size.
func parseRect(s string) (region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return region{}, errors.Errorf("region %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return region{}, errors.Wrapf(err, "region %q", s)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return region{}, errors.Errorf("region %q: size must be positive", s)
	}
	return region{x: v[0], y: v[1], w: v[2], h: v[3]}, nil
}

// absPath is used in log lines so relative outputs are unambiguous.
func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return p
}
