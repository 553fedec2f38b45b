package app

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/soocke/boxlabel-go/config"
	"github.com/soocke/boxlabel-go/domain/annotation"
	"github.com/soocke/boxlabel-go/domain/detect"
	"github.com/soocke/boxlabel-go/ui/images"
	"github.com/soocke/boxlabel-go/ui/model"
	"github.com/soocke/boxlabel-go/ui/presenter"
	"github.com/soocke/boxlabel-go/ui/view"
)

// AppContainer assembles models, the editor engine, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Labels    *annotation.LabelSet
	Editor    *annotation.Editor
	Document  *model.DocumentModel
	Detection *model.DetectionModel
	RootView  *view.RootView
	UI        view.UI

	// Presenters
	EditorPresenter    *presenter.EditorPresenter
	StatusPresenter    *presenter.StatusPresenter
	DetectionPresenter *presenter.DetectionPresenter
	Loop               *presenter.Loop

	boxes atomic.Int64
}

// BuildContainer constructs all components. No Tk widgets are created here;
// the root view is built by the app once Tk is running.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	labels, err := annotation.NewLabelSet(cfg.Labels, cfg.LabelColors, cfg.DefaultLabel)
	if err != nil {
		return nil, errors.Wrap(err, "label set")
	}
	c.Labels = labels
	canvas := annotation.Size{W: cfg.CanvasWidth, H: cfg.CanvasHeight}
	c.Editor, err = annotation.NewEditor(labels, canvas, annotation.Options{
		Tolerance:     cfg.Tolerance,
		AreaThreshold: cfg.AreaThreshold,
		HistoryDepth:  cfg.HistoryDepth,
	}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "editor")
	}
	c.Document = model.NewDocumentModel()
	c.Detection = model.NewDetectionModel()

	// View
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	c.EditorPresenter = presenter.NewEditorPresenter(c.Editor, c.Document, c.UI, overlayOptions(cfg), cfg.OutputDir, logger)
	det, pps := c.detector()
	c.DetectionPresenter = presenter.NewDetectionPresenter(det, pps, c.Document, c.EditorPresenter, c.Detection, detectTimeout(cfg), logger)
	c.StatusPresenter = presenter.NewStatusPresenter(c.UI, c.Document, c.DetectionPresenter)

	c.Editor.AddModeListener(c.StatusPresenter.OnMode)
	c.Editor.AddCountListener(c.StatusPresenter.OnCount)
	c.Editor.AddCountListener(func(n int) { c.boxes.Store(int64(n)) })

	// Scheduler attached by the app once the Tk loop exists.
	c.Loop = presenter.NewLoop(c.EditorPresenter, c.StatusPresenter, c.DetectionPresenter, nil)
	return c, nil
}

// BoxCount returns the number of committed boxes. Safe for concurrent use.
func (c *AppContainer) BoxCount() int {
	if c == nil {
		return 0
	}
	return int(c.boxes.Load())
}

// ReloadDetector rebuilds the detector from the current config. It returns
// false while a detection run is in flight.
func (c *AppContainer) ReloadDetector() bool {
	if c == nil {
		return false
	}
	det, pps := c.detector()
	return c.DetectionPresenter.SetDetector(det, pps)
}

// detector builds the configured backend. A backend that cannot be created
// leaves auto-labeling disabled rather than failing startup.
func (c *AppContainer) detector() (detect.Detector, []detect.Postprocessor) {
	det, err := detect.New(c.Config, c.Logger)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("auto-labeling disabled", "backend", c.Config.Detector.Backend, "error", err)
		}
		return nil, nil
	}
	return det, detect.Postprocessors(c.Config)
}

func overlayOptions(cfg *config.Config) images.OverlayOptions {
	return images.OverlayOptions{FillAlpha: uint8(cfg.FillAlpha), LineWidth: 2, Labels: true}
}

func detectTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Detector.TimeoutSeconds) * time.Second
}
