package app

import (
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/soocke/boxlabel-go/config"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestBuildContainer_WiresEditor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CanvasWidth, cfg.CanvasHeight = 200, 100
	c, err := BuildContainer(cfg, "", discardLogger())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := c.Editor.Canvas(); got.W != 200 || got.H != 100 {
		t.Fatalf("canvas not taken from config: %+v", got)
	}
	if c.Editor.Label() != cfg.DefaultLabel {
		t.Fatalf("label %q, want %q", c.Editor.Label(), cfg.DefaultLabel)
	}

	c.Editor.PointerDown(image.Pt(10, 10))
	c.Editor.PointerMove(image.Pt(60, 60))
	c.Editor.PointerUp(image.Pt(60, 60))
	if c.BoxCount() != 1 {
		t.Fatalf("box count %d, want 1", c.BoxCount())
	}
	if !c.ReloadDetector() {
		t.Fatalf("idle detector reload refused")
	}
}

func TestBuildContainer_UnavailableBackendDisablesDetection(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Detector.URL = "://bad"
	c, err := BuildContainer(cfg, "", discardLogger())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if c.DetectionPresenter.Run() {
		t.Fatalf("detection should be disabled without a backend")
	}
}

func TestBoxCount_NilContainer(t *testing.T) {
	var c *AppContainer
	if c.BoxCount() != 0 || c.ReloadDetector() {
		t.Fatalf("nil container should be inert")
	}
}
