package detect

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/soocke/boxlabel-go/config"
)

// New builds the detector selected by cfg.Detector.Backend.
func New(cfg *config.Config, logger *slog.Logger) (Detector, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d := cfg.Detector
	switch d.Backend {
	case "ollama", "":
		return NewOllamaDetector(d.URL, d.Model, cfg.Labels, time.Duration(d.TimeoutSeconds)*time.Second, logger)
	case "contour":
		return NewContourDetector(d.BlurKernel, d.Invert, logger)
	default:
		return nil, errors.Errorf("unknown detector backend %q", d.Backend)
	}
}

// Postprocessors returns the standard filter chain for cfg.
func Postprocessors(cfg *config.Config) []Postprocessor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d := cfg.Detector
	return []Postprocessor{
		NewLabelMapper(cfg.Labels, cfg.DefaultLabel),
		NewScoreFilter(d.MinScore),
		NewAreaFilter(d.MinArea),
		NewLimit(d.MaxResults),
	}
}
