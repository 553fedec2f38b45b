package config

import (
	"encoding/json"
	"image"
	"os"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/soocke/boxlabel-go/assets"
)

// DetectorConfig selects and tunes the auto-labeling backend.
type DetectorConfig struct {
	Backend        string  `json:"backend"` // "ollama" or "contour"
	URL            string  `json:"url"`
	Model          string  `json:"model"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	MinScore       float64 `json:"min_score"`
	MinArea        int     `json:"min_area"`
	MaxResults     int     `json:"max_results"`
	// Contour backend
	BlurKernel int  `json:"blur_kernel"`
	Invert     bool `json:"invert"`
}

// Config holds runtime configuration for the editor and its tools.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug    bool   `json:"debug"`
	LogFile  string `json:"log_file"`
	DarkMode bool   `json:"dark_mode"`

	// Categories
	Labels       []string          `json:"labels"`
	LabelColors  map[string]string `json:"label_colors"`
	DefaultLabel string            `json:"default_label"`

	// Interaction
	Tolerance     int `json:"tolerance"`
	AreaThreshold int `json:"area_threshold"`
	HistoryDepth  int `json:"history_depth"`
	FillAlpha     int `json:"fill_alpha"`

	// Initial canvas size
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	// Screen region used by Grab; a zero size means the whole screen.
	GrabX int `json:"grab_x"`
	GrabY int `json:"grab_y"`
	GrabW int `json:"grab_w"`
	GrabH int `json:"grab_h"`

	OutputDir string         `json:"output_dir"`
	Detector  DetectorConfig `json:"detector"`
}

// GrabRect returns the configured grab region, empty for the whole screen.
func (c *Config) GrabRect() image.Rectangle {
	if c == nil || c.GrabW <= 0 || c.GrabH <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(c.GrabX, c.GrabY, c.GrabX+c.GrabW, c.GrabY+c.GrabH)
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		Labels:        assets.DefaultLabels(),
		LabelColors:   map[string]string{"Ship": "#0000ff", "Buoy": "#ff0000", "Other": "#00ff00"},
		DefaultLabel:  "Ship",
		Tolerance:     10,
		AreaThreshold: 30,
		HistoryDepth:  50,
		FillAlpha:     80,
		CanvasWidth:   800,
		CanvasHeight:  800,
		Detector: DetectorConfig{
			Backend:        "ollama",
			URL:            "http://localhost:11434",
			Model:          "qwen2.5vl:7b",
			TimeoutSeconds: 120,
			MinScore:       0.25,
			MinArea:        30,
			MaxResults:     50,
			BlurKernel:     5,
		},
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.Labels = lo.Uniq(lo.Compact(c.Labels))
	if len(c.Labels) == 0 {
		c.Labels = assets.DefaultLabels()
	}
	if !lo.Contains(c.Labels, c.DefaultLabel) {
		c.DefaultLabel = c.Labels[0]
	}
	if c.Tolerance < 1 {
		c.Tolerance = 10
	}
	if c.AreaThreshold < 1 {
		c.AreaThreshold = 30
	}
	if c.HistoryDepth < 1 {
		c.HistoryDepth = 50
	}
	if c.FillAlpha < 0 || c.FillAlpha > 255 {
		c.FillAlpha = 80
	}
	if c.CanvasWidth < 50 {
		c.CanvasWidth = 800
	}
	if c.CanvasHeight < 50 {
		c.CanvasHeight = 800
	}
	if c.GrabW < 0 || c.GrabH < 0 {
		c.GrabW, c.GrabH = 0, 0
	}
	d := &c.Detector
	if d.Backend != "ollama" && d.Backend != "contour" {
		d.Backend = "ollama"
	}
	if d.TimeoutSeconds <= 0 {
		d.TimeoutSeconds = 120
	}
	if d.MinScore < 0 || d.MinScore > 1 {
		d.MinScore = 0.25
	}
	if d.MinArea < 0 {
		d.MinArea = 0
	}
	if d.MaxResults <= 0 {
		d.MaxResults = 50
	}
	if d.BlurKernel < 1 {
		d.BlurKernel = 5
	}
	if d.BlurKernel%2 == 0 {
		d.BlurKernel++
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "decode %s", path)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config")
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
