package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/boxlabel-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsPanel is a settings window editing the configuration. Apply
// validates, persists and reports the new config.
type SettingsPanel interface {
	OpenOrFocus(onApplied func(*config.Config))
	ApplyChanges() // parses widget text into underlying config and persists
}

type settingsPanel struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	win       *ToplevelWidget
	widgets   map[string]*TextWidget // keyed by internal field id
	onApplied func(*config.Config)
}

// NewSettingsPanel creates the view bound to cfg.
func NewSettingsPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) SettingsPanel {
	return &settingsPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *settingsPanel) OpenOrFocus(onApplied func(*config.Config)) {
	v.onApplied = onApplied
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	if v.cfg == nil {
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Settings")
	v.win = win
	c := v.cfg
	row := 0
	makeRow := func(id, label, value string) {
		lbl := win.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(1), Width(28))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("tolerance", "Handle Tolerance (px)", fmt.Sprintf("%d", c.Tolerance))
	makeRow("areaThreshold", "Min Box Area (px²)", fmt.Sprintf("%d", c.AreaThreshold))
	makeRow("fillAlpha", "Fill Alpha (0-255)", fmt.Sprintf("%d", c.FillAlpha))
	makeRow("outputDir", "Annotation Dir (empty = next to image)", c.OutputDir)
	makeRow("backend", "Detector (ollama/contour)", c.Detector.Backend)
	makeRow("url", "Ollama URL", c.Detector.URL)
	makeRow("model", "Ollama Model", c.Detector.Model)
	makeRow("minScore", "Min Score", fmt.Sprintf("%.2f", c.Detector.MinScore))
	makeRow("minArea", "Min Detection Area", fmt.Sprintf("%d", c.Detector.MinArea))
	makeRow("timeout", "Detector Timeout Seconds", fmt.Sprintf("%d", c.Detector.TimeoutSeconds))
	makeRow("invert", "Contour Invert (true/false)", fmt.Sprintf("%t", c.Detector.Invert))
	hint := win.Label(Txt("Tolerance, area and alpha apply on next start."), Anchor("w"))
	Grid(hint, Row(row), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))
	row++
	apply := win.Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(apply, Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	closeBtn := win.Button(Txt("Close"), Command(v.destroy))
	Grid(closeBtn, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.destroy)
}

func (v *settingsPanel) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
		clear(v.widgets)
	}
}

func (v *settingsPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *settingsPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignFloat := func(id string, dst *float64) {
		if s, ok := v.text(id); ok {
			if f, ok := parseFloatField(s); ok {
				*dst = f
			}
		}
	}
	assignInt := func(id string, dst *int) {
		if s, ok := v.text(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := v.text(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	assignString := func(id string, dst *string, allowEmpty bool) {
		if s, ok := v.text(id); ok && (s != "" || allowEmpty) {
			*dst = s
		}
	}
	assignInt("tolerance", &cfg.Tolerance)
	assignInt("areaThreshold", &cfg.AreaThreshold)
	assignInt("fillAlpha", &cfg.FillAlpha)
	assignString("outputDir", &cfg.OutputDir, true)
	assignString("backend", &cfg.Detector.Backend, false)
	assignString("url", &cfg.Detector.URL, false)
	assignString("model", &cfg.Detector.Model, false)
	assignFloat("minScore", &cfg.Detector.MinScore)
	assignInt("minArea", &cfg.Detector.MinArea)
	assignInt("timeout", &cfg.Detector.TimeoutSeconds)
	assignBool("invert", &cfg.Detector.Invert)
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApplied != nil {
		v.onApplied(v.cfg)
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
