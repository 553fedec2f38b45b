package view

import (
	"image"
	"log/slog"
	"slices"
	"strconv"

	"github.com/soocke/boxlabel-go/config"
	"github.com/soocke/boxlabel-go/domain/annotation"
	"github.com/soocke/boxlabel-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// chromeW and chromeH approximate the window area not available to the
// canvas (toolbar, status bar, borders).
const (
	chromeW = 8
	chromeH = 76
)

// Handlers are the callbacks invoked by user actions.
type Handlers struct {
	Open, OpenFolder, Prev, Next, Save func()
	Detect, Grab, GrabRegion           func()
	Undo, Redo, Settings, Theme, Exit  func()
	LabelChanged                       func(label string)
	Key                                func(annotation.Key)
	Resized                            func(w, h int)
	Canvas                             CanvasHandlers
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Canvas   CanvasView
	Status   StatusBar
	Settings SettingsPanel
	Region   RegionSelector

	// Widgets
	LabelSelect *TComboboxWidget

	lastW, lastH int
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	CanvasView
	StatusBar
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout: toolbar on row 0, canvas on row 1 and the
// status bar on row 2.
func (rv *RootView) Build(labels []string, current string, placeholder image.Image, h Handlers) {
	if rv == nil {
		return
	}
	const cols = 1
	bar := Frame()
	Grid(bar, Row(0), Column(0), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	button := func(text string, fn func(), style ...string) {
		if fn == nil {
			return
		}
		if len(style) > 0 {
			Grid(TButton(Txt(text), Command(fn), Style(style[0])), In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		} else {
			Grid(Button(Txt(text), Command(fn)), In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		}
		col++
	}
	button("Open", h.Open)
	button("Folder", h.OpenFolder)
	button("< Prev", h.Prev)
	button("Next >", h.Next)
	button("Save", h.Save, theme.StylePrimaryButton)
	button("Auto-label", h.Detect)
	button("Grab", h.Grab)
	button("Region", h.GrabRegion)
	button("Undo", h.Undo)
	button("Redo", h.Redo)
	button("Settings", h.Settings)
	button("Theme", h.Theme)
	button("Exit", h.Exit, theme.StyleDangerButton)

	if len(labels) == 0 {
		labels = []string{"<none>"}
	}
	rv.LabelSelect = TCombobox(Values(labels), Width(14), State("readonly"))
	Grid(rv.LabelSelect, In(bar), Row(0), Column(col), Sticky("e"), Padx("0.4m"), Pady("0.2m"))
	if idx := slices.Index(labels, current); idx >= 0 {
		rv.LabelSelect.Current(idx)
	} else {
		rv.LabelSelect.Current(0)
	}
	Bind(rv.LabelSelect, "<<ComboboxSelected>>", Command(func() {
		if rv.LabelSelect == nil || h.LabelChanged == nil {
			return
		}
		idx, err := strconv.Atoi(rv.LabelSelect.Current(nil))
		if err == nil && idx >= 0 && idx < len(labels) {
			h.LabelChanged(labels[idx])
		} else if rv.logger != nil {
			rv.logger.Error("label selection parse error", "error", err)
		}
	}))

	w, ht := 800, 800
	if rv.cfg != nil {
		w, ht = rv.cfg.CanvasWidth, rv.cfg.CanvasHeight
	}
	rv.lastW, rv.lastH = w, ht
	rv.Canvas = NewCanvasView(1, cols, w, ht, placeholder, h.Canvas)
	rv.Status = NewStatusBar(2, cols)
	GridRowConfigure(App, 1, Weight(1))
	GridColumnConfigure(App, 0, Weight(1))

	rv.Settings = NewSettingsPanel(rv.cfg, rv.cfgPath, rv.logger)
	rv.Region = NewRegionSelector(rv.cfg, rv.cfgPath, rv.logger)

	if h.Key != nil {
		key := func(k annotation.Key) any { return Command(func() { h.Key(k) }) }
		Bind(App, "<KeyPress-i>", key(annotation.KeyCorrection))
		Bind(App, "<KeyPress-I>", key(annotation.KeyCorrection))
		Bind(App, "<Escape>", key(annotation.KeyLabeling))
		Bind(App, "<Delete>", key(annotation.KeyDelete))
		Bind(App, "<Control-z>", key(annotation.KeyUndo))
		Bind(App, "<Control-y>", key(annotation.KeyRedo))
	}
	if h.Resized != nil {
		Bind(App, "<Configure>", Command(func() { rv.checkResize(h.Resized) }))
	}
}

// checkResize derives the canvas size from the window geometry and reports
// it when it changed.
func (rv *RootView) checkResize(fn func(w, h int)) {
	r, ok := parseGeometry(WmGeometry(App))
	if !ok {
		return
	}
	w, h := r.Dx()-chromeW, r.Dy()-chromeH
	if w < 50 || h < 50 || (w == rv.lastW && h == rv.lastH) {
		return
	}
	rv.lastW, rv.lastH = w, h
	fn(w, h)
}

// ShowImage proxies to the canvas view.
func (rv *RootView) ShowImage(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.ShowImage(img)
	}
}

// SetCursor proxies to the canvas view.
func (rv *RootView) SetCursor(c annotation.Cursor) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.SetCursor(c)
	}
}

func (rv *RootView) SetMode(text string, correction bool) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetMode(text, correction)
	}
}

func (rv *RootView) SetCount(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetCount(text)
	}
}

func (rv *RootView) SetDocument(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetDocument(text)
	}
}

func (rv *RootView) SetDetection(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetDetection(text)
	}
}
