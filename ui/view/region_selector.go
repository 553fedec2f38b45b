package view

import (
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/soocke/boxlabel-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionSelector manages a see-through window the user drags over the part
// of the screen that Grab should capture.
type RegionSelector interface {
	OpenOrFocus()
	Clear()
	ActiveRect() *image.Rectangle
}

const (
	defaultRegionW = 960
	defaultRegionH = 600
)

type regionSelector struct {
	logger    *slog.Logger
	cfg       *config.Config
	cfgPath   string
	selection atomic.Value // stores image.Rectangle
	win       *ToplevelWidget
}

// NewRegionSelector creates a selector seeded from the configured region.
func NewRegionSelector(cfg *config.Config, cfgPath string, logger *slog.Logger) RegionSelector {
	v := &regionSelector{logger: logger, cfg: cfg, cfgPath: cfgPath}
	if r := cfg.GrabRect(); !r.Empty() {
		v.selection.Store(r)
	}
	return v
}

func (v *regionSelector) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Grab Region")
	v.win = win
	geom := fmt.Sprintf("%dx%d+%d+%d", defaultRegionW, defaultRegionH, 100, 100)
	if r := v.ActiveRect(); r != nil {
		geom = fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	}
	WmGeometry(win.Window, geom)
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-transparentcolor", "#008080")
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	left := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	clear := win.Button(Txt("Clear"), Command(v.Clear))
	Grid(clear, In(controls), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

func (v *regionSelector) Clear() {
	v.selection.Store(image.Rectangle{})
	if v.cfg != nil {
		v.cfg.GrabW, v.cfg.GrabH = 0, 0
		v.save()
	}
}

func (v *regionSelector) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	if rect, ok := parseGeometry(geom); ok {
		v.selection.Store(rect)
		if v.cfg != nil {
			v.cfg.GrabX, v.cfg.GrabY = rect.Min.X, rect.Min.Y
			v.cfg.GrabW, v.cfg.GrabH = rect.Dx(), rect.Dy()
			v.save()
		}
		if v.logger != nil {
			v.logger.Info("grab region set", "rect", rect.String())
		}
	}
	v.destroy()
}

func (v *regionSelector) cancel() { v.destroy() }

func (v *regionSelector) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

func (v *regionSelector) ActiveRect() *image.Rectangle {
	rv := v.selection.Load()
	if rv == nil {
		return nil
	}
	r, ok := rv.(image.Rectangle)
	if !ok || r == (image.Rectangle{}) {
		return nil
	}
	return &r
}

func (v *regionSelector) save() {
	if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
		v.logger.Error("config save failed", "error", err)
	}
}
