package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/boxlabel-go/assets"
	"github.com/soocke/boxlabel-go/config"
	"github.com/soocke/boxlabel-go/domain/annotation"
	"github.com/soocke/boxlabel-go/domain/capture"
	"github.com/soocke/boxlabel-go/ui/theme"
	"github.com/soocke/boxlabel-go/ui/view"
)

const (
	tick = 50 * time.Millisecond
)

type app struct {
	c       *AppContainer
	initial string
	afterID string
}

// NewApp prepares the main window. initial is an image or folder opened once
// the UI is built; it may be empty.
func NewApp(title string, c *AppContainer, initial string) *app {
	a := &app{c: c, initial: initial}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	w, h := 800, 800
	if c != nil && c.Config != nil {
		w, h = c.Config.CanvasWidth, c.Config.CanvasHeight
	}
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", w+8, h+76))
	return a
}

func (a *app) Start() {
	if a.c == nil {
		return
	}
	theme.Apply(a.c.Config.DarkMode)
	placeholder, err := assets.PlaceholderImage()
	if err != nil {
		a.logError("placeholder", err)
	}
	ed := a.c.EditorPresenter
	a.c.RootView.Build(a.c.Labels.Names(), a.c.Editor.Label(), placeholder, view.Handlers{
		Open:       a.open,
		OpenFolder: a.openFolder,
		Prev:       func() { a.navigate(-1) },
		Next:       func() { a.navigate(1) },
		Save:       a.save,
		Detect:     a.detect,
		Grab:       a.grab,
		GrabRegion: func() { a.c.RootView.Region.OpenOrFocus() },
		Undo:       func() { ed.Key(annotation.KeyUndo) },
		Redo:       func() { ed.Key(annotation.KeyRedo) },
		Settings:   func() { a.c.RootView.Settings.OpenOrFocus(a.settingsApplied) },
		Theme:      a.toggleTheme,
		Exit:       a.exitHandler,
		LabelChanged: func(label string) {
			ed.SetLabel(label)
		},
		Key:     func(k annotation.Key) { ed.Key(k) },
		Resized: ed.CanvasResized,
		Canvas: view.CanvasHandlers{
			PointerDown: ed.PointerDown,
			PointerMove: ed.PointerMove,
			PointerUp:   ed.PointerUp,
			Relabel:     func(x, y int) { ed.RelabelAt(x, y, a.c.Editor.Label()) },
			Delete:      func(x, y int) { ed.DeleteAt(x, y) },
		},
	})
	a.c.Loop.Schedule = a.scheduleUpdate

	if a.initial != "" {
		a.openPath(a.initial)
	}

	// Kick off update loop.
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) openPath(path string) {
	fi, err := os.Stat(path)
	if err != nil {
		a.fail("Cannot open "+filepath.Base(path), err)
		return
	}
	if fi.IsDir() {
		err = a.c.EditorPresenter.OpenFolder(path)
	} else {
		err = a.c.EditorPresenter.Open(path)
	}
	if err != nil {
		a.fail("Cannot open "+filepath.Base(path), err)
	}
}

func (a *app) open() {
	files := GetOpenFile(Title("Open image"))
	if len(files) == 0 || files[0] == "" {
		return
	}
	if !a.saveIfDirty() {
		return
	}
	a.openPath(files[0])
}

func (a *app) openFolder() {
	dir := ChooseDirectory(Title("Open folder"))
	if dir == "" {
		return
	}
	if !a.saveIfDirty() {
		return
	}
	a.openPath(dir)
}

func (a *app) navigate(delta int) {
	moved, err := a.c.EditorPresenter.Navigate(delta)
	switch {
	case err != nil:
		a.fail("Navigation failed", err)
	case !moved:
		a.c.StatusPresenter.Notify("No more images")
	}
}

func (a *app) save() {
	if err := a.c.EditorPresenter.Save(); err != nil {
		a.fail("Save failed", err)
		return
	}
	a.c.StatusPresenter.Notify("Saved " + filepath.Base(a.c.EditorPresenter.AnnotationPath()))
}

// saveIfDirty keeps unsaved edits before the document is replaced. It
// returns false when saving failed and the replacement should not happen.
func (a *app) saveIfDirty() bool {
	if !a.c.Document.Dirty() {
		return true
	}
	if err := a.c.EditorPresenter.Save(); err != nil {
		a.fail("Save failed", err)
		return false
	}
	return true
}

func (a *app) detect() {
	if !a.c.DetectionPresenter.Run() {
		a.c.StatusPresenter.Notify("Auto-label unavailable")
	}
}

// grab captures the configured region and opens the frame as a new document.
func (a *app) grab() {
	sel := a.c.Config.GrabRect()
	if r := a.c.RootView.Region.ActiveRect(); r != nil {
		sel = *r
	}
	frame, err := capture.NewRecorder(nil, 0, sel, a.c.Logger).Capture()
	if err != nil {
		a.fail("Grab failed", err)
		return
	}
	if !a.saveIfDirty() {
		return
	}
	dir := a.grabDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		a.fail("Grab failed", err)
		return
	}
	name := fmt.Sprintf("grab_%s_%04d.png", frame.CapturedAt.Format("20060102_150405"), frame.Sequence)
	if err := a.c.EditorPresenter.OpenImage(frame.Image, filepath.Join(dir, name)); err != nil {
		a.fail("Grab failed", err)
	}
}

// grabDir is the output directory, the current document's folder or ./grabs.
func (a *app) grabDir() string {
	if a.c.Config.OutputDir != "" {
		return a.c.Config.OutputDir
	}
	if p := a.c.Document.Path(); p != "" {
		return filepath.Dir(p)
	}
	return "grabs"
}

func (a *app) settingsApplied(cfg *config.Config) {
	a.c.EditorPresenter.SetOverlay(overlayOptions(cfg))
	if !a.c.ReloadDetector() {
		a.c.StatusPresenter.Notify("Detector change applies after the current run")
	}
}

// toggleTheme switches light/dark and remembers the choice in the config file.
func (a *app) toggleTheme() {
	a.c.Config.DarkMode = theme.Toggle()
	if a.c.ConfigPath == "" {
		return
	}
	if err := a.c.Config.Save(a.c.ConfigPath); err != nil {
		a.logError("save config", err)
	}
}

func (a *app) update() {
	a.c.Loop.Tick()
}

func (a *app) exitHandler() {
	if a.c != nil && a.c.Document.Dirty() {
		if err := a.c.EditorPresenter.Save(); err != nil {
			a.logError("save on exit", err)
		}
	}
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, a.update)
}

func (a *app) fail(notice string, err error) {
	a.c.StatusPresenter.Notify(notice)
	a.logError(notice, err)
}

func (a *app) logError(msg string, err error) {
	if a.c != nil && a.c.Logger != nil {
		a.c.Logger.Error(msg, "error", err)
	}
}
