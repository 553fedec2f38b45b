package presenter

import (
	"image"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/soocke/boxlabel-go/domain/annotation"
	"github.com/soocke/boxlabel-go/domain/dataset"
	"github.com/soocke/boxlabel-go/domain/imageio"
	"github.com/soocke/boxlabel-go/ui/images"
	"github.com/soocke/boxlabel-go/ui/model"
)

func newEditorPresenter(t *testing.T) (*EditorPresenter, *annotation.Editor, *model.DocumentModel, *fakeCanvas) {
	t.Helper()
	ed := newEditor(t, annotation.Size{W: 200, H: 100})
	doc := model.NewDocumentModel()
	view := &fakeCanvas{}
	p := NewEditorPresenter(ed, doc, view, images.OverlayOptions{FillAlpha: 80}, "", discardLogger())
	return p, ed, doc, view
}

func TestEditorPresenter_DrawSaveReload(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, "a.png", 400, 200)
	p, ed, doc, view := newEditorPresenter(t)

	if err := p.Open(img); err != nil {
		t.Fatalf("open: %v", err)
	}
	p.Tick()
	if len(view.shown) != 1 {
		t.Fatalf("expected an initial render, got %d", len(view.shown))
	}
	if b := view.shown[0].Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("render should match the canvas, got %v", b)
	}

	p.PointerDown(20, 20)
	p.PointerMove(120, 70)
	p.PointerUp(120, 70)
	p.Tick()
	if !doc.Dirty() {
		t.Fatalf("committed draw should mark the document dirty")
	}
	if len(view.cursors) == 0 || view.cursors[0] != annotation.CursorCrosshair {
		t.Fatalf("expected crosshair cursor while drawing, got %v", view.cursors)
	}

	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if doc.Dirty() {
		t.Fatalf("save should clear the dirty flag")
	}
	saved, err := dataset.ReadFile(p.AnnotationPath())
	if err != nil {
		t.Fatalf("read saved: %v", err)
	}
	want := []annotation.ExportRect{{XMin: 40, YMin: 40, XMax: 240, YMax: 140, Label: "Ship"}}
	if diff := cmp.Diff(want, saved.Rects()); diff != "" {
		t.Fatalf("saved rects (-want +got):\n%s", diff)
	}

	if err := p.Open(img); err != nil {
		t.Fatal(err)
	}
	boxes := ed.Boxes()
	if len(boxes) != 1 || boxes[0].Rect != image.Rect(20, 20, 120, 70) {
		t.Fatalf("saved box should be reloaded, got %+v", boxes)
	}
	if ed.CanUndo() {
		t.Fatalf("reloading must not leave an undo entry")
	}
	p.Tick()
	if doc.Dirty() {
		t.Fatalf("reload must not mark the document dirty")
	}
}

func TestEditorPresenter_NavigateSavesDirty(t *testing.T) {
	dir := t.TempDir()
	first := writePNG(t, dir, "1.png", 200, 100)
	second := writePNG(t, dir, "2.png", 200, 100)
	p, ed, doc, _ := newEditorPresenter(t)
	if err := p.OpenFolder(dir); err != nil {
		t.Fatal(err)
	}
	if doc.Path() != first {
		t.Fatalf("expected first image, got %s", doc.Path())
	}
	p.PointerDown(10, 10)
	p.PointerMove(60, 60)
	p.PointerUp(60, 60)
	p.Tick()

	moved, err := p.Navigate(1)
	if err != nil || !moved {
		t.Fatalf("navigate: %v %v", moved, err)
	}
	if doc.Path() != second || len(ed.Boxes()) != 0 {
		t.Fatalf("expected empty second image, got %s with %d boxes", doc.Path(), len(ed.Boxes()))
	}
	if _, err := os.Stat(imageio.SidecarPath(first, "", "xml")); err != nil {
		t.Fatalf("first image should have been saved: %v", err)
	}
	if moved, _ := p.Navigate(1); moved {
		t.Fatalf("navigate past the end should be a no-op")
	}
}

func TestEditorPresenter_CanvasResize(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, "a.png", 200, 100)
	p, ed, _, view := newEditorPresenter(t)
	if err := p.Open(img); err != nil {
		t.Fatal(err)
	}
	p.PointerDown(20, 20)
	p.PointerMove(120, 70)
	p.PointerUp(120, 70)
	p.CanvasResized(400, 200)
	p.Tick()
	if got := ed.Boxes()[0].Rect; got != image.Rect(40, 40, 240, 140) {
		t.Fatalf("box should scale with the canvas, got %v", got)
	}
	last := view.shown[len(view.shown)-1]
	if b := last.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("render should follow the new canvas, got %v", b)
	}
}

func TestEditorPresenter_IgnoresInputWithoutImage(t *testing.T) {
	p, ed, _, view := newEditorPresenter(t)
	p.PointerDown(10, 10)
	p.PointerUp(80, 80)
	p.Tick()
	if len(ed.Boxes()) != 0 || len(view.shown) != 0 {
		t.Fatalf("input without a document must be ignored")
	}
	if err := p.Save(); err == nil {
		t.Fatalf("save without a document should fail")
	}
}
