package presenter

import (
	"image"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/soocke/boxlabel-go/domain/annotation"
	"github.com/soocke/boxlabel-go/domain/dataset"
	"github.com/soocke/boxlabel-go/domain/imageio"
	"github.com/soocke/boxlabel-go/ui/images"
	"github.com/soocke/boxlabel-go/ui/model"
)

// Editor is the subset of the annotation editor driven by the presenters.
type Editor interface {
	PointerDown(image.Point) annotation.Cursor
	PointerMove(image.Point) annotation.Cursor
	PointerUp(image.Point) annotation.Cursor
	HandleKey(annotation.Key) bool
	SetLabel(string) bool
	RelabelAt(image.Point, string) bool
	DeleteAt(image.Point) bool
	OnCanvasResized(annotation.Size)
	ReplaceAll([]annotation.Proposal) bool
	Export(width, height int) ([]annotation.ExportRect, error)
	Boxes() []annotation.BoxView
	Reset(annotation.Size)
	ClearHistory()
	Canvas() annotation.Size
	Revision() uint64
}

// CanvasView displays the rendered canvas and the pointer cursor.
type CanvasView interface {
	ShowImage(img image.Image)
	SetCursor(annotation.Cursor)
}

// EditorPresenter routes canvas input into the editor, renders the overlay
// and owns document load/save.
type EditorPresenter struct {
	editor Editor
	doc    *model.DocumentModel
	view   CanvasView
	opts   images.OverlayOptions
	annDir string
	logger *slog.Logger

	base     image.Image // source stretched to the canvas
	render   bool
	cursor   annotation.Cursor
	revision uint64
}

// NewEditorPresenter returns a presenter. Annotations are written next to
// each image when annDir is empty.
func NewEditorPresenter(editor Editor, doc *model.DocumentModel, view CanvasView, opts images.OverlayOptions, annDir string, logger *slog.Logger) *EditorPresenter {
	return &EditorPresenter{editor: editor, doc: doc, view: view, opts: opts, annDir: annDir, logger: logger}
}

func (p *EditorPresenter) ready() bool {
	return p != nil && p.editor != nil && p.doc != nil
}

func (p *EditorPresenter) setCursor(c annotation.Cursor) {
	if c == p.cursor || p.view == nil {
		return
	}
	p.cursor = c
	p.view.SetCursor(c)
}

// PointerDown forwards a primary-button press in canvas coordinates.
func (p *EditorPresenter) PointerDown(x, y int) {
	if !p.ready() || p.doc.Source() == nil {
		return
	}
	p.setCursor(p.editor.PointerDown(image.Pt(x, y)))
	p.render = true
}

// PointerMove forwards motion, with or without a button held.
func (p *EditorPresenter) PointerMove(x, y int) {
	if !p.ready() || p.doc.Source() == nil {
		return
	}
	p.setCursor(p.editor.PointerMove(image.Pt(x, y)))
	p.render = true
}

// PointerUp forwards a primary-button release.
func (p *EditorPresenter) PointerUp(x, y int) {
	if !p.ready() || p.doc.Source() == nil {
		return
	}
	p.setCursor(p.editor.PointerUp(image.Pt(x, y)))
	p.render = true
}

// Key forwards a keyboard command.
func (p *EditorPresenter) Key(k annotation.Key) bool {
	if !p.ready() {
		return false
	}
	ok := p.editor.HandleKey(k)
	if ok {
		p.render = true
	}
	return ok
}

// SetLabel selects the label for new boxes.
func (p *EditorPresenter) SetLabel(label string) bool {
	if !p.ready() {
		return false
	}
	return p.editor.SetLabel(label)
}

// RelabelAt relabels the box under (x,y).
func (p *EditorPresenter) RelabelAt(x, y int, label string) bool {
	if !p.ready() {
		return false
	}
	ok := p.editor.RelabelAt(image.Pt(x, y), label)
	p.render = p.render || ok
	return ok
}

// DeleteAt removes the box under (x,y).
func (p *EditorPresenter) DeleteAt(x, y int) bool {
	if !p.ready() {
		return false
	}
	ok := p.editor.DeleteAt(image.Pt(x, y))
	p.render = p.render || ok
	return ok
}

// ApplyProposals replaces all boxes with proposals in canvas space.
func (p *EditorPresenter) ApplyProposals(props []annotation.Proposal) bool {
	if !p.ready() {
		return false
	}
	ok := p.editor.ReplaceAll(props)
	p.render = p.render || ok
	return ok
}

// Canvas reports the current canvas size.
func (p *EditorPresenter) Canvas() annotation.Size {
	if !p.ready() {
		return annotation.Size{}
	}
	return p.editor.Canvas()
}

// CanvasResized rescales boxes and the displayed image to a new viewer size.
func (p *EditorPresenter) CanvasResized(w, h int) {
	size := annotation.Size{W: w, H: h}
	if !p.ready() || !size.Valid() || size == p.editor.Canvas() {
		return
	}
	p.editor.OnCanvasResized(size)
	p.rebuildBase()
	p.render = true
}

func (p *EditorPresenter) rebuildBase() {
	src := p.doc.Source()
	c := p.editor.Canvas()
	if src == nil || !c.Valid() {
		p.base = nil
		return
	}
	p.base = images.Stretch(src, c.W, c.H)
}

// SetOverlay changes the overlay styling and re-renders.
func (p *EditorPresenter) SetOverlay(opts images.OverlayOptions) {
	if p == nil {
		return
	}
	p.opts = opts
	p.render = true
}

// AnnotationPath returns where the current document's VOC file lives.
func (p *EditorPresenter) AnnotationPath() string {
	if !p.ready() || p.doc.Path() == "" {
		return ""
	}
	return imageio.SidecarPath(p.doc.Path(), p.annDir, "xml")
}

// Open loads path, replacing the current document. An existing annotation
// file is loaded back into the editor.
func (p *EditorPresenter) Open(path string) error {
	if !p.ready() {
		return errors.New("editor presenter not ready")
	}
	if err := p.doc.Open(path); err != nil {
		return err
	}
	p.load()
	return nil
}

// OpenFolder opens the first image of dir.
func (p *EditorPresenter) OpenFolder(dir string) error {
	if !p.ready() {
		return errors.New("editor presenter not ready")
	}
	if err := p.doc.OpenFolder(dir); err != nil {
		return err
	}
	p.load()
	return nil
}

// OpenImage saves img to path and opens it, for grabbed frames.
func (p *EditorPresenter) OpenImage(img image.Image, path string) error {
	if err := imageio.Save(img, path, 0); err != nil {
		return err
	}
	return p.Open(path)
}

func (p *EditorPresenter) load() {
	p.editor.Reset(p.editor.Canvas())
	p.rebuildBase()
	if ann := p.AnnotationPath(); ann != "" {
		if _, err := os.Stat(ann); err == nil {
			doc, err := dataset.ReadFile(ann)
			if err != nil {
				p.logError("load annotation", err, "path", ann)
			} else if p.editor.ReplaceAll(doc.Proposals(p.editor.Canvas())) {
				p.editor.ClearHistory()
			}
		}
	}
	p.revision = p.editor.Revision()
	p.doc.SetDirty(false)
	p.render = true
	if p.logger != nil {
		p.logger.Info("document opened", "path", p.doc.Path(), "boxes", len(p.editor.Boxes()))
	}
}

// Save writes the committed boxes as VOC XML in source image space.
func (p *EditorPresenter) Save() error {
	if !p.ready() || p.doc.Source() == nil {
		return errors.New("no image loaded")
	}
	w, h := p.doc.SourceSize()
	rects, err := p.editor.Export(w, h)
	if err != nil {
		return err
	}
	path := p.AnnotationPath()
	if err := dataset.WriteFile(path, dataset.NewVOC(p.doc.Path(), w, h, rects)); err != nil {
		return err
	}
	p.doc.SetDirty(false)
	p.revision = p.editor.Revision()
	if p.logger != nil {
		p.logger.Info("annotation saved", "path", path, "objects", len(rects))
	}
	return nil
}

// Navigate saves unsaved edits and opens the image delta steps away in the
// folder. It returns false at either end of the folder.
func (p *EditorPresenter) Navigate(delta int) (bool, error) {
	if !p.ready() {
		return false, nil
	}
	next := p.doc.Step(delta)
	if next == "" {
		return false, nil
	}
	if p.doc.Dirty() {
		if err := p.Save(); err != nil {
			return false, errors.Wrap(err, "save before navigating")
		}
	}
	if err := p.Open(next); err != nil {
		return false, err
	}
	return true, nil
}

// Tick tracks unsaved edits and re-renders when something changed.
func (p *EditorPresenter) Tick() {
	if !p.ready() {
		return
	}
	if rev := p.editor.Revision(); rev != p.revision {
		p.revision = rev
		p.doc.SetDirty(true)
	}
	if !p.render || p.view == nil || p.base == nil {
		return
	}
	p.render = false
	p.view.ShowImage(images.RenderOverlay(p.base, p.editor.Boxes(), p.opts))
}

func (p *EditorPresenter) logError(msg string, err error, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append([]any{"error", err}, args...)...)
	}
}
