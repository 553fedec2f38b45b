package annotation

import (
	"image"
	"log/slog"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Editor is the pointer-driven box editing state machine. It owns the store
// and all edit state and must be driven from a single goroutine.
type Editor struct {
	logger        *slog.Logger
	store         *Store
	labels        *LabelSet
	tester        HitTester
	history       *History
	areaThreshold int

	canvas    Size
	mode      Mode
	op        Operation
	label     string
	selected  BoxID
	before    []Box
	revision  uint64
	listeners []ModeListener
}

// NewEditor returns an editor in Labeling mode with an empty store.
func NewEditor(labels *LabelSet, canvas Size, opts Options, logger *slog.Logger) (*Editor, error) {
	if labels == nil {
		return nil, errors.New("editor needs a label set")
	}
	if opts.AreaThreshold <= 0 {
		opts.AreaThreshold = DefaultAreaThreshold
	}
	return &Editor{
		logger:        logger,
		store:         NewStore(),
		labels:        labels,
		tester:        NewHitTester(opts.Tolerance),
		history:       NewHistory(opts.HistoryDepth),
		areaThreshold: opts.AreaThreshold,
		canvas:        canvas,
		mode:          ModeLabeling,
		label:         labels.Default(),
	}, nil
}

func (e *Editor) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

// Store exposes the box collection for read access.
func (e *Editor) Store() *Store { return e.store }

// Labels returns the configured label set.
func (e *Editor) Labels() *LabelSet { return e.labels }

func (e *Editor) Mode() Mode           { return e.mode }
func (e *Editor) Operation() Operation { return e.op }
func (e *Editor) Canvas() Size         { return e.canvas }
func (e *Editor) Label() string        { return e.label }
func (e *Editor) Selected() BoxID      { return e.selected }
func (e *Editor) CanUndo() bool        { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool        { return e.history.CanRedo() }

// Revision increases with every committed change to the store, including
// undo and redo. Callers compare it to detect unsaved edits.
func (e *Editor) Revision() uint64 { return e.revision }

// ClearHistory drops undo and redo state, e.g. after loading saved boxes.
func (e *Editor) ClearHistory() { e.history.Clear() }

// AddModeListener registers an observer for mode transitions.
func (e *Editor) AddModeListener(l ModeListener) {
	if e == nil || l == nil {
		return
	}
	e.listeners = append(e.listeners, l)
}

// AddCountListener registers an observer for box count changes.
func (e *Editor) AddCountListener(l CountListener) {
	if e == nil {
		return
	}
	e.store.AddListener(l)
}

// PointerDown starts a gesture according to the current mode.
func (e *Editor) PointerDown(p image.Point) Cursor {
	if e == nil || !e.canvas.Valid() {
		return CursorDefault
	}
	if e.op.Active() {
		return e.cursorForOp()
	}
	switch e.mode {
	case ModeLabeling:
		origin := e.canvas.Clip(p)
		e.before = e.store.All()
		b := NewBox(origin, e.label)
		e.store.InsertFront(b)
		e.setOp(Operation{Kind: OpDrawing, Box: b.ID, Origin: origin})
		return CursorCrosshair
	case ModeCorrection:
		if idx, h := e.store.FindTopmostHandle(e.tester, p); idx >= 0 {
			b, _ := e.store.Get(idx)
			e.before = e.store.All()
			e.selected = b.ID
			e.setOp(Operation{Kind: OpResizing, Box: b.ID, Handle: h})
			return h.Cursor()
		}
		if idx := e.store.FindTopmostInterior(e.tester, p); idx >= 0 {
			b, _ := e.store.Get(idx)
			e.before = e.store.All()
			e.selected = b.ID
			e.setOp(Operation{Kind: OpMoving, Box: b.ID, Offset: p.Sub(b.Min())})
			return CursorMove
		}
		e.selected = ""
	}
	return CursorDefault
}

// PointerMove updates the active gesture, or reports hover affordance.
func (e *Editor) PointerMove(p image.Point) Cursor {
	if e == nil || !e.canvas.Valid() {
		return CursorDefault
	}
	if !e.op.Active() {
		if e.mode == ModeCorrection {
			_, h := e.store.FindTopmostHandle(e.tester, p)
			return h.Cursor()
		}
		return CursorDefault
	}
	idx := e.store.IndexOf(e.op.Box)
	b, ok := e.store.Get(idx)
	if !ok {
		e.debug("active box vanished", "box", e.op.Box)
		e.setOp(Operation{})
		return CursorDefault
	}
	switch e.op.Kind {
	case OpDrawing:
		b.setRect(image.Rectangle{Min: e.op.Origin, Max: e.canvas.Clip(p)})
	case OpResizing:
		var h Handle
		b, h = Resize(b, e.op.Handle, p, e.canvas)
		if h != e.op.Handle {
			e.debug("resize handle flipped", "box", b.ID, "from", e.op.Handle.String(), "to", h.String())
			e.op.Handle = h
		}
	case OpMoving:
		np := p.Sub(e.op.Offset)
		b.X = clamp(np.X, 0, e.canvas.W-b.W)
		b.Y = clamp(np.Y, 0, e.canvas.H-b.H)
	}
	e.store.Set(idx, b)
	return e.cursorForOp()
}

// PointerUp commits the active gesture.
func (e *Editor) PointerUp(image.Point) Cursor {
	if e == nil || !e.op.Active() {
		return CursorDefault
	}
	op := e.op
	e.setOp(Operation{})
	idx := e.store.IndexOf(op.Box)
	b, ok := e.store.Get(idx)
	if !ok {
		return CursorDefault
	}
	switch op.Kind {
	case OpDrawing:
		if b.Area() < e.areaThreshold {
			e.store.RemoveAt(idx)
			e.debug("drawn box discarded", "box", b.ID, "w", b.W, "h", b.H)
			return CursorDefault
		}
		CommitRatios(&b, e.canvas)
		e.store.Set(idx, b)
		e.store.notifyCount()
		e.debug("box committed", "box", b.ID, "rect", b.Rect().String(), "label", b.Label)
	case OpResizing:
		if b.Area() < e.areaThreshold {
			e.store.RemoveAt(idx)
			if e.selected == b.ID {
				e.selected = ""
			}
			e.debug("resized box removed", "box", b.ID, "w", b.W, "h", b.H)
			break
		}
		CommitRatios(&b, e.canvas)
		e.store.Set(idx, b)
		e.debug("box resized", "box", b.ID, "rect", b.Rect().String())
	case OpMoving:
		CommitPosition(&b, e.canvas)
		e.store.Set(idx, b)
		e.debug("box moved", "box", b.ID, "rect", b.Rect().String())
	}
	e.recordIfChanged()
	return CursorDefault
}

// record pushes an undo snapshot and bumps the revision.
func (e *Editor) record(before []Box) {
	e.history.Record(before)
	e.revision++
}

func (e *Editor) recordIfChanged() {
	after := e.store.All()
	if !slices.Equal(e.before, after) {
		e.record(e.before)
	}
	e.before = nil
}

func (e *Editor) cursorForOp() Cursor {
	switch e.op.Kind {
	case OpDrawing:
		return CursorCrosshair
	case OpResizing:
		return e.op.Handle.Cursor()
	case OpMoving:
		return CursorMove
	default:
		return CursorDefault
	}
}

func (e *Editor) setOp(op Operation) {
	if op.Kind != e.op.Kind {
		e.debug("edit state transition",
			"from", e.mode.String()+"."+e.op.Kind.String(),
			"to", e.mode.String()+"."+op.Kind.String())
	}
	e.op = op
}

// SetMode switches between Labeling and Correction. It is rejected while a
// gesture is active.
func (e *Editor) SetMode(m Mode) bool {
	if e == nil || e.op.Active() {
		return false
	}
	if m != ModeLabeling && m != ModeCorrection {
		return false
	}
	prev := e.mode
	if prev == m {
		return true
	}
	e.mode = m
	if m == ModeLabeling {
		e.selected = ""
	}
	e.debug("edit mode transition", "from", prev.String(), "to", m.String())
	for _, l := range e.listeners {
		l(prev, m)
	}
	return true
}

// HandleKey applies a keyboard command. Commands are ignored mid-gesture.
func (e *Editor) HandleKey(k Key) bool {
	if e == nil || e.op.Active() {
		return false
	}
	switch k {
	case KeyCorrection:
		return e.SetMode(ModeCorrection)
	case KeyLabeling:
		return e.SetMode(ModeLabeling)
	case KeyDelete:
		if e.mode != ModeCorrection {
			return false
		}
		return e.DeleteSelected()
	case KeyUndo:
		return e.Undo()
	case KeyRedo:
		return e.Redo()
	}
	return false
}

// SetLabel chooses the label for subsequently drawn boxes.
func (e *Editor) SetLabel(label string) bool {
	if e == nil || !e.labels.Contains(label) {
		return false
	}
	e.label = label
	return true
}

// RelabelAt changes the label of the topmost box containing p.
func (e *Editor) RelabelAt(p image.Point, label string) bool {
	if e == nil || e.op.Active() || !e.labels.Contains(label) {
		return false
	}
	idx := e.store.FindTopmostInterior(e.tester, p)
	b, ok := e.store.Get(idx)
	if !ok || b.Label == label {
		return false
	}
	e.record(e.store.All())
	b.Label = label
	e.store.Set(idx, b)
	e.debug("box relabeled", "box", b.ID, "label", label)
	return true
}

// DeleteAt removes the topmost box containing p.
func (e *Editor) DeleteAt(p image.Point) bool {
	if e == nil || e.op.Active() {
		return false
	}
	return e.deleteIndex(e.store.FindTopmostInterior(e.tester, p))
}

// DeleteSelected removes the box picked by the last Correction press.
func (e *Editor) DeleteSelected() bool {
	if e == nil || e.op.Active() || e.selected == "" {
		return false
	}
	return e.deleteIndex(e.store.IndexOf(e.selected))
}

func (e *Editor) deleteIndex(idx int) bool {
	b, ok := e.store.Get(idx)
	if !ok {
		return false
	}
	e.record(e.store.All())
	e.store.RemoveAt(idx)
	if e.selected == b.ID {
		e.selected = ""
	}
	e.debug("box deleted", "box", b.ID)
	return true
}

// Undo restores the store to before the last committed change.
func (e *Editor) Undo() bool {
	if e == nil || e.op.Active() {
		return false
	}
	prev, ok := e.history.Undo(e.store.All())
	if !ok {
		return false
	}
	e.restore(prev)
	return true
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() bool {
	if e == nil || e.op.Active() {
		return false
	}
	next, ok := e.history.Redo(e.store.All())
	if !ok {
		return false
	}
	e.restore(next)
	return true
}

// restore swaps in a snapshot, rebuilding geometry for the current canvas
// since it may have been resized after the snapshot was taken.
func (e *Editor) restore(boxes []Box) {
	e.revision++
	boxes = slices.Clone(boxes)
	for i := range boxes {
		Reapply(&boxes[i], e.canvas)
	}
	e.store.ReplaceAll(boxes)
	if e.store.IndexOf(e.selected) < 0 {
		e.selected = ""
	}
}

// OnCanvasResized reapplies committed ratios against the new canvas size.
// Gesture anchors are rescaled so an active gesture stays inside the canvas;
// other uncommitted boxes keep their pixel geometry.
func (e *Editor) OnCanvasResized(canvas Size) {
	if e == nil || !canvas.Valid() || canvas == e.canvas {
		return
	}
	e.debug("canvas resized", "from", e.canvas.String(), "to", canvas.String())
	prev := e.canvas
	e.canvas = canvas
	for i := 0; i < e.store.Count(); i++ {
		b, _ := e.store.Get(i)
		if Reapply(&b, canvas) {
			e.store.Set(i, b)
		}
	}
	if !prev.Valid() {
		return
	}
	switch e.op.Kind {
	case OpDrawing:
		idx := e.store.IndexOf(e.op.Box)
		b, ok := e.store.Get(idx)
		// The free corner is whichever side of the box is not the origin.
		free := image.Pt(b.X+b.W, b.Y+b.H)
		if b.X < e.op.Origin.X {
			free.X = b.X
		}
		if b.Y < e.op.Origin.Y {
			free.Y = b.Y
		}
		e.op.Origin = canvas.Clip(rescalePoint(e.op.Origin, prev, canvas))
		if ok {
			b.setRect(image.Rectangle{Min: e.op.Origin, Max: canvas.Clip(rescalePoint(free, prev, canvas))})
			e.store.Set(idx, b)
		}
	case OpMoving:
		e.op.Offset = rescalePoint(e.op.Offset, prev, canvas)
	}
}

// rescalePoint maps p from canvas from onto canvas to.
func rescalePoint(p image.Point, from, to Size) image.Point {
	return image.Pt(
		scale(float64(p.X)/float64(from.W), to.W),
		scale(float64(p.Y)/float64(from.H), to.H),
	)
}

// ReplaceAll swaps the store contents for proposals expressed in current
// canvas space. Rectangles are cut to the canvas and empty ones dropped;
// every resulting box is committed immediately. Rejected mid-gesture.
func (e *Editor) ReplaceAll(proposals []Proposal) bool {
	if e == nil || e.op.Active() || !e.canvas.Valid() {
		return false
	}
	bounds := e.canvas.Bounds()
	boxes := make([]Box, 0, len(proposals))
	for _, p := range proposals {
		r := p.Rect.Canon().Intersect(bounds)
		if r.Empty() {
			continue
		}
		label := p.Label
		if !e.labels.Contains(label) {
			label = e.labels.Default()
		}
		b := Box{ID: NewBoxID(), Label: label}
		b.setRect(r)
		CommitRatios(&b, e.canvas)
		boxes = append(boxes, b)
	}
	e.record(e.store.All())
	e.store.ReplaceAll(boxes)
	e.selected = ""
	e.debug("boxes replaced", "proposals", len(proposals), "kept", len(boxes))
	return true
}

// Export maps committed boxes into a width x height image.
func (e *Editor) Export(width, height int) ([]ExportRect, error) {
	if e == nil {
		return nil, errors.New("nil editor")
	}
	return ToExportRects(e.store.All(), width, height)
}

// Boxes returns the rendering projection in z-order.
func (e *Editor) Boxes() []BoxView {
	if e == nil {
		return nil
	}
	return lo.Map(e.store.All(), func(b Box, _ int) BoxView {
		return BoxView{
			ID:        b.ID,
			Rect:      b.Rect(),
			Label:     b.Label,
			Color:     e.labels.Color(b.Label),
			Selected:  b.ID == e.selected,
			Committed: b.Committed,
		}
	})
}

// Reset clears all boxes and history for a new image of the given canvas
// size and returns to Labeling with the default label.
func (e *Editor) Reset(canvas Size) {
	if e == nil {
		return
	}
	e.setOp(Operation{})
	e.before = nil
	e.selected = ""
	e.history.Clear()
	if canvas.Valid() {
		e.canvas = canvas
	}
	e.store.ReplaceAll(nil)
	e.label = e.labels.Default()
	e.SetMode(ModeLabeling)
}
