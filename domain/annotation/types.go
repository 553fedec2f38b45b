package annotation

import (
	"image"
	"image/color"
)

// Mode selects which gestures are legal.
type Mode int

const (
	ModeLabeling Mode = iota
	ModeCorrection
)

func (m Mode) String() string {
	switch m {
	case ModeLabeling:
		return "Labeling"
	case ModeCorrection:
		return "Correction"
	default:
		return "unknown"
	}
}

// OpKind is the gesture currently in progress.
type OpKind int

const (
	OpNone OpKind = iota
	OpDrawing
	OpResizing
	OpMoving
)

func (k OpKind) String() string {
	switch k {
	case OpNone:
		return "idle"
	case OpDrawing:
		return "drawing"
	case OpResizing:
		return "resizing"
	case OpMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// Operation binds an active gesture to the box it edits.
type Operation struct {
	Kind   OpKind
	Box    BoxID
	Handle Handle      // current handle while resizing
	Offset image.Point // pointer minus box origin while moving
	Origin image.Point // down point while drawing
}

// Active reports whether a gesture is in progress.
func (o Operation) Active() bool { return o.Kind != OpNone }

// ModeListener is called on each successful mode transition.
type ModeListener func(prev, next Mode)

// Key is a keyboard command understood by the editor.
type Key int

const (
	KeyNone Key = iota
	KeyCorrection
	KeyLabeling
	KeyDelete
	KeyUndo
	KeyRedo
)

// Proposal is a candidate rectangle in canvas space, e.g. from a detector.
// An empty or unknown Label means the default label.
type Proposal struct {
	Rect  image.Rectangle
	Label string
	Score float64
}

// BoxView is the read-only rendering projection of a stored box.
type BoxView struct {
	ID        BoxID
	Rect      image.Rectangle
	Label     string
	Color     color.RGBA
	Selected  bool
	Committed bool
}

// Options tunes editor behavior. Zero values select defaults.
type Options struct {
	Tolerance     int
	AreaThreshold int
	HistoryDepth  int
}

// DefaultAreaThreshold is the smallest area in px² a committed box may have.
const DefaultAreaThreshold = 30
