package annotation

import (
	"image"

	"github.com/google/uuid"
)

// BoxID identifies a box for its whole lifetime. IDs are never reused.
type BoxID string

// NewBoxID returns a fresh random identifier.
func NewBoxID() BoxID { return BoxID(uuid.NewString()) }

// Ratio is a pair of canvas-relative fractions.
type Ratio struct {
	X, Y float64
}

// Box is a labeled rectangle in canvas space. W and H are never negative.
//
// PosRatio and SizeRatio hold the canvas-relative geometry captured at the
// last commit; they are meaningless until Committed is true.
type Box struct {
	ID        BoxID
	X, Y      int
	W, H      int
	Label     string
	PosRatio  Ratio
	SizeRatio Ratio
	Committed bool
}

// NewBox creates an uncommitted zero-size box at p.
func NewBox(p image.Point, label string) Box {
	return Box{ID: NewBoxID(), X: p.X, Y: p.Y, Label: label}
}

// Rect returns the half-open pixel rectangle covered by the box.
func (b Box) Rect() image.Rectangle { return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H) }

// Area returns W*H.
func (b Box) Area() int { return b.W * b.H }

// Min returns the top-left corner.
func (b Box) Min() image.Point { return image.Pt(b.X, b.Y) }

// setRect replaces the geometry with the canonical form of r.
func (b *Box) setRect(r image.Rectangle) {
	r = r.Canon()
	b.X, b.Y = r.Min.X, r.Min.Y
	b.W, b.H = r.Dx(), r.Dy()
}
