package annotation

import "image"

// DefaultTolerance is the default thickness of handle hot zones in pixels.
const DefaultTolerance = 10

// Hit is the classification of a point against a single box.
type Hit struct {
	Handle Handle
	Inside bool
}

// OnHandle reports whether the point landed on a resize grip.
func (h Hit) OnHandle() bool { return h.Handle != HandleNone }

// HitTester classifies pointer positions against box handle zones.
// Zones lie inside the box border: corners are T x T squares, edges span
// the border between the two corner zones.
type HitTester struct {
	Tolerance int
}

// NewHitTester returns a tester using t, or DefaultTolerance when t < 1.
func NewHitTester(t int) HitTester {
	if t < 1 {
		t = DefaultTolerance
	}
	return HitTester{Tolerance: t}
}

type zone struct {
	handle Handle
	rect   func(b Box, t int) image.Rectangle
}

// zones are probed in this order; the first match wins where corner zones
// of a narrow box overlap.
var zones = [...]zone{
	{HandleTopLeft, func(b Box, t int) image.Rectangle { return span(b.X, b.Y, b.X+t, b.Y+t) }},
	{HandleTop, func(b Box, t int) image.Rectangle { return span(b.X+t, b.Y, b.X+b.W-t, b.Y+t) }},
	{HandleTopRight, func(b Box, t int) image.Rectangle { return span(b.X+b.W-t, b.Y, b.X+b.W, b.Y+t) }},
	{HandleRight, func(b Box, t int) image.Rectangle {
		return span(b.X+b.W-t, b.Y+t, b.X+b.W, b.Y+b.H-t)
	}},
	{HandleBottomRight, func(b Box, t int) image.Rectangle {
		return span(b.X+b.W-t, b.Y+b.H-t, b.X+b.W, b.Y+b.H)
	}},
	{HandleBottom, func(b Box, t int) image.Rectangle {
		return span(b.X+t, b.Y+b.H-t, b.X+b.W-t, b.Y+b.H)
	}},
	{HandleBottomLeft, func(b Box, t int) image.Rectangle { return span(b.X, b.Y+b.H-t, b.X+t, b.Y+b.H) }},
	{HandleLeft, func(b Box, t int) image.Rectangle { return span(b.X, b.Y+t, b.X+t, b.Y+b.H-t) }},
}

// span builds a rectangle without canonicalising it, so a zone whose far
// side falls before its near side stays empty.
func span(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rectangle{Min: image.Pt(x0, y0), Max: image.Pt(x1, y1)}
}

// HandleAt returns the handle whose zone contains p, or HandleNone.
func (t HitTester) HandleAt(b Box, p image.Point) Handle {
	tol := t.Tolerance
	if tol < 1 {
		tol = DefaultTolerance
	}
	bounds := b.Rect()
	for _, z := range zones {
		// Zones are trimmed to the box; edge zones of a narrow box come out empty.
		if p.In(z.rect(b, tol).Intersect(bounds)) {
			return z.handle
		}
	}
	return HandleNone
}

// Contains reports whether p lies in [x, x+w) x [y, y+h).
func (t HitTester) Contains(b Box, p image.Point) bool { return p.In(b.Rect()) }

// Classify runs the handle test first, then the interior test.
func (t HitTester) Classify(b Box, p image.Point) Hit {
	return Hit{Handle: t.HandleAt(b, p), Inside: t.Contains(b, p)}
}
