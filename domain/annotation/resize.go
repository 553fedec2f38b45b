package annotation

import "image"

// Resize moves the free side(s) of b selected by h to the pointer p, clipped
// to canvas. The opposite side on each active axis is the anchor and stays
// fixed. When the pointer crosses an anchor the axis collapses to zero
// length at the anchor and its handle component flips, so the next event
// grows the box from the other side. The returned handle carries any flips.
func Resize(b Box, h Handle, p image.Point, canvas Size) (Box, Handle) {
	if h == HandleNone {
		return b, h
	}
	p = canvas.Clip(p)

	lo, hi := b.X, b.X+b.W
	switch h.Horizontal() {
	case HandleLeft:
		lo, hi, h = resizeAxis(lo, hi, p.X, false, h, Handle.FlipHorizontal)
	case HandleRight:
		lo, hi, h = resizeAxis(lo, hi, p.X, true, h, Handle.FlipHorizontal)
	}
	b.X, b.W = lo, hi-lo

	lo, hi = b.Y, b.Y+b.H
	switch h.Vertical() {
	case HandleTop:
		lo, hi, h = resizeAxis(lo, hi, p.Y, false, h, Handle.FlipVertical)
	case HandleBottom:
		lo, hi, h = resizeAxis(lo, hi, p.Y, true, h, Handle.FlipVertical)
	}
	b.Y, b.H = lo, hi-lo
	return b, h
}

// resizeAxis applies the anchor/free rule along one axis. freeHigh selects
// whether the free side is hi (Right/Bottom) or lo (Left/Top).
func resizeAxis(lo, hi, v int, freeHigh bool, h Handle, flip func(Handle) Handle) (int, int, Handle) {
	if freeHigh {
		if v < lo {
			return lo, lo, flip(h)
		}
		return lo, v, h
	}
	if v > hi {
		return hi, hi, flip(h)
	}
	return v, hi, h
}
