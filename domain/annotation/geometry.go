package annotation

import (
	"fmt"
	"image"
)

// Size is a canvas or image extent in pixels.
type Size struct {
	W, H int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Clip constrains p to the pixel grid [0,W-1]x[0,H-1].
func (s Size) Clip(p image.Point) image.Point {
	return image.Pt(clamp(p.X, 0, s.W-1), clamp(p.Y, 0, s.H-1))
}

// Bounds returns the canvas rectangle anchored at the origin.
func (s Size) Bounds() image.Rectangle { return image.Rect(0, 0, s.W, s.H) }

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
