package images

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/soocke/boxlabel-go/domain/annotation"
)

// OverlayOptions controls box rendering.
type OverlayOptions struct {
	FillAlpha uint8   // 0 disables the fill
	LineWidth float64 // <= 0 means 2
	Labels    bool    // draw label captions
}

const handleSize = 6

// RenderOverlay draws boxes over base in list order, so the first box (the
// topmost for hit testing) ends up painted last.
func RenderOverlay(base image.Image, boxes []annotation.BoxView, opts OverlayOptions) image.Image {
	if base == nil {
		return nil
	}
	lw := opts.LineWidth
	if lw <= 0 {
		lw = 2
	}
	dc := gg.NewContextForImage(base)
	dc.SetFontFace(basicfont.Face7x13)
	for i := len(boxes) - 1; i >= 0; i-- {
		drawBox(dc, boxes[i], opts, lw)
	}
	return dc.Image()
}

func drawBox(dc *gg.Context, b annotation.BoxView, opts OverlayOptions, lw float64) {
	if b.Rect.Empty() {
		return
	}
	x, y := float64(b.Rect.Min.X), float64(b.Rect.Min.Y)
	w, h := float64(b.Rect.Dx()), float64(b.Rect.Dy())
	c := b.Color

	if opts.FillAlpha > 0 {
		dc.SetColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: opts.FillAlpha})
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
	}

	dc.SetColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	dc.SetLineWidth(lw)
	if b.Committed {
		dc.SetDash()
	} else {
		dc.SetDash(4, 3)
	}
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	dc.SetDash()

	if b.Selected {
		dc.SetColor(color.White)
		for _, p := range handlePoints(b.Rect) {
			dc.DrawRectangle(float64(p.X)-handleSize/2, float64(p.Y)-handleSize/2, handleSize, handleSize)
		}
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	if opts.Labels && b.Label != "" {
		tw, th := dc.MeasureString(b.Label)
		ty := y - th - 4
		if ty < 0 {
			ty = y
		}
		dc.SetColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xd0})
		dc.DrawRectangle(x, ty, tw+4, th+4)
		dc.Fill()
		dc.SetColor(contrastText(c))
		dc.DrawStringAnchored(b.Label, x+2, ty+2, 0, 1)
	}
}

// handlePoints returns the eight grab points of r: corners and edge midpoints.
func handlePoints(r image.Rectangle) []image.Point {
	mx := (r.Min.X + r.Max.X) / 2
	my := (r.Min.Y + r.Max.Y) / 2
	return []image.Point{
		r.Min, {mx, r.Min.Y}, {r.Max.X, r.Min.Y},
		{r.Max.X, my}, r.Max, {mx, r.Max.Y},
		{r.Min.X, r.Max.Y}, {r.Min.X, my},
	}
}

func contrastText(c color.RGBA) color.Color {
	// Rec. 601 luma
	if 299*int(c.R)+587*int(c.G)+114*int(c.B) > 128*1000 {
		return color.Black
	}
	return color.White
}
