package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. It returns nil for a nil image or
// when encoding fails.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// Stretch resizes src to exactly w x h, ignoring aspect ratio, so canvas
// coordinates map linearly onto source pixels on both axes.
func Stretch(src image.Image, w, h int) *image.NRGBA {
	if src == nil || w < 1 || h < 1 {
		return nil
	}
	if b := src.Bounds(); b.Dx() == w && b.Dy() == h {
		return imaging.Clone(src)
	}
	return imaging.Resize(src, w, h, imaging.Linear)
}
