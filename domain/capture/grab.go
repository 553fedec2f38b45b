//go:build !windows

package capture

import (
	"image"

	"github.com/pkg/errors"
	"github.com/vova616/screenshot"
)

// Grab returns a capture of the primary screen.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, errors.Wrap(err, "capture screen")
	}
	return img, nil
}

// GrabSelection captures sel clipped to the screen bounds.
func GrabSelection(sel image.Rectangle) (*image.RGBA, error) {
	if sel.Empty() {
		return nil, errors.New("capture: empty selection")
	}
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, errors.Wrap(err, "query screen rect")
	}
	r := sel.Intersect(screen)
	if r.Empty() {
		return nil, errors.Errorf("capture: selection out of bounds sel=%v screen=%v", sel, screen)
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, errors.Wrapf(err, "capture rect %v", r)
	}
	return img, nil
}
