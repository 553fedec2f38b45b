package annotation

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidTarget is returned when exporting against a non-positive image size.
var ErrInvalidTarget = errors.New("export target must have positive width and height")

// ExportRect is a box in target image pixel space with inclusive corners.
type ExportRect struct {
	XMin, YMin int
	XMax, YMax int
	Label      string
}

// ToExportRects maps committed boxes into a target of width x height pixels
// in store order. Minimum corners are floored and maximum corners ceiled,
// then all are clamped to the last pixel. Uncommitted boxes are skipped.
func ToExportRects(boxes []Box, width, height int) ([]ExportRect, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidTarget, "got %dx%d", width, height)
	}
	w, h := float64(width), float64(height)
	out := make([]ExportRect, 0, len(boxes))
	for _, b := range boxes {
		if !b.Committed {
			continue
		}
		xmin := w * b.PosRatio.X
		ymin := h * b.PosRatio.Y
		xmax := xmin + w*b.SizeRatio.X
		ymax := ymin + h*b.SizeRatio.Y
		out = append(out, ExportRect{
			XMin:  clamp(int(math.Floor(xmin)), 0, width-1),
			YMin:  clamp(int(math.Floor(ymin)), 0, height-1),
			XMax:  clamp(int(math.Ceil(xmax)), 0, width-1),
			YMax:  clamp(int(math.Ceil(ymax)), 0, height-1),
			Label: b.Label,
		})
	}
	return out, nil
}
