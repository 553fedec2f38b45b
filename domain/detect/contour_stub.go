//go:build !gocv

package detect

import (
	"log/slog"

	"github.com/pkg/errors"
)

// ErrNoOpenCV is returned for the contour backend in builds without the gocv tag.
var ErrNoOpenCV = errors.New("contour detector requires building with -tags gocv")

// NewContourDetector reports that OpenCV support was not compiled in.
func NewContourDetector(int, bool, *slog.Logger) (Detector, error) {
	return nil, ErrNoOpenCV
}
