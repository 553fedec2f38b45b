package annotation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestToExportRects_Rounding(t *testing.T) {
	boxes := []Box{
		{Label: "Ship", PosRatio: Ratio{X: 0.1, Y: 0.2}, SizeRatio: Ratio{X: 0.05, Y: 0.05}, Committed: true},
		{Label: "Buoy", PosRatio: Ratio{X: 0.9, Y: 0.9}, SizeRatio: Ratio{X: 0.1, Y: 0.1}, Committed: true},
		{Label: "Other", PosRatio: Ratio{X: 0.1234, Y: 0.5678}, SizeRatio: Ratio{X: 0.01, Y: 0.01}, Committed: true},
		{Label: "Ship", X: 1, Y: 1, W: 100, H: 100},
	}
	got, err := ToExportRects(boxes, 1000, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ExportRect{
		{XMin: 100, YMin: 100, XMax: 150, YMax: 125, Label: "Ship"},
		{XMin: 900, YMin: 450, XMax: 999, YMax: 499, Label: "Buoy"},
		{XMin: 123, YMin: 283, XMax: 134, YMax: 289, Label: "Other"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestToExportRects_InvalidTarget(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		_, err := ToExportRects(nil, dims[0], dims[1])
		if !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("%v: expected ErrInvalidTarget, got %v", dims, err)
		}
	}
}
