package annotation

import (
	"image"
	"testing"
)

func TestHitTester_Classify(t *testing.T) {
	tester := NewHitTester(10)
	b := Box{X: 100, Y: 100, W: 50, H: 40}
	cases := []struct {
		name   string
		p      image.Point
		handle Handle
		inside bool
	}{
		{"top-left corner", image.Pt(100, 100), HandleTopLeft, true},
		{"top-left corner inner edge", image.Pt(109, 109), HandleTopLeft, true},
		{"top edge", image.Pt(120, 105), HandleTop, true},
		{"top-right corner", image.Pt(145, 101), HandleTopRight, true},
		{"right edge", image.Pt(149, 120), HandleRight, true},
		{"bottom-right corner", image.Pt(149, 139), HandleBottomRight, true},
		{"bottom edge", image.Pt(125, 135), HandleBottom, true},
		{"bottom-left corner", image.Pt(104, 131), HandleBottomLeft, true},
		{"left edge", image.Pt(100, 115), HandleLeft, true},
		{"interior", image.Pt(125, 120), HandleNone, true},
		{"right boundary is exclusive", image.Pt(150, 120), HandleNone, false},
		{"bottom boundary is exclusive", image.Pt(120, 140), HandleNone, false},
		{"outside", image.Pt(10, 10), HandleNone, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tester.Classify(b, tc.p)
			if got.Handle != tc.handle || got.Inside != tc.inside {
				t.Fatalf("Classify(%v) = {%v %v}, want {%v %v}", tc.p, got.Handle, got.Inside, tc.handle, tc.inside)
			}
		})
	}
}

func TestHitTester_NarrowBoxPrefersEarlierCorner(t *testing.T) {
	tester := NewHitTester(10)
	b := Box{X: 0, Y: 0, W: 15, H: 15}
	// (7,2) lies in both the top-left and top-right corner squares.
	if h := tester.HandleAt(b, image.Pt(7, 2)); h != HandleTopLeft {
		t.Fatalf("expected top-left, got %v", h)
	}
	if h := tester.HandleAt(b, image.Pt(12, 2)); h != HandleTopRight {
		t.Fatalf("expected top-right, got %v", h)
	}
	// corner zones never reach past the box.
	if h := tester.HandleAt(b, image.Pt(20, 2)); h != HandleNone {
		t.Fatalf("expected no handle outside narrow box, got %v", h)
	}
}

func TestHitTester_ZeroSizeBoxHasNoZones(t *testing.T) {
	tester := NewHitTester(0)
	if tester.Tolerance != DefaultTolerance {
		t.Fatalf("expected default tolerance, got %d", tester.Tolerance)
	}
	b := Box{X: 50, Y: 50}
	if hit := tester.Classify(b, image.Pt(50, 50)); hit.OnHandle() || hit.Inside {
		t.Fatalf("zero-size box should not be hit: %+v", hit)
	}
}

func TestHandle_Flip(t *testing.T) {
	if got := HandleBottomRight.FlipVertical().FlipHorizontal(); got != HandleTopLeft {
		t.Fatalf("bottom-right flipped both ways = %v", got)
	}
	if got := HandleRight.FlipVertical(); got != HandleRight {
		t.Fatalf("mid vertical component must not flip, got %v", got)
	}
	if got := HandleTop.FlipHorizontal(); got != HandleTop {
		t.Fatalf("mid horizontal component must not flip, got %v", got)
	}
	if !HandleTopRight.Corner() || HandleTop.Corner() {
		t.Fatalf("corner detection wrong")
	}
	if HandleTopLeft.Cursor() != CursorResizeNWSE || HandleLeft.Cursor() != CursorResizeEW {
		t.Fatalf("unexpected cursor mapping")
	}
}
