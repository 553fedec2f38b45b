package annotation

import (
	"image"
	"testing"
)

func rectOf(b Box) image.Rectangle { return b.Rect() }

func TestResize_BottomRightFlipsThroughAnchor(t *testing.T) {
	canvas := Size{W: 800, H: 600}
	b := Box{X: 100, Y: 100, W: 50, H: 50}

	b, h := Resize(b, HandleBottomRight, image.Pt(80, 70), canvas)
	if h != HandleTopLeft {
		t.Fatalf("expected handle top-left after crossing, got %v", h)
	}
	if b.X != 100 || b.Y != 100 || b.W != 0 || b.H != 0 {
		t.Fatalf("expected collapse at anchor, got %v", rectOf(b))
	}

	b, h = Resize(b, h, image.Pt(60, 50), canvas)
	if h != HandleTopLeft {
		t.Fatalf("handle changed while growing: %v", h)
	}
	if want := image.Rect(60, 50, 100, 100); rectOf(b) != want {
		t.Fatalf("got %v want %v", rectOf(b), want)
	}

	b, _ = Resize(b, h, image.Pt(40, 30), canvas)
	if want := image.Rect(40, 30, 100, 100); rectOf(b) != want {
		t.Fatalf("got %v want %v", rectOf(b), want)
	}
}

func TestResize_EdgeFlipsSingleAxis(t *testing.T) {
	canvas := Size{W: 800, H: 600}
	b := Box{X: 100, Y: 100, W: 50, H: 50}

	b, h := Resize(b, HandleTop, image.Pt(500, 170), canvas)
	if h != HandleBottom {
		t.Fatalf("expected bottom, got %v", h)
	}
	if want := image.Rect(100, 150, 150, 150); rectOf(b) != want {
		t.Fatalf("got %v want %v", rectOf(b), want)
	}
	b, h = Resize(b, h, image.Pt(0, 180), canvas)
	if h != HandleBottom {
		t.Fatalf("expected bottom, got %v", h)
	}
	if want := image.Rect(100, 150, 150, 180); rectOf(b) != want {
		t.Fatalf("got %v want %v", rectOf(b), want)
	}
}

func TestResize_NoNegativeSizeAcrossSweep(t *testing.T) {
	canvas := Size{W: 300, H: 300}
	b := Box{X: 100, Y: 100, W: 50, H: 50}
	h := HandleBottomRight
	for x := 200; x >= 0; x -= 7 {
		b, h = Resize(b, h, image.Pt(x, 300-x), canvas)
		if b.W < 0 || b.H < 0 {
			t.Fatalf("negative size at x=%d: %v", x, rectOf(b))
		}
	}
}

func TestResize_ClipsPointerToCanvas(t *testing.T) {
	canvas := Size{W: 800, H: 600}
	b := Box{X: 100, Y: 100, W: 50, H: 50}
	b, h := Resize(b, HandleBottomRight, image.Pt(900, 900), canvas)
	if h != HandleBottomRight {
		t.Fatalf("unexpected flip %v", h)
	}
	if want := image.Rect(100, 100, 799, 599); rectOf(b) != want {
		t.Fatalf("got %v want %v", rectOf(b), want)
	}
	b, _ = Resize(b, HandleTopLeft, image.Pt(-30, -30), canvas)
	if b.X != 0 || b.Y != 0 {
		t.Fatalf("expected clip to origin, got %v", rectOf(b))
	}
}

func TestResize_NoneHandleIsNoop(t *testing.T) {
	b := Box{X: 1, Y: 2, W: 3, H: 4}
	got, h := Resize(b, HandleNone, image.Pt(100, 100), Size{W: 200, H: 200})
	if got != b || h != HandleNone {
		t.Fatalf("expected unchanged box")
	}
}
