package assets

import "testing"

func TestDefaultLabels(t *testing.T) {
	got := DefaultLabels()
	if len(got) != 3 || got[0] != "Ship" || got[1] != "Buoy" || got[2] != "Other" {
		t.Fatalf("unexpected labels %v", got)
	}
}

func TestPlaceholderImage(t *testing.T) {
	img, err := PlaceholderImage()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Fatalf("unexpected size %v", b)
	}
}
