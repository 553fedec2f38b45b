package imageio

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsImageFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.JPG": true, "b.webp": true, "c.png": true, "d.xml": false, "noext": false,
	} {
		if got := IsImageFile(name); got != want {
			t.Fatalf("IsImageFile(%q) = %v", name, got)
		}
	}
}

func TestSaveLoadListImages(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	for _, name := range []string{"b.png", "a.jpg", "c.webp"} {
		if err := Save(img, filepath.Join(dir, name), 0); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "a.xml"), []byte("<x/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ListImages(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.png"), filepath.Join(dir, "c.webp")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list (-want +got):\n%s", diff)
	}
	for _, p := range got {
		loaded, err := Load(p)
		if err != nil {
			t.Fatalf("load %s: %v", p, err)
		}
		if b := loaded.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
			t.Fatalf("%s: unexpected bounds %v", p, b)
		}
	}
}

func TestSidecarPath(t *testing.T) {
	if got := SidecarPath("/data/img/ship.01.jpg", "", "xml"); got != filepath.Join("/data/img", "ship.01.xml") {
		t.Fatalf("got %s", got)
	}
	if got := SidecarPath("/data/img/ship.jpg", "/out", ".xml"); got != filepath.Join("/out", "ship.xml") {
		t.Fatalf("got %s", got)
	}
}
