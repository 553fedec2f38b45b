package presenter

import (
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/soocke/boxlabel-go/domain/annotation"
	"github.com/soocke/boxlabel-go/domain/imageio"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newEditor(t *testing.T, canvas annotation.Size) *annotation.Editor {
	t.Helper()
	labels, err := annotation.NewLabelSet([]string{"Ship", "Buoy"}, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	e, err := annotation.NewEditor(labels, canvas, annotation.Options{}, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := imageio.Save(image.NewNRGBA(image.Rect(0, 0, w, h)), p, 0); err != nil {
		t.Fatal(err)
	}
	return p
}

type fakeCanvas struct {
	shown   []image.Image
	cursors []annotation.Cursor
}

func (v *fakeCanvas) ShowImage(img image.Image)     { v.shown = append(v.shown, img) }
func (v *fakeCanvas) SetCursor(c annotation.Cursor) { v.cursors = append(v.cursors, c) }
