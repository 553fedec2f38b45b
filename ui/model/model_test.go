package model

import (
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soocke/boxlabel-go/domain/imageio"
)

func writeImages(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	var out []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := imageio.Save(image.NewNRGBA(image.Rect(0, 0, 12, 8)), p, 0); err != nil {
			t.Fatal(err)
		}
		out = append(out, p)
	}
	return out
}

func TestDocumentModel_FolderNavigation(t *testing.T) {
	dir := t.TempDir()
	paths := writeImages(t, dir, "b.png", "a.png", "c.png")
	m := NewDocumentModel()
	if err := m.OpenFolder(dir); err != nil {
		t.Fatalf("open folder: %v", err)
	}
	if m.Path() != paths[1] {
		t.Fatalf("expected first image a.png, got %s", m.Path())
	}
	if m.Step(-1) != "" {
		t.Fatalf("no previous image expected at start")
	}
	next := m.Step(1)
	if next != paths[0] {
		t.Fatalf("expected b.png next, got %s", next)
	}
	gen := m.Generation()
	if err := m.Open(next); err != nil {
		t.Fatal(err)
	}
	if m.Generation() != gen+1 {
		t.Fatalf("generation should advance on open")
	}
	if w, h := m.SourceSize(); w != 12 || h != 8 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	if m.Step(1) != paths[2] || m.Step(2) != "" {
		t.Fatalf("unexpected step results")
	}
	m.SetDirty(true)
	desc := m.Describe()
	if !strings.HasPrefix(desc, "b.png  12x8") || !strings.Contains(desc, "(2/3)") || !strings.HasSuffix(desc, "*") {
		t.Fatalf("unexpected description %q", desc)
	}
}

func TestDocumentModel_OpenSingleFileListsFolder(t *testing.T) {
	dir := t.TempDir()
	paths := writeImages(t, dir, "x.png", "y.png")
	m := NewDocumentModel()
	if err := m.Open(paths[1]); err != nil {
		t.Fatal(err)
	}
	if m.Step(-1) != paths[0] {
		t.Fatalf("expected previous x.png, got %q", m.Step(-1))
	}
	if err := m.Open(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if m.Path() != paths[1] {
		t.Fatalf("failed open must keep the current document")
	}
}

func TestDocumentModel_NilSafe(t *testing.T) {
	var m *DocumentModel
	if m.Describe() != "No image" || m.Path() != "" || m.Dirty() || m.Step(1) != "" {
		t.Fatalf("nil model should behave as empty")
	}
	if err := m.Open("x"); err == nil {
		t.Fatalf("nil model open should fail")
	}
}

func TestDetectionModel_Lifecycle(t *testing.T) {
	m := NewDetectionModel()
	if !m.TryStart() || m.TryStart() {
		t.Fatalf("second start must be rejected while busy")
	}
	if !m.Busy() {
		t.Fatalf("expected busy")
	}
	boom := errors.New("boom")
	m.Finish(3, time.Second, boom)
	n, d, err := m.Last()
	if m.Busy() || n != 3 || d != time.Second || !errors.Is(err, boom) {
		t.Fatalf("unexpected last run %d %v %v", n, d, err)
	}
}
