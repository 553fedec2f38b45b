package view

import (
	"image"
	"testing"

	"github.com/soocke/boxlabel-go/domain/annotation"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		in   string
		want image.Rectangle
		ok   bool
	}{
		{in: "808x876+100+100", want: image.Rect(100, 100, 908, 976), ok: true},
		{in: " 400x300+-10+5\n", want: image.Rect(-10, 5, 390, 305), ok: true},
		{in: "0x300+0+0"},
		{in: "400x300"},
	}
	for _, tt := range tests {
		got, ok := parseGeometry(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("parseGeometry(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCursorName(t *testing.T) {
	if got := cursorName(annotation.CursorMove); got != "fleur" {
		t.Fatalf("move cursor %q", got)
	}
	if got := cursorName(annotation.CursorDefault); got != "arrow" {
		t.Fatalf("default cursor %q", got)
	}
}

func TestRootView_NilSafe(t *testing.T) {
	var rv *RootView
	rv.SetMode("Labeling", false)
	rv.SetCount("Box: 0")
	rv.ShowImage(nil)
	rv.Build(nil, "", nil, Handlers{})
}
