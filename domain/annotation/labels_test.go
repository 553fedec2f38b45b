package annotation

import (
	"image/color"
	"testing"
)

func TestLabelSet(t *testing.T) {
	ls, err := NewLabelSet([]string{"Ship", "Buoy", "", "Ship", "Other"}, map[string]string{"Ship": "#0000ff"}, "Buoy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ls.Names(); len(got) != 3 {
		t.Fatalf("expected deduplicated names, got %v", got)
	}
	if ls.Default() != "Buoy" {
		t.Fatalf("default = %q", ls.Default())
	}
	if c := ls.Color("Ship"); c != (color.RGBA{B: 0xff, A: 0xff}) {
		t.Fatalf("override color = %+v", c)
	}
	if ls.Color("Buoy") == ls.Color("Other") {
		t.Fatalf("palette colors should differ")
	}
	if ls.Contains("Car") {
		t.Fatalf("unexpected label")
	}
}

func TestLabelSet_Errors(t *testing.T) {
	if _, err := NewLabelSet(nil, nil, ""); err == nil {
		t.Fatalf("empty set should fail")
	}
	if _, err := NewLabelSet([]string{"a"}, map[string]string{"a": "blue"}, ""); err == nil {
		t.Fatalf("bad hex should fail")
	}
	ls, _ := NewLabelSet([]string{"a", "b"}, nil, "zzz")
	if ls.Default() != "a" {
		t.Fatalf("unknown default should fall back to first, got %q", ls.Default())
	}
}

func TestHistory_DepthBound(t *testing.T) {
	h := NewHistory(2)
	h.Record([]Box{{ID: "1"}})
	h.Record([]Box{{ID: "2"}})
	h.Record([]Box{{ID: "3"}})
	prev, ok := h.Undo(nil)
	if !ok || prev[0].ID != "3" {
		t.Fatalf("unexpected undo %v", prev)
	}
	prev, ok = h.Undo(nil)
	if !ok || prev[0].ID != "2" {
		t.Fatalf("unexpected undo %v", prev)
	}
	if _, ok := h.Undo(nil); ok {
		t.Fatalf("oldest snapshot should have been evicted")
	}
	if !h.CanRedo() {
		t.Fatalf("redo should be available")
	}
}
