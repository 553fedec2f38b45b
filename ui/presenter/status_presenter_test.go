package presenter

import (
	"image"
	"testing"
	"time"

	"github.com/soocke/boxlabel-go/domain/annotation"
)

type fakeStatus struct {
	mode       string
	correction bool
	count      string
	doc        string
	detection  string
	modeCalls  int
}

func (v *fakeStatus) SetMode(text string, correction bool) {
	v.mode, v.correction = text, correction
	v.modeCalls++
}
func (v *fakeStatus) SetCount(s string)     { v.count = s }
func (v *fakeStatus) SetDocument(s string)  { v.doc = s }
func (v *fakeStatus) SetDetection(s string) { v.detection = s }

type staticDoc string

func (d staticDoc) Describe() string { return string(d) }

func TestStatusPresenter_ReflectsLatest(t *testing.T) {
	view := &fakeStatus{}
	p := NewStatusPresenter(view, staticDoc("a.png  10x10"), nil)
	p.Tick()
	if view.mode != "Labeling" || view.correction || view.count != "Box: 0" || view.doc != "a.png  10x10" {
		t.Fatalf("unexpected initial status %+v", view)
	}

	p.OnMode(annotation.ModeLabeling, annotation.ModeCorrection)
	p.OnCount(2)
	p.OnCount(3)
	p.Tick()
	if view.mode != "Correction" || !view.correction || view.count != "Box: 3" {
		t.Fatalf("unexpected status %+v", view)
	}
	calls := view.modeCalls
	p.Tick()
	if view.modeCalls != calls {
		t.Fatalf("idle tick should not touch the view")
	}
}

func TestStatusPresenter_WiredToEditor(t *testing.T) {
	ed := newEditor(t, annotation.Size{W: 100, H: 100})
	view := &fakeStatus{}
	p := NewStatusPresenter(view, nil, nil)
	ed.AddModeListener(p.OnMode)
	ed.AddCountListener(p.OnCount)

	ed.PointerDown(image.Pt(10, 10))
	ed.PointerMove(image.Pt(50, 50))
	ed.PointerUp(image.Pt(50, 50))
	ed.HandleKey(annotation.KeyCorrection)
	p.Tick()
	if view.count != "Box: 1" || view.mode != "Correction" {
		t.Fatalf("unexpected status %+v", view)
	}
}

func TestStatusPresenter_NotifyExpires(t *testing.T) {
	view := &fakeStatus{}
	p := NewStatusPresenter(view, nil, nil)
	now := time.Unix(100, 0)
	p.now = func() time.Time { return now }

	p.Notify("Save failed")
	p.Tick()
	if view.detection != "Save failed" {
		t.Fatalf("notice not shown: %q", view.detection)
	}
	now = now.Add(noticeTTL + time.Second)
	p.Tick()
	if view.detection != "" {
		t.Fatalf("notice should expire, got %q", view.detection)
	}
}
