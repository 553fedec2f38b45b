package capture

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/soocke/boxlabel-go/domain/imageio"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func fakeGrab(calls *int, failEvery int) GrabFunc {
	return func(sel image.Rectangle) (*image.RGBA, error) {
		*calls++
		if failEvery > 0 && *calls%failEvery == 0 {
			return nil, errors.New("boom")
		}
		r := sel
		if r.Empty() {
			r = image.Rect(0, 0, 8, 6)
		}
		return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
	}
}

func TestRecorder_RunStopsAtLimit(t *testing.T) {
	calls := 0
	rec := NewRecorder(fakeGrab(&calls, 2), time.Millisecond, image.Rectangle{}, discardLogger())
	var got []Frame
	err := rec.Run(context.Background(), 3, func(f Frame) error {
		got = append(got, f)
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(got))
	}
	for i, f := range got {
		if f.Sequence != uint64(i+1) {
			t.Fatalf("frame %d has sequence %d", i, f.Sequence)
		}
	}
	st := rec.Stats()
	if st.Captures != 3 || st.Failures != 2 || st.LastFrame.IsZero() {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestRecorder_SinkErrorStops(t *testing.T) {
	calls := 0
	rec := NewRecorder(fakeGrab(&calls, 0), time.Millisecond, image.Rect(0, 0, 4, 4), nil)
	stop := errors.New("disk full")
	err := rec.Run(context.Background(), 0, func(Frame) error { return stop })
	if !errors.Is(err, stop) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one grab, got %d", calls)
	}
}

func TestRecorder_ContextCancel(t *testing.T) {
	calls := 0
	rec := NewRecorder(fakeGrab(&calls, 0), time.Hour, image.Rectangle{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rec.Run(ctx, 0, func(Frame) error { return nil }); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one grab before cancel, got %d", calls)
	}
}

func TestDirSink_WritesImage(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	rec := NewRecorder(fakeGrab(&calls, 0), time.Millisecond, image.Rect(0, 0, 5, 7), nil)
	if err := rec.Run(context.Background(), 1, DirSink(dir, "png", 0, discardLogger())); err != nil {
		t.Fatalf("run: %v", err)
	}
	files, err := imageio.ListImages(dir)
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one image, got %v (%v)", files, err)
	}
	img, err := imageio.Load(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 7 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if _, err := os.Stat(files[0]); err != nil {
		t.Fatal(err)
	}
}
