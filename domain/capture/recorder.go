package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/soocke/boxlabel-go/domain/imageio"
)

const recorderStatsLogInterval = 5 * time.Second

// Frame is one captured image with metadata.
type Frame struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Stats summarises recorder behaviour for instrumentation.
type Stats struct {
	Captures   uint64
	Failures   uint64
	AvgCapture time.Duration
	LastFrame  time.Time
}

// Sink consumes captured frames. A returned error stops the recorder.
type Sink func(Frame) error

// GrabFunc captures sel, or the whole screen when sel is empty.
type GrabFunc func(sel image.Rectangle) (*image.RGBA, error)

// ScreenGrab is the default GrabFunc.
func ScreenGrab(sel image.Rectangle) (*image.RGBA, error) {
	if sel.Empty() {
		return Grab()
	}
	return GrabSelection(sel)
}

// Recorder captures frames at a fixed interval, for collecting images to
// annotate.
type Recorder struct {
	grab     GrabFunc
	interval time.Duration
	sel      image.Rectangle
	logger   *slog.Logger

	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	last         atomic.Int64
}

// NewRecorder returns a recorder using grab (ScreenGrab when nil). An interval
// <= 0 defaults to one second.
func NewRecorder(grab GrabFunc, interval time.Duration, sel image.Rectangle, logger *slog.Logger) *Recorder {
	if grab == nil {
		grab = ScreenGrab
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Recorder{grab: grab, interval: interval, sel: sel, logger: logger}
}

// Stats returns a snapshot of the capture counters.
func (r *Recorder) Stats() Stats {
	if r == nil {
		return Stats{}
	}
	captures := r.captures.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(r.captureNanos.Load() / captures)
	}
	var last time.Time
	if ns := r.last.Load(); ns > 0 {
		last = time.Unix(0, ns)
	}
	return Stats{Captures: captures, Failures: r.failures.Load(), AvgCapture: avg, LastFrame: last}
}

// Capture grabs a single frame.
func (r *Recorder) Capture() (Frame, error) {
	start := time.Now()
	img, err := r.grab(r.sel)
	if err != nil {
		r.failures.Add(1)
		return Frame{}, err
	}
	if img == nil {
		r.failures.Add(1)
		return Frame{}, errors.New("capture: grab returned no image")
	}
	now := time.Now()
	r.captureNanos.Add(uint64(now.Sub(start).Nanoseconds()))
	r.captures.Add(1)
	r.last.Store(now.UnixNano())
	return Frame{Image: img, CapturedAt: now, Sequence: r.sequence.Add(1)}, nil
}

// Run captures a frame every interval and hands it to sink until ctx is done,
// limit frames were delivered (limit <= 0 means no limit), or sink fails.
// Grab failures are logged and skipped.
func (r *Recorder) Run(ctx context.Context, limit int, sink Sink) error {
	if sink == nil {
		return errors.New("capture: nil sink")
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	logTicker := time.NewTicker(recorderStatsLogInterval)
	defer logTicker.Stop()

	delivered := 0
	for {
		frame, err := r.Capture()
		if err != nil {
			if r.logger != nil {
				r.logger.Error("capture frame", "error", err)
			}
		} else {
			if err := sink(frame); err != nil {
				return errors.Wrap(err, "frame sink")
			}
			delivered++
			if limit > 0 && delivered >= limit {
				r.logStats()
				return nil
			}
		}
		select {
		case <-ctx.Done():
			r.logStats()
			return nil
		case <-logTicker.C:
			r.logStats()
		case <-ticker.C:
		}
	}
}

func (r *Recorder) logStats() {
	if r.logger == nil {
		return
	}
	st := r.Stats()
	r.logger.Debug("capture.stats",
		"captures", st.Captures,
		"failures", st.Failures,
		"avg_capture", st.AvgCapture,
	)
}

// DirSink writes frames into dir as grab_<timestamp>_<seq>.<ext>.
func DirSink(dir, ext string, quality int, logger *slog.Logger) Sink {
	if ext == "" {
		ext = "png"
	}
	return func(f Frame) error {
		name := fmt.Sprintf("grab_%s_%04d.%s", f.CapturedAt.Format("20060102_150405"), f.Sequence, ext)
		path := filepath.Join(dir, name)
		if err := imageio.Save(f.Image, path, quality); err != nil {
			return err
		}
		if logger != nil {
			logger.Info("frame saved", "path", path, "w", f.Image.Rect.Dx(), "h", f.Image.Rect.Dy())
		}
		return nil
	}
}
