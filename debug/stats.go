package debug

// Debug runtime stats logger. Started only when config.Debug is true.
// Emits goroutine count, stack and heap usage, process RSS where available,
// and the number of boxes in the editor at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// StartStatsLogger launches a ticker that logs runtime stats until ctx is
// done. boxCount may be nil. It must only read state that is safe to access
// from another goroutine.
func StartStatsLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, boxCount func() int) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var goroutines uint64
			if samples[0].Value.Kind() == metrics.KindUint64 {
				goroutines = samples[0].Value.Uint64()
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			rss, err := readRSS()
			if err != nil && !rssErrLogged {
				logger.Warn("stats: rss query failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			attrs := []any{
				slog.Uint64("goroutines", goroutines),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.String("heap", humanize.Bytes(ms.HeapAlloc)),
				slog.Uint64("rss", rss),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			}
			if boxCount != nil {
				attrs = append(attrs, slog.Int("boxes", boxCount()))
			}
			logger.Info("runtime-stats", attrs...)
		}
	}()
}
