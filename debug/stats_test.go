package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartStatsLogger_LogsBoxCount(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartStatsLogger(ctx, 5*time.Millisecond, logger, func() int { return 7 })

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), `"boxes":7`) {
		if time.Now().After(deadline) {
			t.Fatalf("no stats line logged, got %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !strings.Contains(out.String(), `"msg":"runtime-stats"`) {
		t.Fatalf("unexpected log output %q", out.String())
	}
}

func TestStartStatsLogger_NilLogger(t *testing.T) {
	StartStatsLogger(context.Background(), time.Millisecond, nil, nil)
}
