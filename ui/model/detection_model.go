package model

import (
	"sync/atomic"
	"time"
)

// DetectionModel tracks auto-label activity. Zero value is idle and usable.
// Busy is atomic because the worker and the UI tick race on it; the summary
// fields are written on the UI thread only.
type DetectionModel struct {
	busy atomic.Bool

	lastCount    int
	lastDuration time.Duration
	lastErr      error
}

func NewDetectionModel() *DetectionModel { return &DetectionModel{} }

// Busy reports whether a detection is in flight.
func (m *DetectionModel) Busy() bool {
	if m == nil {
		return false
	}
	return m.busy.Load()
}

// TryStart marks the model busy. It returns false if a run is already active.
func (m *DetectionModel) TryStart() bool {
	if m == nil {
		return false
	}
	return m.busy.CompareAndSwap(false, true)
}

// Finish records the outcome of a run and clears the busy flag.
func (m *DetectionModel) Finish(count int, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.lastCount, m.lastDuration, m.lastErr = count, d, err
	m.busy.Store(false)
}

// Last returns the outcome of the most recent finished run.
func (m *DetectionModel) Last() (count int, d time.Duration, err error) {
	if m == nil {
		return 0, 0, nil
	}
	return m.lastCount, m.lastDuration, m.lastErr
}
