package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Editor   *EditorPresenter
	Status   *StatusPresenter
	Detect   *DetectionPresenter
	Schedule func()
}

func NewLoop(editor *EditorPresenter, status *StatusPresenter, detect *DetectionPresenter, schedule func()) *Loop {
	return &Loop{Editor: editor, Status: status, Detect: detect, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	// Detection first so applied proposals render in the same tick.
	if l.Detect != nil {
		l.Detect.Tick()
	}
	if l.Editor != nil {
		l.Editor.Tick()
	}
	if l.Status != nil {
		l.Status.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
