package presenter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/soocke/boxlabel-go/domain/annotation"
)

// StatusView shows the mode indicator, box count and document line.
type StatusView interface {
	SetMode(text string, correction bool)
	SetCount(string)
	SetDocument(string)
	SetDetection(string)
}

// Describer summarises the loaded document.
type Describer interface{ Describe() string }

// StatusPresenter queues editor notifications and reflects the latest state
// on Tick.
type StatusPresenter struct {
	view   StatusView
	doc    Describer
	detect *DetectionPresenter

	mode        annotation.Mode
	modeDirty   bool
	count       int
	countDirty  bool
	lastDoc     string
	lastDetect  string
	initialized bool

	notice      string
	noticeUntil time.Time
	now         func() time.Time
}

// noticeTTL is how long a Notify message stays in the detection slot.
const noticeTTL = 4 * time.Second

func NewStatusPresenter(view StatusView, doc Describer, detect *DetectionPresenter) *StatusPresenter {
	return &StatusPresenter{view: view, doc: doc, detect: detect, now: time.Now}
}

// Notify shows a transient message, such as a failed save, in place of the
// detection status.
func (p *StatusPresenter) Notify(msg string) {
	if p == nil {
		return
	}
	p.notice = msg
	p.noticeUntil = p.now().Add(noticeTTL)
}

// OnMode is registered as the editor mode listener.
func (p *StatusPresenter) OnMode(_, next annotation.Mode) {
	if p == nil {
		return
	}
	p.mode = next
	p.modeDirty = true
}

// OnCount is registered as the store count listener.
func (p *StatusPresenter) OnCount(n int) {
	if p == nil {
		return
	}
	p.count = n
	p.countDirty = true
}

// Tick pushes pending changes to the view.
func (p *StatusPresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	if !p.initialized {
		p.initialized, p.modeDirty, p.countDirty = true, true, true
	}
	if p.modeDirty {
		p.modeDirty = false
		p.view.SetMode(p.mode.String(), p.mode == annotation.ModeCorrection)
	}
	if p.countDirty {
		p.countDirty = false
		p.view.SetCount("Box: " + strconv.Itoa(p.count))
	}
	if p.doc != nil {
		if d := p.doc.Describe(); d != p.lastDoc {
			p.lastDoc = d
			p.view.SetDocument(d)
		}
	}
	if s := p.detectionText(); s != p.lastDetect {
		p.lastDetect = s
		p.view.SetDetection(s)
	}
}

func (p *StatusPresenter) detectionText() string {
	if p.notice != "" {
		if p.now().Before(p.noticeUntil) {
			return p.notice
		}
		p.notice = ""
	}
	m := p.detect.Model()
	if m == nil {
		return ""
	}
	if m.Busy() {
		return "Detecting..."
	}
	n, d, err := m.Last()
	switch {
	case err != nil:
		return "Detection failed"
	case d == 0:
		return ""
	default:
		return fmt.Sprintf("Detected %d in %.1fs", n, d.Seconds())
	}
}
