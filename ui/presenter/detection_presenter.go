package presenter

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/boxlabel-go/domain/annotation"
	"github.com/soocke/boxlabel-go/domain/detect"
	"github.com/soocke/boxlabel-go/ui/model"
)

// ProposalSink accepts detector output in canvas space.
type ProposalSink interface {
	ApplyProposals([]annotation.Proposal) bool
	Canvas() annotation.Size
}

// DocumentSource supplies the image to run detection on.
type DocumentSource interface {
	Source() image.Image
	Generation() uint64
}

type detectionTask struct {
	generation uint64
	img        image.Image
}

type detectionResult struct {
	generation uint64
	src        annotation.Size
	dets       []detect.Detection
	err        error
	duration   time.Duration
}

// DetectionPresenter runs the detector on a background worker and applies
// its proposals to the editor from the UI tick.
type DetectionPresenter struct {
	detector detect.Detector
	pps      []detect.Postprocessor
	doc      DocumentSource
	sink     ProposalSink
	model    *model.DetectionModel
	timeout  time.Duration
	logger   *slog.Logger

	workerOnce sync.Once
	workCh     chan detectionTask
	resultCh   chan detectionResult

	pending *detectionResult
}

// NewDetectionPresenter constructs a detection presenter. A timeout <= 0
// disables the per-run deadline.
func NewDetectionPresenter(detector detect.Detector, pps []detect.Postprocessor, doc DocumentSource, sink ProposalSink, m *model.DetectionModel, timeout time.Duration, logger *slog.Logger) *DetectionPresenter {
	if m == nil {
		m = model.NewDetectionModel()
	}
	return &DetectionPresenter{
		detector: detector,
		pps:      pps,
		doc:      doc,
		sink:     sink,
		model:    m,
		timeout:  timeout,
		logger:   logger,
		workCh:   make(chan detectionTask, 1),
		resultCh: make(chan detectionResult, 1),
	}
}

// Model exposes the run status.
func (p *DetectionPresenter) Model() *model.DetectionModel {
	if p == nil {
		return nil
	}
	return p.model
}

// SetDetector swaps the backend and filter chain, e.g. after the settings
// changed. It is refused while a run is in flight.
func (p *DetectionPresenter) SetDetector(detector detect.Detector, pps []detect.Postprocessor) bool {
	if p == nil || p.model.Busy() || p.pending != nil {
		return false
	}
	p.detector, p.pps = detector, pps
	return true
}

// Run schedules detection for the current document. It returns false when
// nothing is loaded, no detector is configured or a run is in flight.
func (p *DetectionPresenter) Run() bool {
	if p == nil || p.detector == nil || p.doc == nil || p.sink == nil {
		return false
	}
	img := p.doc.Source()
	if img == nil || !p.model.TryStart() {
		return false
	}
	p.ensureWorker()
	p.workCh <- detectionTask{generation: p.doc.Generation(), img: img}
	if p.logger != nil {
		p.logger.Info("detection started", "detector", p.detector.Name())
	}
	return true
}

func (p *DetectionPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *DetectionPresenter) runWorker() {
	for task := range p.workCh {
		res := p.execute(task)
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *DetectionPresenter) execute(task detectionTask) detectionResult {
	b := task.img.Bounds()
	res := detectionResult{generation: task.generation, src: annotation.Size{W: b.Dx(), H: b.Dy()}}
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	start := time.Now()
	res.dets, res.err = p.detector.Detect(ctx, task.img)
	res.duration = time.Since(start)
	return res
}

// Tick drains finished runs and applies them. A result the editor rejects
// because a gesture is active is retried on the next tick; results for a
// document that has since been replaced are dropped.
func (p *DetectionPresenter) Tick() {
	if p == nil || p.sink == nil {
		return
	}
	select {
	case res := <-p.resultCh:
		p.pending = &res
	default:
	}
	if p.pending == nil {
		return
	}
	res := *p.pending
	if res.err != nil {
		p.pending = nil
		p.model.Finish(0, res.duration, res.err)
		if p.logger != nil {
			p.logger.Error("detection", "error", res.err)
		}
		return
	}
	if p.doc == nil || res.generation != p.doc.Generation() {
		p.pending = nil
		p.model.Finish(0, res.duration, nil)
		if p.logger != nil {
			p.logger.Debug("detection result dropped for replaced document")
		}
		return
	}
	dets := detect.Apply(res.dets, p.pps...)
	props := detect.ToCanvas(dets, res.src, p.sink.Canvas())
	if !p.sink.ApplyProposals(props) {
		return
	}
	p.pending = nil
	p.model.Finish(len(props), res.duration, nil)
	if p.logger != nil {
		p.logger.Info("detection applied", "raw", len(res.dets), "kept", len(props), "duration", res.duration)
	}
}
