package view

import (
	"github.com/soocke/boxlabel-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the edit mode, box count, document and detection status.
type StatusBar interface {
	SetMode(text string, correction bool)
	SetCount(string)
	SetDocument(string)
	SetDetection(string)
}

type statusBar struct {
	modeLbl   *LabelWidget
	countLbl  *LabelWidget
	docLbl    *LabelWidget
	detectLbl *TLabelWidget
}

// NewStatusBar creates the status labels inside a frame gridded at row.
func NewStatusBar(row, cols int) StatusBar {
	frame := Frame()
	Grid(frame, Row(row), Column(0), Columnspan(cols), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	bg, fg := theme.ModeColors(false)
	s := &statusBar{
		modeLbl:   Label(Txt("Labeling"), Width(12), Background(bg), Foreground(fg), Relief("ridge")),
		countLbl:  Label(Txt("Box: 0"), Width(10), Anchor("w")),
		docLbl:    Label(Txt("No image"), Anchor("w")),
		detectLbl: TLabel(Txt(""), Width(24), Anchor("e"), Style(theme.StyleStatusLabel)),
	}
	Grid(s.modeLbl, In(frame), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	Grid(s.countLbl, In(frame), Row(0), Column(1), Sticky("w"), Padx("0.2m"))
	Grid(s.docLbl, In(frame), Row(0), Column(2), Sticky("we"), Padx("0.2m"))
	Grid(s.detectLbl, In(frame), Row(0), Column(3), Sticky("e"), Padx("0.2m"))
	GridColumnConfigure(frame.Window, 2, Weight(1))
	return s
}

func (s *statusBar) SetMode(text string, correction bool) {
	if s == nil || s.modeLbl == nil {
		return
	}
	bg, fg := theme.ModeColors(correction)
	s.modeLbl.Configure(Txt(text), Background(bg), Foreground(fg))
}

func (s *statusBar) SetCount(text string) {
	if s != nil && s.countLbl != nil {
		s.countLbl.Configure(Txt(text))
	}
}

func (s *statusBar) SetDocument(text string) {
	if s != nil && s.docLbl != nil {
		s.docLbl.Configure(Txt(text))
	}
}

func (s *statusBar) SetDetection(text string) {
	if s != nil && s.detectLbl != nil {
		s.detectLbl.Configure(Txt(text))
	}
}
