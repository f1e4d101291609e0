package ui

import (
	"github.com/lixenwraith/orrery/pick"
)

// Sink routes picking output to the panel and the label
type Sink struct {
	Panel *InfoPanel
	Label *HoverLabel
}

var _ pick.InfoSink = (*Sink)(nil)

func (s *Sink) ShowInfo(r pick.SelectRecord) { s.Panel.Show(r) }
func (s *Sink) HideInfo()                    { s.Panel.Close() }
func (s *Sink) ShowLabel(r pick.HoverRecord) { s.Label.Show(r) }
func (s *Sink) HideLabel()                   { s.Label.Hide() }
