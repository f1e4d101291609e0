package pick

import (
	"github.com/lixenwraith/orrery/camera"
)

// Observer is notified of every pick with its kind and outcome
type Observer func(kind string, hit bool)

// Service runs picks for pointer events and forwards records to a sink
type Service struct {
	Sink     InfoSink
	Observer Observer
}

// NewService creates a service emitting to sink
func NewService(sink InfoSink) *Service {
	return &Service{Sink: sink}
}

// Select picks at cell (x, y) in a width*height viewport
// A hit shows the info panel, a miss hides it
func (s *Service) Select(cam *camera.Perspective, candidates []Candidate, x, y, width, height int) (Hit, bool) {
	hit, ok := s.cast(cam, candidates, x, y, width, height)
	s.observe("select", ok)
	if s.Sink == nil {
		return hit, ok
	}
	if ok {
		s.Sink.ShowInfo(SelectRecord{Name: hit.Name, Description: hit.Description, Link: hit.Link})
	} else {
		s.Sink.HideInfo()
	}
	return hit, ok
}

// Hover picks at cell (x, y) and places or hides the transient label
func (s *Service) Hover(cam *camera.Perspective, candidates []Candidate, x, y, width, height int) (Hit, bool) {
	hit, ok := s.cast(cam, candidates, x, y, width, height)
	s.observe("hover", ok)
	if s.Sink == nil {
		return hit, ok
	}
	if ok {
		s.Sink.ShowLabel(HoverRecord{Name: hit.Name, X: x, Y: y})
	} else {
		s.Sink.HideLabel()
	}
	return hit, ok
}

func (s *Service) cast(cam *camera.Perspective, candidates []Candidate, x, y, width, height int) (Hit, bool) {
	px, py := CellCenter(x, y)
	nx, ny := Normalize(px, py, width, height)
	return Cast(cam, candidates, nx, ny)
}

func (s *Service) observe(kind string, hit bool) {
	if s.Observer != nil {
		s.Observer(kind, hit)
	}
}
