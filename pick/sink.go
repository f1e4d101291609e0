package pick

// SelectRecord is the display data for a selected body
type SelectRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// HoverRecord places a transient label at the pointer
type HoverRecord struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// InfoSink receives pick results; a miss hides the matching display
type InfoSink interface {
	ShowInfo(SelectRecord)
	HideInfo()
	ShowLabel(HoverRecord)
	HideLabel()
}

// MultiSink fans records out to several sinks in order
type MultiSink []InfoSink

func (m MultiSink) ShowInfo(r SelectRecord) {
	for _, s := range m {
		s.ShowInfo(r)
	}
}

func (m MultiSink) HideInfo() {
	for _, s := range m {
		s.HideInfo()
	}
}

func (m MultiSink) ShowLabel(r HoverRecord) {
	for _, s := range m {
		s.ShowLabel(r)
	}
}

func (m MultiSink) HideLabel() {
	for _, s := range m {
		s.HideLabel()
	}
}
