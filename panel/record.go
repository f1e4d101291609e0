package panel

import (
	"encoding/json"

	"github.com/lixenwraith/orrery/pick"
)

// Record types on the wire
const (
	TypeSelect = "select"
	TypeHover  = "hover"
	TypeHide   = "hide"

	TargetInfo  = "info"
	TargetLabel = "label"
)

// Record is one JSON text frame
type Record struct {
	Type        string `json:"type"`
	Target      string `json:"target,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	X           *int   `json:"x,omitempty"`
	Y           *int   `json:"y,omitempty"`
}

// SelectRecord wraps a pick selection
func SelectRecord(r pick.SelectRecord) Record {
	return Record{Type: TypeSelect, Name: r.Name, Description: r.Description, Link: r.Link}
}

// HoverRecord wraps a hover label
func HoverRecord(r pick.HoverRecord) Record {
	x, y := r.X, r.Y
	return Record{Type: TypeHover, Name: r.Name, X: &x, Y: &y}
}

// HideRecord clears a display target
func HideRecord(target string) Record {
	return Record{Type: TypeHide, Target: target}
}

func (r Record) encode() []byte {
	// Record has only strings and ints
	b, _ := json.Marshal(r)
	return b
}
