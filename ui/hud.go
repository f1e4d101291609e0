package ui

import (
	"fmt"

	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/terminal"
)

// Status is the live data shown on the status line
type Status struct {
	Ticks    uint64
	Distance float64
	Paused   bool
	Muted    bool
	Panel    string // panel feed address, empty when off
}

// HUD draws the bottom status line and key hints
type HUD struct {
	status func() Status
}

// NewHUD creates a status line reading from fn each frame
func NewHUD(fn func() Status) *HUD {
	return &HUD{status: fn}
}

// Line formats the status text
func (h *HUD) Line() string {
	s := h.status()
	line := fmt.Sprintf(" orrery  t=%d  dist %.0f", s.Ticks, s.Distance)
	if s.Paused {
		line += "  PAUSED"
	}
	if s.Muted {
		line += "  muted"
	}
	if s.Panel != "" {
		line += "  feed " + s.Panel
	}
	return line + "   arrows orbit  +/- zoom  o rings  f full view  m mute  q quit"
}

// Render implements render.SystemRenderer
func (h *HUD) Render(ctx render.RenderContext, buf *render.Buffer) {
	if ctx.Immersive || ctx.ScreenHeight < 2 {
		return
	}
	y := ctx.ScreenHeight - 1
	for x := 0; x < ctx.ScreenWidth; x++ {
		buf.Set(x, y, 0, render.RGBText, render.RGBPanel, render.BlendAlphaBg, 0.85, terminal.AttrNone)
	}
	buf.WriteString(0, y, truncate(h.Line(), ctx.ScreenWidth), render.RGBDim, terminal.AttrNone)
}
