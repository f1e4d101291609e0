package ui

import (
	"github.com/lixenwraith/orrery/pick"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/terminal"
)

const (
	panelMinWidth = 24
	panelMaxWidth = 44
	panelTop      = 1
	slideSeconds  = 0.3
	closeLabel    = "[x]"
)

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) is inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// InfoPanel shows the selected body, sliding in from the left edge
type InfoPanel struct {
	record pick.SelectRecord
	open   bool    // target state
	slide  float64 // 0 hidden, 1 fully in

	screenW int
	screenH int
}

// NewInfoPanel creates a hidden panel
func NewInfoPanel() *InfoPanel {
	return &InfoPanel{}
}

// Show replaces the content and slides the panel in
func (p *InfoPanel) Show(rec pick.SelectRecord) {
	p.record = rec
	p.open = true
}

// Close slides the panel out
func (p *InfoPanel) Close() {
	p.open = false
}

// Open reports the target state
func (p *InfoPanel) Open() bool {
	return p.open
}

// Record returns the displayed record
func (p *InfoPanel) Record() pick.SelectRecord {
	return p.record
}

// Update advances the slide animation by dt seconds
func (p *InfoPanel) Update(dt float64) {
	step := dt / slideSeconds
	if p.open {
		p.slide = min(p.slide+step, 1)
	} else {
		p.slide = max(p.slide-step, 0)
	}
}

// IsVisible implements render.VisibilityToggle
func (p *InfoPanel) IsVisible() bool {
	return p.open || p.slide > 0
}

// Resize records the screen used for layout and hit tests
func (p *InfoPanel) Resize(width, height int) {
	p.screenW, p.screenH = width, height
}

func (p *InfoPanel) width() int {
	w := min(max(p.screenW/3, panelMinWidth), panelMaxWidth)
	return min(w, p.screenW)
}

func (p *InfoPanel) lines(inner int) []string {
	if inner < 2 {
		return nil
	}
	return wrap(p.record.Description, inner)
}

// Bounds returns the panel rectangle at its current slide position
func (p *InfoPanel) Bounds() Rect {
	if !p.IsVisible() {
		return Rect{}
	}
	w := p.width()
	h := min(len(p.lines(w-4))+6, p.screenH-panelTop)
	x := -int(float64(w)*(1-easeOut(p.slide)) + 0.5)
	return Rect{X: x, Y: panelTop, W: w, H: max(h, 0)}
}

// Contains reports whether a cell is covered by the panel
func (p *InfoPanel) Contains(x, y int) bool {
	return p.Bounds().Contains(x, y)
}

// HitClose reports whether a cell is on the close button
func (p *InfoPanel) HitClose(x, y int) bool {
	if !p.open {
		return false
	}
	b := p.Bounds()
	cx := b.X + b.W - 1 - len(closeLabel)
	return y == b.Y && x >= cx && x < cx+len(closeLabel)
}

// Render implements render.SystemRenderer
func (p *InfoPanel) Render(ctx render.RenderContext, buf *render.Buffer) {
	if p.screenW != ctx.ScreenWidth || p.screenH != ctx.ScreenHeight {
		p.Resize(ctx.ScreenWidth, ctx.ScreenHeight)
	}
	b := p.Bounds()
	if b.W < 4 || b.H < 4 {
		return
	}
	drawBox(buf, b.X, b.Y, b.W, b.H, render.RGBPanelEdge, render.RGBPanel)

	inner := b.W - 4
	buf.WriteString(b.X+2, b.Y, " "+truncate(p.record.Name, inner-len(closeLabel)-2)+" ", render.RGBAccent, terminal.AttrBold)
	buf.WriteString(b.X+b.W-1-len(closeLabel), b.Y, closeLabel, render.RGBAlert, terminal.AttrBold)

	row := b.Y + 2
	last := b.Y + b.H - 2
	for _, line := range p.lines(inner) {
		if row >= last-1 {
			break
		}
		buf.WriteString(b.X+2, row, line, render.RGBText, terminal.AttrNone)
		row++
	}
	if p.record.Link != "" {
		buf.WriteString(b.X+2, last, truncate(p.record.Link, inner), render.RGBDim, terminal.AttrUnderline)
	}
}
