package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/orrery/pick"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/terminal"
)

// HoverLabel floats a body name next to the pointer
type HoverLabel struct {
	record  pick.HoverRecord
	visible bool
}

// NewHoverLabel creates a hidden label
func NewHoverLabel() *HoverLabel {
	return &HoverLabel{}
}

// Show places the label for rec
func (l *HoverLabel) Show(rec pick.HoverRecord) {
	l.record = rec
	l.visible = true
}

// Hide removes the label
func (l *HoverLabel) Hide() {
	l.visible = false
}

// IsVisible implements render.VisibilityToggle
func (l *HoverLabel) IsVisible() bool {
	return l.visible
}

// Record returns the last shown record
func (l *HoverLabel) Record() pick.HoverRecord {
	return l.record
}

// Position returns the top-left cell of the label on a width x height screen
// The label sits up-right of the pointer and flips to stay on screen
func (l *HoverLabel) Position(width, height int) (int, int) {
	text := " " + l.record.Name + " "
	w := runewidth.StringWidth(text)
	x := l.record.X + 2
	if x+w > width {
		x = l.record.X - w - 1
	}
	x = max(min(x, width-w), 0)

	y := l.record.Y - 1
	if y < 0 {
		y = l.record.Y + 1
	}
	y = max(min(y, height-1), 0)
	return x, y
}

// Render implements render.SystemRenderer
func (l *HoverLabel) Render(ctx render.RenderContext, buf *render.Buffer) {
	x, y := l.Position(ctx.ScreenWidth, ctx.ScreenHeight)
	buf.WriteStringBg(x, y, " "+l.record.Name+" ", render.RGBBlack, render.RGBText)
	buf.Set(l.record.X, l.record.Y, 0, render.RGBAccent, render.RGBBlack, render.BlendFgOnly, 1, terminal.AttrNone)
}
