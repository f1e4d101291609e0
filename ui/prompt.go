package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/terminal"
)

const (
	promptTitle = "Enter full view?"
	promptHint  = "[y] yes   [n] no"
)

// FullscreenPrompt offers a chrome-free view once per session
type FullscreenPrompt struct {
	visible   bool
	immersive bool
}

// NewFullscreenPrompt creates a hidden prompt
func NewFullscreenPrompt() *FullscreenPrompt {
	return &FullscreenPrompt{}
}

// Open shows the prompt unless this session already saw it
func (p *FullscreenPrompt) Open(s *Session) bool {
	if !s.Once(KeyFullscreenPrompt) {
		return false
	}
	p.visible = true
	return true
}

// Confirm enters full view and hides the prompt
func (p *FullscreenPrompt) Confirm() {
	p.immersive = true
	p.visible = false
}

// Dismiss hides the prompt without changing the view
func (p *FullscreenPrompt) Dismiss() {
	p.visible = false
}

// ToggleImmersive flips full view from the keyboard
func (p *FullscreenPrompt) ToggleImmersive() bool {
	p.immersive = !p.immersive
	return p.immersive
}

// Immersive reports whether chrome is suppressed
func (p *FullscreenPrompt) Immersive() bool {
	return p.immersive
}

// IsVisible implements render.VisibilityToggle
func (p *FullscreenPrompt) IsVisible() bool {
	return p.visible
}

// Render implements render.SystemRenderer
func (p *FullscreenPrompt) Render(ctx render.RenderContext, buf *render.Buffer) {
	w := max(runewidth.StringWidth(promptTitle), runewidth.StringWidth(promptHint)) + 6
	h := 5
	if w > ctx.ScreenWidth || h > ctx.ScreenHeight {
		return
	}
	x := (ctx.ScreenWidth - w) / 2
	y := (ctx.ScreenHeight - h) / 2
	drawBox(buf, x, y, w, h, render.RGBAccent, render.RGBPanel)
	buf.WriteString(x+3, y+1, promptTitle, render.RGBText, terminal.AttrBold)
	buf.WriteString(x+3, y+3, promptHint, render.RGBDim, terminal.AttrNone)
}
