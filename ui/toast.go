package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/terminal"
)

const (
	toastSeconds  = 6.0
	toastMaxShown = 4
	toastMaxWidth = 60
)

type toast struct {
	text string
	ttl  float64
}

// Toasts stacks transient alerts at the top right
type Toasts struct {
	items []toast
}

// NewToasts creates an empty stack
func NewToasts() *Toasts {
	return &Toasts{}
}

// Push queues an alert
func (t *Toasts) Push(text string) {
	t.items = append(t.items, toast{text: text, ttl: toastSeconds})
}

// Update ages the visible toasts
func (t *Toasts) Update(dt float64) {
	n := min(len(t.items), toastMaxShown)
	for i := 0; i < n; i++ {
		t.items[i].ttl -= dt
	}
	kept := t.items[:0]
	for _, it := range t.items {
		if it.ttl > 0 {
			kept = append(kept, it)
		}
	}
	t.items = kept
}

// Len returns queued toasts including hidden ones
func (t *Toasts) Len() int {
	return len(t.items)
}

// Texts returns the visible messages top first
func (t *Toasts) Texts() []string {
	n := min(len(t.items), toastMaxShown)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = t.items[i].text
	}
	return out
}

// IsVisible implements render.VisibilityToggle
func (t *Toasts) IsVisible() bool {
	return len(t.items) > 0
}

// Render implements render.SystemRenderer
func (t *Toasts) Render(ctx render.RenderContext, buf *render.Buffer) {
	maxW := min(toastMaxWidth, ctx.ScreenWidth-2)
	if maxW < 8 {
		return
	}
	y := 1
	for _, text := range t.Texts() {
		line := " ! " + truncate(text, maxW-4) + " "
		w := runewidth.StringWidth(line)
		x := ctx.ScreenWidth - w - 1
		buf.WriteStringBg(x, y, line, render.RGBBlack, render.RGBAlert)
		buf.Set(x+1, y, '!', render.RGBText, render.RGBAlert, render.BlendReplace, 1, terminal.AttrBold)
		y++
	}
}
