package ui

import (
	"fmt"

	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/terminal"
)

// LoadPhase mirrors startup readiness
type LoadPhase uint8

const (
	PhaseLoading     LoadPhase = iota // nothing ready, bar holds
	PhaseInteractive                  // terminal up, scene building
	PhaseComplete                     // first frame rendered
)

const (
	loadStepSeconds  = 0.1
	loadStepPartial  = 10
	loadStepComplete = 20
	loadTarget       = 200
	loadFadeSeconds  = 1.0
	loadBarWidth     = 40
)

// LoadingBar covers the screen until startup finishes, then fades out
type LoadingBar struct {
	phase    LoadPhase
	progress int
	accum    float64
	fading   bool
	fade     float64 // seconds into fade
	done     bool
}

// NewLoadingBar creates a bar at zero progress
func NewLoadingBar() *LoadingBar {
	return &LoadingBar{}
}

// SetPhase moves readiness forward; phases never go back
func (l *LoadingBar) SetPhase(p LoadPhase) {
	if p > l.phase {
		l.phase = p
	}
}

// Step applies one 100ms tick
func (l *LoadingBar) Step() {
	if l.fading || l.done {
		return
	}
	switch l.phase {
	case PhaseInteractive:
		l.progress += loadStepPartial
	case PhaseComplete:
		l.progress += loadStepComplete
	}
	if l.progress >= loadTarget {
		l.progress = loadTarget
		l.fading = true
	}
}

// Update advances by dt seconds of wall time
func (l *LoadingBar) Update(dt float64) {
	if l.done {
		return
	}
	if l.fading {
		l.fade += dt
		if l.fade >= loadFadeSeconds {
			l.done = true
		}
		return
	}
	l.accum += dt
	for l.accum >= loadStepSeconds && !l.fading {
		l.accum -= loadStepSeconds
		l.Step()
	}
}

// Progress returns the raw counter, 0..200
func (l *LoadingBar) Progress() int {
	return l.progress
}

// Percent returns the bar fill, 0..100
func (l *LoadingBar) Percent() int {
	return min(l.progress, 100)
}

// Fading reports whether the bar is fading out
func (l *LoadingBar) Fading() bool {
	return l.fading && !l.done
}

// Done reports whether the bar is gone
func (l *LoadingBar) Done() bool {
	return l.done
}

// IsVisible implements render.VisibilityToggle
func (l *LoadingBar) IsVisible() bool {
	return !l.done
}

// Opacity returns 1 until fading, then falls to 0
func (l *LoadingBar) Opacity() float64 {
	if !l.fading {
		return 1
	}
	return max(1-l.fade/loadFadeSeconds, 0)
}

// Render implements render.SystemRenderer
func (l *LoadingBar) Render(ctx render.RenderContext, buf *render.Buffer) {
	a := l.Opacity()
	w, h := ctx.ScreenWidth, ctx.ScreenHeight
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, 0, render.RGBBackground, render.RGBBackground, render.BlendAlpha, a, terminal.AttrNone)
		}
	}

	barW := min(loadBarWidth, w-4)
	if barW <= 0 {
		return
	}
	x0 := (w - barW) / 2
	y0 := h / 2
	filled := barW * l.Percent() / 100

	track := render.Blend(render.RGBBackground, render.RGBPanel, a)
	fill := render.Blend(render.RGBBackground, render.RGBAccent, a)
	for i := 0; i < barW; i++ {
		bg := track
		if i < filled {
			bg = fill
		}
		buf.SetWithBg(x0+i, y0, ' ', render.RGBText, bg)
	}
	text := render.Blend(render.RGBBackground, render.RGBText, a)
	buf.WriteString(x0, y0-1, fmt.Sprintf("loading %3d%%", l.Percent()), text, terminal.AttrNone)
}
