package main

import (
	"log"
	"time"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/panel"
	"github.com/lixenwraith/orrery/pick"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/terminal"
	"github.com/lixenwraith/orrery/ui"
)

// app owns every piece of per-session state; only the frame loop touches it
type app struct {
	term  terminal.Terminal
	scene *scene.Context
	orch  *render.Orchestrator

	info     *ui.InfoPanel
	label    *ui.HoverLabel
	loading  *ui.LoadingBar
	prompt   *ui.FullscreenPrompt
	toasts   *ui.Toasts
	session  *ui.Session
	hardware *ui.HardwareCheck

	sink    pick.InfoSink
	cues    *audio.Cues
	metrics *panel.Metrics
	feed    *panel.Server // nil when the feed is off

	start, last        time.Time
	pointerX, pointerY int
	hovered            string
	frames             uint64
}

// newApp wires the scene, chrome and sinks; feed may be nil
func newApp(cfg config.Config, term terminal.Terminal, cues *audio.Cues, metrics *panel.Metrics, feed *panel.Server) (*app, error) {
	a := &app{
		term:     term,
		info:     ui.NewInfoPanel(),
		label:    ui.NewHoverLabel(),
		loading:  ui.NewLoadingBar(),
		prompt:   ui.NewFullscreenPrompt(),
		toasts:   ui.NewToasts(),
		session:  ui.NewSession(),
		hardware: ui.NewHardwareCheck(),
		cues:     cues,
		metrics:  metrics,
		feed:     feed,
		pointerX: -1,
		pointerY: -1,
	}
	a.loading.SetPhase(ui.PhaseInteractive)

	sinks := pick.MultiSink{&ui.Sink{Panel: a.info, Label: a.label}}
	if feed != nil {
		sinks = append(sinks, feed)
	}
	a.sink = sinks

	sc, err := scene.New(cfg.SceneOptions(), a.sink)
	if err != nil {
		return nil, err
	}
	if metrics != nil {
		sc.SetObserver(metrics.ObservePick)
	}
	a.scene = sc

	w, h := term.Size()
	a.resize(w, h)
	a.orch = render.NewOrchestrator(term, w, h)

	hud := ui.NewHUD(a.status)
	a.orch.Register(a.scene, render.PriorityScene)
	a.orch.RegisterChrome(hud, render.PriorityHUD)
	a.orch.Register(a.label, render.PriorityLabel)
	a.orch.Register(a.info, render.PriorityPanel)
	a.orch.Register(a.loading, render.PriorityLoading)
	a.orch.Register(a.prompt, render.PriorityPrompt)
	a.orch.Register(a.toasts, render.PriorityOverlay)

	return a, nil
}

func (a *app) status() ui.Status {
	s := ui.Status{
		Ticks:    a.scene.Ticks(),
		Distance: a.scene.Distance(),
		Paused:   a.scene.Paused(),
		Muted:    a.cues.Muted(),
	}
	if a.feed != nil {
		s.Panel = a.feed.Addr()
	}
	return s
}

func (a *app) resize(w, h int) {
	a.scene.Resize(w, h)
	a.info.Resize(w, h)
	if a.orch != nil {
		a.orch.Resize(w, h)
	}
}

// handlers routes input into the scene and chrome
func (a *app) handlers() input.Handlers {
	return input.Handlers{
		PointerMove: a.pointerMove,
		PointerDown: a.pointerDown,
		PointerDrag: func(p input.Pointer, dx, dy int) {
			a.scene.Drag(dx, dy)
		},
		Wheel: func(p input.Pointer, delta int) {
			a.scene.Zoom(delta)
		},
		Resize: a.resize,
		Key:    a.key,
	}
}

func (a *app) pointerMove(p input.Pointer) {
	a.pointerX, a.pointerY = p.X, p.Y
	if a.info.Contains(p.X, p.Y) || a.prompt.IsVisible() {
		if a.label.IsVisible() {
			a.sink.HideLabel()
		}
		a.hovered = ""
		return
	}
	hit, ok := a.scene.PointerMove(p.X, p.Y)
	name := ""
	if ok {
		name = hit.Name
	}
	if name != "" && name != a.hovered {
		a.cues.Hover()
	}
	a.hovered = name
}

func (a *app) pointerDown(p input.Pointer) {
	if a.prompt.IsVisible() {
		return
	}
	if a.info.HitClose(p.X, p.Y) {
		a.cues.Click()
		a.closeInfo()
		return
	}
	if a.info.Contains(p.X, p.Y) {
		return
	}
	if _, ok := a.scene.PointerDown(p.X, p.Y); ok {
		a.cues.Click()
	}
}

func (a *app) closeInfo() {
	a.sink.HideInfo()
	a.scene.ClearSelection()
}

// key returns false to quit
func (a *app) key(ev terminal.Event, action input.Action) bool {
	if a.prompt.IsVisible() {
		switch action {
		case input.ActionConfirm:
			a.cues.Click()
			a.prompt.Confirm()
		case input.ActionClose:
			a.cues.Click()
			a.prompt.Dismiss()
		case input.ActionQuit:
			return false
		}
		return true
	}

	switch action {
	case input.ActionQuit:
		return false
	case input.ActionClose:
		if a.info.Open() {
			a.closeInfo()
		}
	case input.ActionOrbitLeft:
		a.scene.Orbit(-1, 0)
	case input.ActionOrbitRight:
		a.scene.Orbit(1, 0)
	case input.ActionOrbitUp:
		a.scene.Orbit(0, -1)
	case input.ActionOrbitDown:
		a.scene.Orbit(0, 1)
	case input.ActionZoomIn:
		a.scene.Zoom(1)
	case input.ActionZoomOut:
		a.scene.Zoom(-1)
	case input.ActionResetView:
		a.scene.ResetView()
	case input.ActionToggleHUD:
		a.prompt.ToggleImmersive()
	case input.ActionToggleMute:
		a.cues.ToggleMute()
	case input.ActionToggleRings:
		a.scene.ToggleRings()
	case input.ActionPause:
		a.scene.TogglePause()
	}
	return true
}

// frame advances the simulation one tick and draws
func (a *app) frame(now time.Time) {
	if a.start.IsZero() {
		a.start, a.last = now, now
	}
	dt := now.Sub(a.last).Seconds()
	a.last = now

	if !a.scene.Paused() && a.metrics != nil {
		a.metrics.RecordTick()
	}
	a.scene.Tick()
	a.info.Update(dt)
	a.toasts.Update(dt)
	a.loading.Update(dt)

	w, h := a.term.Size()
	ctx := render.RenderContext{
		Now:          now,
		DeltaTime:    dt,
		Elapsed:      now.Sub(a.start).Seconds(),
		Ticks:        a.scene.Ticks(),
		ScreenWidth:  w,
		ScreenHeight: h,
		PointerX:     a.pointerX,
		PointerY:     a.pointerY,
		Immersive:    a.prompt.Immersive(),
	}

	began := time.Now()
	a.orch.RenderFrame(ctx)
	if a.metrics != nil {
		a.metrics.ObserveFrame(time.Since(began))
	}

	a.frames++
	if a.frames == 1 {
		a.loading.SetPhase(ui.PhaseComplete)
	}
	if a.loading.Done() && !a.session.Seen(ui.KeyFullscreenPrompt) {
		a.prompt.Open(a.session)
		if alerts := a.hardware.Run(a.session, a.toasts); len(alerts) > 0 {
			log.Printf("hardware alerts: %v", alerts)
		}
	}
}
