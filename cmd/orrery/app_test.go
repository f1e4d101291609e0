package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/panel"
	"github.com/lixenwraith/orrery/terminal"
	"github.com/lixenwraith/orrery/ui"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := terminal.NewWithScreen(sim, terminal.ColorModeTrueColor)
	require.NoError(t, term.Init())
	sim.SetSize(80, 40)
	t.Cleanup(term.Fini)

	cfg := config.Default()
	cfg.Stars = 0
	cfg.Audio.Enabled = false
	require.NoError(t, cfg.Validate())

	a, err := newApp(cfg, term, audio.NewCues(cfg.Audio), panel.NewMetrics(), nil)
	require.NoError(t, err)
	a.hardware.Probe = func() ui.DeviceInfo {
		return ui.DeviceInfo{OS: "linux", Arch: "amd64", CPUThreads: 1, RAMGB: 16, HeapMB: 10}
	}
	return a
}

func keyRune(r rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r}
}

func TestSelectOpensPanelAndCloseButtonHidesIt(t *testing.T) {
	a := newTestApp(t)
	t0 := time.Now()
	a.frame(t0)

	a.pointerDown(input.Pointer{X: 40, Y: 20})
	require.True(t, a.info.Open())
	assert.Equal(t, "Sun", a.info.Record().Name)
	_, selected := a.scene.Selected()
	assert.True(t, selected)

	// slide in fully before aiming at the close button
	a.frame(t0.Add(time.Second))
	b := a.info.Bounds()
	require.Equal(t, 0, b.X)
	closeX := b.X + b.W - 3

	a.pointerDown(input.Pointer{X: closeX, Y: b.Y})
	assert.False(t, a.info.Open())
	_, selected = a.scene.Selected()
	assert.False(t, selected)
}

func TestClickInsidePanelDoesNotPick(t *testing.T) {
	a := newTestApp(t)
	t0 := time.Now()
	a.frame(t0)
	a.pointerDown(input.Pointer{X: 40, Y: 20})
	a.frame(t0.Add(time.Second))

	b := a.info.Bounds()
	a.pointerDown(input.Pointer{X: b.X + 2, Y: b.Y + 2})
	assert.True(t, a.info.Open(), "panel stays open")
	assert.Equal(t, "Sun", a.info.Record().Name)
}

func TestEmptySpaceClickHidesPanel(t *testing.T) {
	a := newTestApp(t)
	a.frame(time.Now())
	a.pointerDown(input.Pointer{X: 40, Y: 20})
	require.True(t, a.info.Open())

	a.pointerDown(input.Pointer{X: 40, Y: 0})
	assert.False(t, a.info.Open())
}

func TestHoverTracksBodyUnderPointer(t *testing.T) {
	a := newTestApp(t)
	a.frame(time.Now())

	a.pointerMove(input.Pointer{X: 40, Y: 20})
	assert.Equal(t, "Sun", a.hovered)
	assert.True(t, a.label.IsVisible())

	a.pointerMove(input.Pointer{X: 40, Y: 0})
	assert.Empty(t, a.hovered)
	assert.False(t, a.label.IsVisible())
}

func TestKeyActions(t *testing.T) {
	a := newTestApp(t)
	a.frame(time.Now())

	assert.True(t, a.key(keyRune(' '), input.ActionPause))
	assert.True(t, a.scene.Paused())

	assert.True(t, a.key(keyRune('m'), input.ActionToggleMute))
	assert.True(t, a.cues.Muted())

	assert.True(t, a.key(keyRune('f'), input.ActionToggleHUD))
	assert.True(t, a.prompt.Immersive())

	a.pointerDown(input.Pointer{X: 40, Y: 20})
	require.True(t, a.info.Open())
	assert.True(t, a.key(terminal.Event{Type: terminal.EventKey, Key: terminal.KeyEscape}, input.ActionClose))
	assert.False(t, a.info.Open())

	assert.False(t, a.key(keyRune('q'), input.ActionQuit))
}

func TestPausedFramesHoldTicks(t *testing.T) {
	a := newTestApp(t)
	t0 := time.Now()
	a.frame(t0)
	a.frame(t0.Add(33 * time.Millisecond))
	before := a.scene.Ticks()
	require.Greater(t, before, uint64(0))

	a.scene.TogglePause()
	a.frame(t0.Add(66 * time.Millisecond))
	assert.Equal(t, before, a.scene.Ticks())
}

func TestLoadingThenPromptOncePerSession(t *testing.T) {
	a := newTestApp(t)
	t0 := time.Now()
	for i := 0; i < 40; i++ {
		a.frame(t0.Add(time.Duration(i) * 100 * time.Millisecond))
	}

	require.True(t, a.loading.Done())
	assert.True(t, a.prompt.IsVisible())
	assert.True(t, a.session.Seen(ui.KeyHardwareAlert))
	assert.Equal(t, 1, a.toasts.Len(), "one thread raises one alert")

	// prompt swallows orbit keys and takes y/n
	assert.True(t, a.key(keyRune('h'), input.ActionOrbitLeft))
	assert.True(t, a.key(keyRune('y'), input.ActionConfirm))
	assert.False(t, a.prompt.IsVisible())
	assert.True(t, a.prompt.Immersive())

	a.frame(t0.Add(5 * time.Second))
	assert.False(t, a.prompt.IsVisible(), "not offered twice")
}

func TestRunQuitsOnQuitKey(t *testing.T) {
	a := newTestApp(t)
	src := make(input.ChanSource, 4)
	src <- terminal.Event{Type: terminal.EventMouse, MouseX: 40, MouseY: 20, MouseAction: terminal.MouseActionMove}
	src <- keyRune('q')

	done := make(chan struct{})
	go func() {
		run(a, src, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return")
	}
}

func TestRunStopsWhenInputCloses(t *testing.T) {
	a := newTestApp(t)
	src := make(input.ChanSource)
	close(src)

	done := make(chan struct{})
	go func() {
		run(a, src, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return")
	}
}
