package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Cue names a UI sound
type Cue uint8

const (
	CueHover Cue = iota
	CueClick
	cueCount
)

// Cues plays hover and click sounds
// Replaying a cue cuts the previous instance of the same cue
type Cues struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	active      [cueCount]*beep.Ctrl
	initialized bool
	muted       bool

	// play hands a streamer to the output; replaced in tests
	play func(beep.Streamer)
}

// NewCues creates a cue player, Initialize must be called before sound is heard
func NewCues(cfg Config) *Cues {
	cfg = cfg.Normalize()
	c := &Cues{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
	c.play = c.playMixer
	return c
}

// Initialize opens the speaker. Disabled config is a successful no-op
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || !c.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(c.rate, c.rate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close silences everything
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	for i, ctrl := range c.active {
		if ctrl != nil {
			ctrl.Paused = true
			c.active[i] = nil
		}
	}
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

func (c *Cues) playMixer(s beep.Streamer) {
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Hover plays the pointer-over cue
func (c *Cues) Hover() {
	c.trigger(CueHover, func() beep.Streamer { return HoverSound(c.rate, c.cfg.HoverVolume) })
}

// Click plays the press cue
func (c *Cues) Click() {
	c.trigger(CueClick, func() beep.Streamer { return ClickSound(c.rate, c.cfg.ClickVolume) })
}

func (c *Cues) trigger(cue Cue, build func() beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted {
		return
	}

	if prev := c.active[cue]; prev != nil {
		speaker.Lock()
		prev.Paused = true
		prev.Streamer = nil
		speaker.Unlock()
	}
	ctrl := &beep.Ctrl{Streamer: build()}
	c.active[cue] = ctrl
	c.play(ctrl)
}

// ToggleMute flips mute and returns the new state
func (c *Cues) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = !c.muted
	return c.muted
}

// Muted reports the mute state
func (c *Cues) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}
