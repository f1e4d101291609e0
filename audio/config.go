package audio

// Config controls the UI cues
type Config struct {
	Enabled     bool    `toml:"enabled" yaml:"enabled"`
	HoverVolume float64 `toml:"hover_volume" yaml:"hover_volume"`
	ClickVolume float64 `toml:"click_volume" yaml:"click_volume"`
	SampleRate  int     `toml:"sample_rate" yaml:"sample_rate"`
}

// DefaultConfig returns the stock cue levels
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		HoverVolume: 0.1,
		ClickVolume: 1.0,
		SampleRate:  44100,
	}
}

// Normalize clamps volumes to [0, 1] and fills a missing sample rate
func (c Config) Normalize() Config {
	c.HoverVolume = clamp01(c.HoverVolume)
	c.ClickVolume = clamp01(c.ClickVolume)
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultConfig().SampleRate
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
