// Package config loads startup settings from defaults, an optional TOML or
// YAML file, ORRERY_* environment variables and command-line flags, in that
// order. Settings are read once; nothing is reconfigured at runtime.
package config

import (
	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/terminal"
	"github.com/lixenwraith/orrery/vmath"
)

// Color mode names accepted in files, env and flags
const (
	ColorAuto      = "auto"
	Color256       = "256"
	ColorTrueColor = "truecolor"
)

// BloomConfig tunes the glow pass
type BloomConfig struct {
	Strength  float64 `toml:"strength" yaml:"strength"`
	Radius    float64 `toml:"radius" yaml:"radius"`
	Threshold float64 `toml:"threshold" yaml:"threshold"`
}

// CameraConfig places the viewer
type CameraConfig struct {
	Position [3]float64 `toml:"position" yaml:"position"`
	FovY     float64    `toml:"fov" yaml:"fov"`
	Near     float64    `toml:"near" yaml:"near"`
	Far      float64    `toml:"far" yaml:"far"`
	Damping  float64    `toml:"damping" yaml:"damping"`
}

// Config is the full startup configuration
type Config struct {
	Bodies    *body.Registry `toml:"system" yaml:"system"` // nil keeps the built-in system
	Seed      int64          `toml:"seed" yaml:"seed"`
	FPS       int            `toml:"fps" yaml:"fps"`
	ColorMode string         `toml:"color" yaml:"color"`
	Stars     int            `toml:"stars" yaml:"stars"`
	Audio     audio.Config   `toml:"audio" yaml:"audio"`
	Bloom     BloomConfig    `toml:"bloom" yaml:"bloom"`
	Camera    CameraConfig   `toml:"camera" yaml:"camera"`
	PanelAddr string         `toml:"panel_addr" yaml:"panel_addr"` // empty disables the feed
	Debug     bool           `toml:"debug" yaml:"debug"`
}

// Default returns the stock configuration
func Default() Config {
	opts := scene.DefaultOptions()
	p := opts.Camera.Position
	return Config{
		Seed:      opts.Seed,
		FPS:       30,
		ColorMode: ColorAuto,
		Stars:     opts.Stars,
		Audio:     audio.DefaultConfig(),
		Bloom: BloomConfig{
			Strength:  opts.Bloom.Strength,
			Radius:    opts.Bloom.Radius,
			Threshold: opts.Bloom.Threshold,
		},
		Camera: CameraConfig{
			Position: [3]float64{p.X, p.Y, p.Z},
			FovY:     opts.Camera.FovY,
			Near:     opts.Camera.Near,
			Far:      opts.Camera.Far,
			Damping:  opts.Camera.Damping,
		},
	}
}

// Validate rejects values the frame loop or renderer cannot use
func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return newFieldError("fps", c.FPS)
	}
	if _, ok := ParseColorMode(c.ColorMode); !ok {
		return newFieldError("color", c.ColorMode)
	}
	if c.Stars < 0 {
		return newFieldError("stars", c.Stars)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return newFieldError("camera.fov", c.Camera.FovY)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return newFieldError("camera.near/far", [2]float64{c.Camera.Near, c.Camera.Far})
	}
	if c.Camera.Damping <= 0 || c.Camera.Damping > 1 {
		return newFieldError("camera.damping", c.Camera.Damping)
	}
	if c.Bloom.Strength < 0 || c.Bloom.Radius < 0 {
		return newFieldError("bloom", c.Bloom)
	}
	if c.Bodies != nil {
		if err := c.Bodies.Validate(); err != nil {
			return err
		}
	}
	c.Audio = c.Audio.Normalize()
	return nil
}

// Registry returns the configured system or the built-in one
func (c *Config) Registry() *body.Registry {
	if c.Bodies != nil {
		return c.Bodies
	}
	return body.Default()
}

// Terminal returns the colour mode, detecting it for "auto"
func (c *Config) Terminal() terminal.ColorMode {
	mode, ok := ParseColorMode(c.ColorMode)
	if !ok {
		return terminal.DetectColorMode()
	}
	return mode
}

// ParseColorMode maps a mode name; "auto" and "" detect from the environment
func ParseColorMode(s string) (terminal.ColorMode, bool) {
	switch s {
	case "", ColorAuto:
		return terminal.DetectColorMode(), true
	case Color256:
		return terminal.ColorMode256, true
	case ColorTrueColor, "true", "24bit":
		return terminal.ColorModeTrueColor, true
	default:
		return terminal.ColorMode256, false
	}
}

// SceneOptions converts to the scene's construction options
func (c *Config) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.Registry = c.Registry()
	opts.Seed = c.Seed
	opts.Stars = c.Stars
	opts.Camera = scene.CameraOptions{
		Position: vmath.V3F(c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2]),
		FovY:     c.Camera.FovY,
		Near:     c.Camera.Near,
		Far:      c.Camera.Far,
		Damping:  c.Camera.Damping,
	}
	opts.Bloom = scene.BloomOptions{
		Strength:  c.Bloom.Strength,
		Radius:    c.Bloom.Radius,
		Threshold: c.Bloom.Threshold,
	}
	return opts
}
