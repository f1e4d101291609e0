package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/terminal"
	"github.com/lixenwraith/orrery/vmath"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

const tomlConfig = `
seed = 7
fps = 24
color = "256"

[audio]
enabled = true
hover_volume = 0.2
click_volume = 0.8

[camera]
position = [0.0, 40.0, 60.0]
fov = 50.0
near = 0.5
far = 500.0
damping = 0.2

[system.star]
name = "Sol"
radius = 4.0

[[system.body]]
name = "Rock"
radius = 1.0
distance = 12.0
speed = 0.01

[[system.satellite]]
name = "Pebble"
parent = "rock"
radius = 0.3
offset = 2.0
phase = 3.0
`

const yamlConfig = `
seed: 9
panel_addr: "127.0.0.1:9090"
bloom:
  strength: 1.5
  radius: 0.5
  threshold: 0.1
system:
  star:
    name: Sol
    radius: 4
  bodies:
    - name: Rock
      radius: 1
      distance: 12
      speed: 0.01
`

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.Equal(t, [3]float64{30, 30, 30}, cfg.Camera.Position)
	assert.Len(t, cfg.Registry().Bodies, len(body.Default().Bodies))
}

func TestDecodeTOML(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(".toml", []byte(tomlConfig), &cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 24, cfg.FPS)
	assert.Equal(t, terminal.ColorMode256, cfg.Terminal())
	assert.InDelta(t, 0.2, cfg.Audio.HoverVolume, 1e-9)
	assert.Equal(t, 44100, cfg.Audio.SampleRate, "unset keys keep defaults")

	reg := cfg.Registry()
	assert.Equal(t, "Sol", reg.Star.Name)
	require.Len(t, reg.Bodies, 1)
	assert.Equal(t, "Rock", reg.Bodies[0].Name)
	require.Len(t, reg.Satellites, 1)
	assert.Equal(t, "rock", reg.Satellites[0].Parent)

	opts := cfg.SceneOptions()
	assert.Equal(t, vmath.V3F(0, 40, 60), opts.Camera.Position)
	assert.Equal(t, 50.0, opts.Camera.FovY)
	assert.Same(t, cfg.Bodies, opts.Registry)
}

func TestDecodeYAML(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(".yml", []byte(yamlConfig), &cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, "127.0.0.1:9090", cfg.PanelAddr)
	assert.Equal(t, BloomConfig{Strength: 1.5, Radius: 0.5, Threshold: 0.1}, cfg.Bloom)
	assert.Equal(t, 30, cfg.FPS, "unset keys keep defaults")
	require.Len(t, cfg.Registry().Bodies, 1)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
		is   error
	}{
		{"json is unsupported", ".json", `{}`, ErrUnsupportedFormat},
		{"no extension", "", `seed = 1`, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Decode(tt.ext, []byte(tt.data), &cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.is))
		})
	}

	t.Run("unknown toml key", func(t *testing.T) {
		cfg := Default()
		assert.Error(t, Decode(".toml", []byte("warp = 9\n"), &cfg))
	})
	t.Run("unknown yaml key", func(t *testing.T) {
		cfg := Default()
		assert.Error(t, Decode(".yaml", []byte("warp: 9\n"), &cfg))
	})
	t.Run("empty yaml", func(t *testing.T) {
		cfg := Default()
		assert.NoError(t, Decode(".yaml", nil, &cfg))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		is     error
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }, ErrInvalidValue},
		{"unknown color", func(c *Config) { c.ColorMode = "sepia" }, ErrInvalidValue},
		{"negative stars", func(c *Config) { c.Stars = -1 }, ErrInvalidValue},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }, ErrInvalidValue},
		{"flat fov", func(c *Config) { c.Camera.FovY = 180 }, ErrInvalidValue},
		{"no damping", func(c *Config) { c.Camera.Damping = 0 }, ErrInvalidValue},
		{"bad registry", func(c *Config) { c.Bodies = &body.Registry{Star: body.Star{Name: "Sun", Radius: 0}} }, body.ErrInvalidRegistry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.is), "got %v", err)
		})
	}
}

func TestValidateClampsVolumes(t *testing.T) {
	cfg := Default()
	cfg.Audio.HoverVolume = 3
	cfg.Audio.ClickVolume = -1
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.0, cfg.Audio.HoverVolume)
	assert.Equal(t, 0.0, cfg.Audio.ClickVolume)
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		want terminal.ColorMode
		ok   bool
	}{
		{"256", terminal.ColorMode256, true},
		{"truecolor", terminal.ColorModeTrueColor, true},
		{"true", terminal.ColorModeTrueColor, true},
		{"24bit", terminal.ColorModeTrueColor, true},
		{"mono", terminal.ColorMode256, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColorMode(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, env(map[string]string{
		"ORRERY_SEED":       "42",
		"ORRERY_FPS":        "60",
		"ORRERY_COLOR":      "truecolor",
		"ORRERY_PANEL_ADDR": ":8088",
		"ORRERY_DEBUG":      "true",
		"ORRERY_MUTE":       "1",
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, ColorTrueColor, cfg.ColorMode)
	assert.Equal(t, ":8088", cfg.PanelAddr)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Audio.Enabled)

	err = ApplyEnv(&cfg, env(map[string]string{"ORRERY_FPS": "fast"}))
	assert.True(t, errors.Is(err, ErrInvalidValue))
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orrery.toml")
	require.NoError(t, os.WriteFile(path, []byte("seed = 3\nfps = 20\ncolor = \"256\"\n"), 0o644))

	fs := flag.NewFlagSet("orrery", flag.ContinueOnError)
	f := NewFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-fps", "50", "-mute"}))

	cfg, err := Load(f, env(map[string]string{"ORRERY_SEED": "11", "ORRERY_FPS": "40"}))
	require.NoError(t, err)
	assert.Equal(t, int64(11), cfg.Seed, "env overrides file")
	assert.Equal(t, 50, cfg.FPS, "flag overrides env")
	assert.Equal(t, Color256, cfg.ColorMode, "file overrides default")
	assert.False(t, cfg.Audio.Enabled)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orrery.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stars: 12\n"), 0o644))

	f := NewFlags(flag.NewFlagSet("orrery", flag.ContinueOnError))
	cfg, err := Load(f, env(map[string]string{"ORRERY_CONFIG": path}))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Stars)
}

func TestLoadMissingFile(t *testing.T) {
	fs := flag.NewFlagSet("orrery", flag.ContinueOnError)
	f := NewFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", filepath.Join(t.TempDir(), "nope.toml")}))

	_, err := Load(f, env(nil))
	assert.Error(t, err)
}
