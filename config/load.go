package config

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "ORRERY_"

var (
	// ErrUnsupportedFormat is returned for config files that are not TOML or YAML
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrInvalidValue wraps every rejected setting
	ErrInvalidValue = errors.New("invalid config value")
)

func newFieldError(field string, v any) error {
	return errors.Wrapf(ErrInvalidValue, "%s: %v", field, v)
}

// LoadFile reads path over cfg; the extension selects the decoder
func LoadFile(path string, cfg *Config) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return errors.Wrapf(err, "expand %s", path)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	return Decode(filepath.Ext(expanded), data, cfg)
}

// Decode parses data in the format named by ext (".toml", ".yaml", ".yml")
func Decode(ext string, data []byte, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return errors.Wrap(err, "decode toml")
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return errors.Wrap(err, "decode yaml")
		}
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	return nil
}

// ApplyEnv overlays ORRERY_* variables; lookup is os.LookupEnv outside tests
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, f := range envFields(cfg) {
		v, ok := lookup(EnvPrefix + f.name)
		if !ok {
			continue
		}
		if err := f.set(v); err != nil {
			return errors.Wrapf(ErrInvalidValue, "%s%s=%q", EnvPrefix, f.name, v)
		}
	}
	return nil
}

type envField struct {
	name string
	set  func(string) error
}

func envFields(cfg *Config) []envField {
	return []envField{
		{"SEED", func(v string) (err error) { cfg.Seed, err = strconv.ParseInt(v, 10, 64); return }},
		{"FPS", func(v string) (err error) { cfg.FPS, err = strconv.Atoi(v); return }},
		{"COLOR", func(v string) error { cfg.ColorMode = v; return nil }},
		{"STARS", func(v string) (err error) { cfg.Stars, err = strconv.Atoi(v); return }},
		{"PANEL_ADDR", func(v string) error { cfg.PanelAddr = v; return nil }},
		{"DEBUG", func(v string) (err error) { cfg.Debug, err = strconv.ParseBool(v); return }},
		{"MUTE", func(v string) error {
			mute, err := strconv.ParseBool(v)
			if err == nil && mute {
				cfg.Audio.Enabled = false
			}
			return err
		}},
	}
}

// Flags binds command-line overrides
type Flags struct {
	fs        *flag.FlagSet
	path      string
	seed      int64
	fps       int
	color     string
	panelAddr string
	debug     bool
	mute      bool
}

// NewFlags registers the orrery flags on fs
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", "", "Config file (.toml, .yaml)")
	fs.Int64Var(&f.seed, "seed", 0, "Seed for initial orbit angles")
	fs.IntVar(&f.fps, "fps", 0, "Frames per second")
	fs.StringVar(&f.color, "color", "", "Color mode: auto, 256, truecolor")
	fs.StringVar(&f.panelAddr, "panel-addr", "", "Serve the display feed and metrics on this address")
	fs.BoolVar(&f.debug, "debug", false, "Write debug log to logs/orrery.log")
	fs.BoolVar(&f.mute, "mute", false, "Disable audio cues")
	return f
}

// Path returns the -config value, falling back to ORRERY_CONFIG
func (f *Flags) Path(lookup func(string) (string, bool)) string {
	if f.path != "" {
		return f.path
	}
	if v, ok := lookup(EnvPrefix + "CONFIG"); ok {
		return v
	}
	return ""
}

// Apply overlays flags that were set explicitly
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed":
			cfg.Seed = f.seed
		case "fps":
			cfg.FPS = f.fps
		case "color":
			cfg.ColorMode = f.color
		case "panel-addr":
			cfg.PanelAddr = f.panelAddr
		case "debug":
			cfg.Debug = f.debug
		case "mute":
			if f.mute {
				cfg.Audio.Enabled = false
			}
		}
	})
}

// Load builds the configuration from every source and validates it
func Load(f *Flags, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path := f.Path(lookup); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	f.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "config")
	}
	return cfg, nil
}
