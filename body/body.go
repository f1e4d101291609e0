// Package body holds the static celestial body registry: the central star, the
// orbiting bodies in stable order, and satellites that reference a parent body.
package body

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidRegistry is wrapped by every validation failure
	ErrInvalidRegistry = errors.New("invalid body registry")
)

// CelestialBody is an orbiting body; immutable once the registry is built
type CelestialBody struct {
	Name         string  `toml:"name" yaml:"name"`
	Radius       float64 `toml:"radius" yaml:"radius"`
	Distance     float64 `toml:"distance" yaml:"distance"`
	AngularSpeed float64 `toml:"speed" yaml:"speed"` // radians per tick
	Description  string  `toml:"description" yaml:"description"`
	Link         string  `toml:"link" yaml:"link"`
	Color        string  `toml:"color" yaml:"color"`
}

// SatelliteDef is a body whose position derives from its parent's angle
type SatelliteDef struct {
	Name         string  `toml:"name" yaml:"name"`
	Parent       string  `toml:"parent" yaml:"parent"`
	Radius       float64 `toml:"radius" yaml:"radius"`
	OffsetRadius float64 `toml:"offset" yaml:"offset"`
	PhaseFactor  float64 `toml:"phase" yaml:"phase"`
	Description  string  `toml:"description" yaml:"description"`
	Link         string  `toml:"link" yaml:"link"`
	Color        string  `toml:"color" yaml:"color"`
}

// Star is the central emissive body fixed at the origin
type Star struct {
	Name        string  `toml:"name" yaml:"name"`
	Radius      float64 `toml:"radius" yaml:"radius"`
	Description string  `toml:"description" yaml:"description"`
	Link        string  `toml:"link" yaml:"link"`
	Color       string  `toml:"color" yaml:"color"`
}

// Registry is the ordered body configuration
// Index order is stable and satellites reference parents by that order
type Registry struct {
	Star       Star            `toml:"star" yaml:"star"`
	Bodies     []CelestialBody `toml:"body" yaml:"bodies"`
	Satellites []SatelliteDef  `toml:"satellite" yaml:"satellites"`
}

// DefaultColor is used when a body has no colour configured
var DefaultColor = colorful.Color{R: 0.67, G: 0.67, B: 0.67}

// Index returns the position of the named body, case-insensitive
func (r *Registry) Index(name string) (int, bool) {
	for i := range r.Bodies {
		if strings.EqualFold(r.Bodies[i].Name, name) {
			return i, true
		}
	}
	return -1, false
}

// ParentIndices resolves every satellite's parent to a body index
func (r *Registry) ParentIndices() ([]int, error) {
	idx := make([]int, len(r.Satellites))
	for i, s := range r.Satellites {
		p, ok := r.Index(s.Parent)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidRegistry, "satellite %q: unknown parent %q", s.Name, s.Parent)
		}
		idx[i] = p
	}
	return idx, nil
}

// Validate checks names, geometry, colours, and satellite parents
func (r *Registry) Validate() error {
	seen := make(map[string]struct{}, len(r.Bodies)+len(r.Satellites)+1)
	claim := func(kind, name string) error {
		if strings.TrimSpace(name) == "" {
			return errors.Wrapf(ErrInvalidRegistry, "%s with empty name", kind)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return errors.Wrapf(ErrInvalidRegistry, "duplicate name %q", name)
		}
		seen[key] = struct{}{}
		return nil
	}

	if r.Star.Name != "" {
		if err := claim("star", r.Star.Name); err != nil {
			return err
		}
		if r.Star.Radius <= 0 {
			return errors.Wrapf(ErrInvalidRegistry, "star %q: radius must be positive", r.Star.Name)
		}
		if _, err := ParseColor(r.Star.Color); err != nil {
			return errors.Wrapf(err, "star %q", r.Star.Name)
		}
	}

	if len(r.Bodies) == 0 {
		return errors.Wrap(ErrInvalidRegistry, "no bodies")
	}
	for _, b := range r.Bodies {
		if err := claim("body", b.Name); err != nil {
			return err
		}
		if b.Radius <= 0 {
			return errors.Wrapf(ErrInvalidRegistry, "body %q: radius must be positive", b.Name)
		}
		if b.Distance <= 0 {
			return errors.Wrapf(ErrInvalidRegistry, "body %q: distance must be positive", b.Name)
		}
		if _, err := ParseColor(b.Color); err != nil {
			return errors.Wrapf(err, "body %q", b.Name)
		}
	}

	for _, s := range r.Satellites {
		if err := claim("satellite", s.Name); err != nil {
			return err
		}
		if s.Radius <= 0 {
			return errors.Wrapf(ErrInvalidRegistry, "satellite %q: radius must be positive", s.Name)
		}
		if s.OffsetRadius <= 0 {
			return errors.Wrapf(ErrInvalidRegistry, "satellite %q: offset must be positive", s.Name)
		}
		if _, err := ParseColor(s.Color); err != nil {
			return errors.Wrapf(err, "satellite %q", s.Name)
		}
	}

	_, err := r.ParentIndices()
	return err
}

// ParseColor parses "#rrggbb"; empty yields DefaultColor
func ParseColor(hex string) (colorful.Color, error) {
	if hex == "" {
		return DefaultColor, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, errors.Wrapf(ErrInvalidRegistry, "bad colour %q", hex)
	}
	return c, nil
}
