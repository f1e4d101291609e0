// Package orbit advances circular orbits one tick at a time.
//
// Every orbiter owns an angle that grows by its angular speed per tick; its
// position is always recomputed from that angle and the fixed distance, so it
// never drifts from the orbit circle. Satellites have no angle of their own:
// their position composes the parent's updated position with a local orbit
// driven by the parent's angle times a phase factor.
package orbit

import (
	"math/rand"

	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/vmath"
)

// Orbiter pairs a body with its mutable orbit state
type Orbiter struct {
	Body     *body.CelestialBody
	Angle    float64
	Position vmath.Vec3F
}

// Satellite is derived from a parent orbiter, referenced by index
type Satellite struct {
	Def      *body.SatelliteDef
	Parent   int
	Position vmath.Vec3F
}

// System owns all orbit state for a session
type System struct {
	Orbiters   []Orbiter
	Satellites []Satellite
	ticks      uint64
}

// NewSystem seeds every orbiter with a uniformly random angle in [0, 2π)
// The registry must already be validated
func NewSystem(reg *body.Registry, rng *rand.Rand) (*System, error) {
	angles := make([]float64, len(reg.Bodies))
	for i := range angles {
		angles[i] = rng.Float64() * vmath.TwoPi
	}
	return NewSystemWithAngles(reg, angles)
}

// NewSystemWithAngles builds a system with explicit initial angles
// Missing trailing angles default to zero
func NewSystemWithAngles(reg *body.Registry, angles []float64) (*System, error) {
	parents, err := reg.ParentIndices()
	if err != nil {
		return nil, err
	}

	s := &System{
		Orbiters:   make([]Orbiter, len(reg.Bodies)),
		Satellites: make([]Satellite, len(reg.Satellites)),
	}
	for i := range reg.Bodies {
		o := &s.Orbiters[i]
		o.Body = &reg.Bodies[i]
		if i < len(angles) {
			o.Angle = angles[i]
		}
	}
	for i := range reg.Satellites {
		s.Satellites[i] = Satellite{Def: &reg.Satellites[i], Parent: parents[i]}
	}
	s.place()
	return s, nil
}

// Tick advances every orbiter by its angular speed, then places satellites
// from their parents' updated state
func (s *System) Tick() {
	for i := range s.Orbiters {
		s.Orbiters[i].Angle += s.Orbiters[i].Body.AngularSpeed
	}
	s.place()
	s.ticks++
}

// Advance runs n ticks
func (s *System) Advance(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// Ticks returns the number of ticks run since creation
func (s *System) Ticks() uint64 {
	return s.ticks
}

// place recomputes all positions from current angles, satellites last
func (s *System) place() {
	for i := range s.Orbiters {
		o := &s.Orbiters[i]
		o.Position = vmath.CirclePoint(o.Body.Distance, o.Angle)
	}
	for i := range s.Satellites {
		sat := &s.Satellites[i]
		p := &s.Orbiters[sat.Parent]
		sat.Position = SatellitePosition(p.Position, p.Angle, sat.Def.OffsetRadius, sat.Def.PhaseFactor)
	}
}

// SatellitePosition is the parent position plus a local orbit of radius offset
// at parentAngle*phase
func SatellitePosition(parentPos vmath.Vec3F, parentAngle, offset, phase float64) vmath.Vec3F {
	return vmath.V3FAdd(parentPos, vmath.CirclePoint(offset, parentAngle*phase))
}
