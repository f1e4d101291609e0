package render

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/vmath"
)

// Starfield is a fixed shell of dim points behind the system
type Starfield struct {
	points []vmath.Vec3F
	levels []float64
}

// NewStarfield scatters n stars on a shell of the given radius
func NewStarfield(n int, radius float64, seed int64) *Starfield {
	rng := rand.New(rand.NewSource(seed))
	s := &Starfield{
		points: make([]vmath.Vec3F, n),
		levels: make([]float64, n),
	}
	for i := range s.points {
		// uniform on the sphere
		z := rng.Float64()*2 - 1
		a := rng.Float64() * vmath.TwoPi
		r := math.Sqrt(1 - z*z)
		s.points[i] = vmath.V3F(radius*r*math.Cos(a), radius*z, radius*r*math.Sin(a))
		s.levels[i] = 0.25 + 0.5*rng.Float64()*rng.Float64()
	}
	return s
}

// Draw implements Drawable
func (s *Starfield) Draw(f *Frame, v *View) {
	for i, p := range s.points {
		x, y, d, ok := v.ToPixel(f, p)
		if !ok {
			continue
		}
		l := s.levels[i]
		f.Plot(pixel(x), pixel(y), d, colorful.Color{R: l, G: l, B: l * 1.1})
	}
}

// Ring traces a circular orbit path in the y=0 plane
type Ring struct {
	Radius float64
	Color  colorful.Color
	Alpha  float64
}

// Draw implements Drawable
func (r *Ring) Draw(f *Frame, v *View) {
	if r.Radius <= 0 {
		return
	}
	// enough samples that adjacent points land on neighbouring pixels
	steps := int(r.Radius*float64(f.Height)/4) + 64
	steps = min(steps, 4096)
	prevX, prevY := -1, -1
	for i := 0; i < steps; i++ {
		p := vmath.CirclePoint(r.Radius, vmath.TwoPi*float64(i)/float64(steps))
		x, y, d, ok := v.ToPixel(f, p)
		if !ok {
			continue
		}
		ix, iy := pixel(x), pixel(y)
		if ix == prevX && iy == prevY {
			continue
		}
		prevX, prevY = ix, iy
		f.Accumulate(ix, iy, d, r.Color, r.Alpha)
	}
}

// Marker draws a pulsing halo around a selected body
type Marker struct {
	Center  vmath.Vec3F
	Radius  float64
	Color   colorful.Color
	Phase   float64 // seconds, drives the pulse
	Visible bool
}

// Draw implements Drawable
func (m *Marker) Draw(f *Frame, v *View) {
	if !m.Visible || m.Radius <= 0 {
		return
	}
	cx, cy, d, ok := v.ToPixel(f, m.Center)
	if !ok {
		return
	}
	pr := v.Camera.ProjectedRadius(m.Center, m.Radius)*float64(f.Height)/2 + 2
	pulse := 0.55 + 0.45*math.Sin(m.Phase*4)
	steps := int(pr*8) + 24
	depth := d - m.Radius
	for i := 0; i < steps; i++ {
		a := vmath.TwoPi * float64(i) / float64(steps)
		x := cx + pr*math.Cos(a)
		y := cy + pr*math.Sin(a)
		f.Accumulate(pixel(x), pixel(y), depth, m.Color, pulse)
	}
}

// pixel maps a fractional pixel coordinate to its index, flooring negatives
func pixel(v float64) int {
	return int(math.Floor(v))
}
