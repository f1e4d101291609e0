// Package camera provides a perspective camera sized in terminal cells and
// orbit-style controls around a target point.
package camera

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// CellAspect is the height:width ratio of a terminal cell
const CellAspect = 2.0

// Perspective is a pinhole camera; Aspect is width/height in square units
type Perspective struct {
	Position vmath.Vec3F
	Target   vmath.Vec3F
	Up       vmath.Vec3F
	FovY     float64 // radians
	Aspect   float64
	Near     float64
	Far      float64
}

// NewPerspective builds a camera looking at the origin
func NewPerspective(position vmath.Vec3F, fovYDeg, near, far float64) *Perspective {
	return &Perspective{
		Position: position,
		Up:       vmath.V3F(0, 1, 0),
		FovY:     fovYDeg * math.Pi / 180,
		Aspect:   1,
		Near:     near,
		Far:      far,
	}
}

// SetViewport sets the aspect from a viewport measured in cells
func (c *Perspective) SetViewport(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	c.Aspect = float64(cols) / (float64(rows) * CellAspect)
}

// View returns the world-to-view matrix
func (c *Perspective) View() vmath.Mat4 {
	return vmath.LookAt(c.Position, c.Target, c.Up)
}

// Projection returns the view-to-clip matrix
func (c *Perspective) Projection() vmath.Mat4 {
	return vmath.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection*View
func (c *Perspective) ViewProjection() vmath.Mat4 {
	return c.Projection().Mul(c.View())
}

// Project maps a world point to normalized device coordinates
// ok is false for points behind the camera
func (c *Perspective) Project(world vmath.Vec3F) (vmath.Vec3F, bool) {
	return c.ViewProjection().Project(world)
}

// Depth returns the view-space distance of a point along the view axis
func (c *Perspective) Depth(world vmath.Vec3F) float64 {
	v, _ := c.View().MulPoint(world)
	return -v.Z
}

// Ray returns the world-space ray from the camera through an NDC point
func (c *Perspective) Ray(nx, ny float64) vmath.Ray {
	inv, ok := c.ViewProjection().Inverse()
	if !ok {
		return vmath.NewRay(c.Position, vmath.V3FSub(c.Target, c.Position))
	}
	p, w := inv.MulPoint(vmath.V3F(nx, ny, 0.5))
	if w != 0 {
		p = vmath.V3FScale(p, 1/w)
	}
	return vmath.NewRay(c.Position, vmath.V3FSub(p, c.Position))
}

// ProjectedRadius returns the on-screen radius of a sphere in NDC y units
// Zero when the sphere centre is behind the near plane
func (c *Perspective) ProjectedRadius(center vmath.Vec3F, r float64) float64 {
	d := c.Depth(center)
	if d <= c.Near {
		return 0
	}
	return r / (d * math.Tan(c.FovY/2))
}

// ToScreen maps NDC to viewport coordinates with y growing downward
func ToScreen(ndc vmath.Vec3F, width, height int) (float64, float64) {
	return (ndc.X + 1) / 2 * float64(width), (1 - ndc.Y) / 2 * float64(height)
}
