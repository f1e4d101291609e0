package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/vmath"
)

func defaultCamera() *Perspective {
	c := NewPerspective(vmath.V3F(30, 30, 30), 60, 0.1, 1000)
	c.SetViewport(120, 40)
	return c
}

func TestSetViewportAccountsForCellAspect(t *testing.T) {
	c := defaultCamera()
	assert.InDelta(t, 1.5, c.Aspect, 1e-12)

	// Degenerate viewports leave aspect untouched
	c.SetViewport(0, 10)
	assert.InDelta(t, 1.5, c.Aspect, 1e-12)
}

func TestRayThroughProjectedPoint(t *testing.T) {
	c := defaultCamera()
	target := vmath.V3F(12, 0, -7)

	ndc, ok := c.Project(target)
	require.True(t, ok)

	ray := c.Ray(ndc.X, ndc.Y)
	assert.True(t, vmath.V3FNear(ray.Origin, c.Position, 1e-12))

	// The ray passes through the target
	toTarget := vmath.V3FNormalize(vmath.V3FSub(target, c.Position))
	assert.InDelta(t, 1, vmath.V3FDot(ray.Dir, toTarget), 1e-9)
}

func TestRayCenterLooksAtTarget(t *testing.T) {
	c := defaultCamera()
	ray := c.Ray(0, 0)
	want := vmath.V3FNormalize(vmath.V3F(-1, -1, -1))
	assert.True(t, vmath.V3FNear(want, ray.Dir, 1e-9), "dir %v", ray.Dir)
}

func TestProjectedRadiusShrinksWithDistance(t *testing.T) {
	c := defaultCamera()
	near := c.ProjectedRadius(vmath.V3F(10, 10, 10), 2)
	far := c.ProjectedRadius(vmath.V3F(-10, -10, -10), 2)
	assert.Greater(t, near, far)
	assert.Zero(t, c.ProjectedRadius(vmath.V3F(60, 60, 60), 2))
}

func TestToScreen(t *testing.T) {
	x, y := ToScreen(vmath.V3F(0, 0, 0), 80, 24)
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 12.0, y)

	x, y = ToScreen(vmath.V3F(-1, 1, 0), 80, 24)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestControlsPreserveInitialPose(t *testing.T) {
	c := defaultCamera()
	ctl := NewControls(c)
	assert.InDelta(t, math.Sqrt(2700), ctl.Distance(), 1e-9)

	moved := ctl.Update()
	assert.False(t, moved)
	assert.True(t, vmath.V3FNear(vmath.V3F(30, 30, 30), c.Position, 1e-9))
}

func TestControlsDampedRotation(t *testing.T) {
	c := defaultCamera()
	ctl := NewControls(c)

	ctl.Rotate(1, 0)
	require.True(t, ctl.Update())
	first := ctl.theta

	// Damping applies a tenth, leaving the rest for later updates
	assert.InDelta(t, math.Pi/4+0.1, first, 1e-9)
	ctl.Update()
	assert.InDelta(t, first+0.09, ctl.theta, 1e-9)

	// Radius is unaffected by rotation
	assert.InDelta(t, math.Sqrt(2700), vmath.V3FMag(c.Position), 1e-9)
}

func TestControlsZoomClamped(t *testing.T) {
	c := defaultCamera()
	ctl := NewControls(c)

	ctl.Zoom(0.01)
	ctl.Update()
	assert.InDelta(t, ctl.MinDistance, ctl.Distance(), 1e-9)

	ctl.EnableZoom = false
	ctl.Zoom(10)
	ctl.Update()
	assert.InDelta(t, ctl.MinDistance, ctl.Distance(), 1e-9)
}

func TestControlsPoleClamp(t *testing.T) {
	c := defaultCamera()
	ctl := NewControls(c)
	ctl.EnableDamping = false

	ctl.Rotate(0, -10)
	ctl.Update()
	assert.InDelta(t, phiEpsilon, ctl.phi, 1e-12)
	assert.Greater(t, c.Position.Y, 0.0)
}

func TestControlsReset(t *testing.T) {
	c := defaultCamera()
	ctl := NewControls(c)
	ctl.EnableDamping = false

	ctl.Rotate(1, 0.3)
	ctl.Zoom(0.5)
	require.True(t, ctl.Update())
	require.False(t, vmath.V3FNear(vmath.V3F(30, 30, 30), c.Position, 1e-6))

	ctl.Rotate(2, 0)
	ctl.Reset()
	assert.True(t, vmath.V3FNear(vmath.V3F(30, 30, 30), c.Position, 1e-9))
	assert.InDelta(t, math.Sqrt(2700), ctl.Distance(), 1e-9)

	assert.False(t, ctl.Update(), "reset drops pending rotation")
	assert.True(t, vmath.V3FNear(vmath.V3F(30, 30, 30), c.Position, 1e-9))
}
