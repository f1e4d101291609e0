package camera

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

const phiEpsilon = 1e-4

// Controls orbits a camera around its target with damped rotation
type Controls struct {
	cam *Perspective

	// DampingFactor scales how much pending rotation is applied per update
	DampingFactor float64
	EnableDamping bool
	EnableZoom    bool

	// AutoRotateSpeed is radians per update
	AutoRotate      bool
	AutoRotateSpeed float64
	MinDistance     float64
	MaxDistance     float64

	radius, theta, phi   float64
	deltaTheta, deltaPhi float64
	pendingScale         float64
	home                 vmath.Vec3F
}

// NewControls derives spherical state from the camera's current position
func NewControls(cam *Perspective) *Controls {
	c := &Controls{
		cam:             cam,
		DampingFactor:   0.1,
		EnableDamping:   true,
		EnableZoom:      true,
		AutoRotateSpeed: 0.002,
		MinDistance:     8,
		MaxDistance:     400,
		pendingScale:    1,
		home:            cam.Position,
	}
	c.sync()
	return c
}

// Reset returns the camera to where the controls were created and drops pending input
func (c *Controls) Reset() {
	c.cam.Position = c.home
	c.deltaTheta, c.deltaPhi = 0, 0
	c.pendingScale = 1
	c.sync()
}

// sync reads spherical coordinates from the camera
func (c *Controls) sync() {
	off := vmath.V3FSub(c.cam.Position, c.cam.Target)
	c.radius = vmath.V3FMag(off)
	if c.radius == 0 {
		c.phi = math.Pi / 2
		return
	}
	c.theta = math.Atan2(off.X, off.Z)
	c.phi = math.Acos(vmath.Clamp(off.Y/c.radius, -1, 1))
}

// Rotate queues an orbit by dTheta around the up axis and dPhi toward the poles
func (c *Controls) Rotate(dTheta, dPhi float64) {
	c.deltaTheta += dTheta
	c.deltaPhi += dPhi
}

// Zoom queues a dolly; scale < 1 moves closer
func (c *Controls) Zoom(scale float64) {
	if !c.EnableZoom || scale <= 0 {
		return
	}
	c.pendingScale *= scale
}

// Distance returns the current distance to the target
func (c *Controls) Distance() float64 {
	return c.radius
}

// Update applies pending input and repositions the camera
// Returns true if the camera moved
func (c *Controls) Update() bool {
	if c.AutoRotate {
		c.deltaTheta -= c.AutoRotateSpeed
	}

	before := c.cam.Position

	if c.EnableDamping {
		c.theta += c.deltaTheta * c.DampingFactor
		c.phi += c.deltaPhi * c.DampingFactor
		c.deltaTheta *= 1 - c.DampingFactor
		c.deltaPhi *= 1 - c.DampingFactor
	} else {
		c.theta += c.deltaTheta
		c.phi += c.deltaPhi
		c.deltaTheta, c.deltaPhi = 0, 0
	}
	c.phi = vmath.Clamp(c.phi, phiEpsilon, math.Pi-phiEpsilon)

	c.radius = vmath.Clamp(c.radius*c.pendingScale, c.MinDistance, c.MaxDistance)
	c.pendingScale = 1

	sinPhi := math.Sin(c.phi)
	off := vmath.V3F(
		c.radius*sinPhi*math.Sin(c.theta),
		c.radius*math.Cos(c.phi),
		c.radius*sinPhi*math.Cos(c.theta),
	)
	c.cam.Position = vmath.V3FAdd(c.cam.Target, off)

	return !vmath.V3FNear(before, c.cam.Position, 1e-9)
}
