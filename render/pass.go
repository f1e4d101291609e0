package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/vmath"
)

// Pass transforms a frame in place
type Pass interface {
	Render(f *Frame)
}

// Composer runs passes in order over a shared frame
type Composer struct {
	frame  *Frame
	passes []Pass
}

// NewComposer creates a composer for a cols x rows cell grid
func NewComposer(cols, rows int, passes ...Pass) *Composer {
	return &Composer{frame: NewFrame(cols, rows), passes: passes}
}

// AddPass appends a pass to the chain
func (c *Composer) AddPass(p Pass) {
	c.passes = append(c.passes, p)
}

// SetSize resizes the frame
func (c *Composer) SetSize(cols, rows int) {
	c.frame.Resize(cols, rows)
}

// Render runs all passes then resolves into buf
func (c *Composer) Render(buf *Buffer) {
	for _, p := range c.passes {
		p.Render(c.frame)
	}
	c.frame.Resolve(buf)
}

// PointLight emits from Position with inverse-square decay cut off at Distance
type PointLight struct {
	Position  vmath.Vec3F
	Color     colorful.Color
	Intensity float64
	Distance  float64
}

// Irradiance returns the light reaching p, before the surface term
func (l PointLight) Irradiance(p vmath.Vec3F) float64 {
	d2 := vmath.V3FMagSq(vmath.V3FSub(p, l.Position))
	if d2 < 1e-6 {
		d2 = 1e-6
	}
	att := l.Intensity / d2
	if l.Distance > 0 {
		r := d2 / (l.Distance * l.Distance)
		w := vmath.Clamp(1-r*r, 0, 1)
		att *= w * w
	}
	return att
}

// View is the per-frame camera and lighting state shared by drawables
type View struct {
	Camera  *camera.Perspective
	Light   PointLight
	Ambient float64

	invVP vmath.Mat4
	vp    vmath.Mat4
	ok    bool
}

// Prepare caches the camera matrices for a frame
func (v *View) Prepare() {
	v.vp = v.Camera.ViewProjection()
	v.invVP, v.ok = v.vp.Inverse()
}

// PixelRay returns the world ray through the centre of pixel (x, y) of f
func (v *View) PixelRay(f *Frame, x, y int) vmath.Ray {
	nx := (float64(x)+0.5)/float64(f.Width)*2 - 1
	ny := 1 - (float64(y)+0.5)/float64(f.Height)*2
	if !v.ok {
		return v.Camera.Ray(nx, ny)
	}
	p, w := v.invVP.MulPoint(vmath.V3F(nx, ny, 0.5))
	if w != 0 {
		p = vmath.V3FScale(p, 1/w)
	}
	return vmath.NewRay(v.Camera.Position, vmath.V3FSub(p, v.Camera.Position))
}

// ToPixel projects a world point to fractional pixel coordinates and its eye distance
func (v *View) ToPixel(f *Frame, world vmath.Vec3F) (float64, float64, float64, bool) {
	ndc, ok := v.vp.Project(world)
	if !ok || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}
	px, py := camera.ToScreen(ndc, f.Width, f.Height)
	return px, py, vmath.V3FDist(world, v.Camera.Position), true
}

// Drawable rasterizes itself into a frame
type Drawable interface {
	Draw(f *Frame, v *View)
}

// DrawFunc adapts a function to Drawable
type DrawFunc func(f *Frame, v *View)

func (fn DrawFunc) Draw(f *Frame, v *View) { fn(f, v) }

// RenderPass clears the frame and draws the scene
type RenderPass struct {
	View       *View
	Background colorful.Color
	Drawables  []Drawable
}

func (p *RenderPass) Render(f *Frame) {
	f.Clear(p.Background)
	if p.View == nil {
		return
	}
	p.View.Prepare()
	for _, d := range p.Drawables {
		d.Draw(f, p.View)
	}
}
