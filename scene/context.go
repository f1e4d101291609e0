// Package scene owns one running model: the body registry, the orbit
// simulation, the camera and the render pipeline. It is the only place that
// mutates orbit or camera state; input reaches it through its methods.
package scene

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/pick"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/vmath"
)

const (
	starShell    = 600.0
	sunGlow      = 1.35
	orbitStep    = 0.15 // radians of pending orbit per key press
	zoomStep     = 0.85
	dragTheta    = 0.08 // radians per dragged column
	dragPhi      = 0.12 // radians per dragged row
	noSelection  = -1
	markerMargin = 1.4
)

var (
	ringColor   = colorful.Color{R: 0.32, G: 0.36, B: 0.48}
	markerColor = colorful.Color{R: 1, G: 0.8, B: 0.2}
)

// Context is the simulation context for one session
type Context struct {
	reg      *body.Registry
	sys      *orbit.System
	cam      *camera.Perspective
	controls *camera.Controls
	picker   *pick.Service

	composer *render.Composer
	view     *render.View
	sun      *render.SphereMesh
	planets  []*render.SphereMesh
	moons    []*render.SphereMesh
	rings    []render.Drawable
	marker   *render.Marker

	candidates []pick.Candidate
	selected   int // index into candidates

	width, height int
	paused        bool
	showRings     bool
}

// New builds a context. The registry is validated here
func New(opts Options, sink pick.InfoSink) (*Context, error) {
	reg := opts.Registry
	if reg == nil {
		reg = body.Default()
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	var sys *orbit.System
	var err error
	if opts.Angles != nil {
		sys, err = orbit.NewSystemWithAngles(reg, opts.Angles)
	} else {
		sys, err = orbit.NewSystem(reg, rand.New(rand.NewSource(opts.Seed)))
	}
	if err != nil {
		return nil, err
	}

	cam := camera.NewPerspective(opts.Camera.Position, opts.Camera.FovY, opts.Camera.Near, opts.Camera.Far)
	controls := camera.NewControls(cam)
	if opts.Camera.Damping > 0 {
		controls.DampingFactor = opts.Camera.Damping
	}

	lightColor, err := body.ParseColor(opts.Light.Color)
	if err != nil {
		return nil, errors.Wrap(err, "light colour")
	}

	c := &Context{
		reg:       reg,
		sys:       sys,
		cam:       cam,
		controls:  controls,
		picker:    pick.NewService(sink),
		selected:  noSelection,
		showRings: true,
		view: &render.View{
			Camera: cam,
			Light: render.PointLight{
				Color:     lightColor,
				Intensity: opts.Light.Intensity,
				Distance:  opts.Light.Distance,
			},
			Ambient: opts.Light.Ambient,
		},
	}

	if err := c.buildMeshes(); err != nil {
		return nil, err
	}

	c.marker = &render.Marker{Color: markerColor}
	drawables := []render.Drawable{
		render.NewStarfield(opts.Stars, starShell, opts.Seed),
		render.DrawFunc(c.drawRings),
		c.sun,
	}
	for _, m := range c.planets {
		drawables = append(drawables, m)
	}
	for _, m := range c.moons {
		drawables = append(drawables, m)
	}
	drawables = append(drawables, c.marker)

	bg := render.FromRGB(render.RGBBackground)
	c.composer = render.NewComposer(0, 0,
		&render.RenderPass{View: c.view, Background: bg, Drawables: drawables},
		render.NewBloomPass(opts.Bloom.Strength, opts.Bloom.Radius, opts.Bloom.Threshold),
	)

	c.refresh()
	return c, nil
}

func (c *Context) buildMeshes() error {
	sunColor, err := body.ParseColor(c.reg.Star.Color)
	if err != nil {
		return errors.Wrapf(err, "star %s", c.reg.Star.Name)
	}
	c.sun = &render.SphereMesh{
		Radius:   c.reg.Star.Radius,
		Color:    colorful.Color{R: sunColor.R * sunGlow, G: sunColor.G * sunGlow, B: sunColor.B * sunGlow},
		Emissive: true,
	}

	c.planets = make([]*render.SphereMesh, len(c.reg.Bodies))
	for i := range c.reg.Bodies {
		b := &c.reg.Bodies[i]
		col, err := body.ParseColor(b.Color)
		if err != nil {
			return errors.Wrapf(err, "body %s", b.Name)
		}
		c.planets[i] = &render.SphereMesh{Radius: b.Radius, Color: col}
		c.rings = append(c.rings, &render.Ring{Radius: b.Distance, Color: ringColor, Alpha: 0.35})
	}

	c.moons = make([]*render.SphereMesh, len(c.reg.Satellites))
	for i := range c.reg.Satellites {
		s := &c.reg.Satellites[i]
		col, err := body.ParseColor(s.Color)
		if err != nil {
			return errors.Wrapf(err, "satellite %s", s.Name)
		}
		c.moons[i] = &render.SphereMesh{Radius: s.Radius, Color: col}
	}
	return nil
}

func (c *Context) drawRings(f *render.Frame, v *render.View) {
	if !c.showRings {
		return
	}
	for _, r := range c.rings {
		r.Draw(f, v)
	}
}

// refresh copies simulation state into meshes and candidates
func (c *Context) refresh() {
	n := 1 + len(c.sys.Orbiters) + len(c.sys.Satellites)
	if cap(c.candidates) < n {
		c.candidates = make([]pick.Candidate, 0, n)
	}
	c.candidates = c.candidates[:0]

	st := &c.reg.Star
	c.candidates = append(c.candidates, pick.Candidate{
		Kind:        pick.KindStar,
		Name:        st.Name,
		Description: st.Description,
		Link:        st.Link,
		Bounds:      vmath.Sphere{Radius: st.Radius},
	})
	for i := range c.sys.Orbiters {
		o := &c.sys.Orbiters[i]
		c.planets[i].Center = o.Position
		c.candidates = append(c.candidates, pick.Candidate{
			Kind:        pick.KindPlanet,
			Index:       i,
			Name:        o.Body.Name,
			Description: o.Body.Description,
			Link:        o.Body.Link,
			Bounds:      vmath.Sphere{Center: o.Position, Radius: o.Body.Radius},
		})
	}
	for i := range c.sys.Satellites {
		s := &c.sys.Satellites[i]
		c.moons[i].Center = s.Position
		c.candidates = append(c.candidates, pick.Candidate{
			Kind:        pick.KindSatellite,
			Index:       i,
			Name:        s.Def.Name,
			Description: s.Def.Description,
			Link:        s.Def.Link,
			Bounds:      vmath.Sphere{Center: s.Position, Radius: s.Def.Radius},
		})
	}

	if c.selected != noSelection && c.selected < len(c.candidates) {
		b := c.candidates[c.selected].Bounds
		c.marker.Center = b.Center
		c.marker.Radius = b.Radius * markerMargin
		c.marker.Visible = true
	} else {
		c.marker.Visible = false
	}
}

// Tick advances the orbits one step unless paused, then applies camera damping
func (c *Context) Tick() {
	if !c.paused {
		c.sys.Tick()
	}
	c.controls.Update()
	c.refresh()
}

// Candidates returns the pickable bodies at their current positions
// The slice is reused by the next Tick
func (c *Context) Candidates() []pick.Candidate {
	return c.candidates
}

// PointerMove hovers the body under cell (x, y)
func (c *Context) PointerMove(x, y int) (pick.Hit, bool) {
	return c.picker.Hover(c.cam, c.candidates, x, y, c.width, c.height)
}

// PointerDown selects the body under cell (x, y); a miss clears the selection
func (c *Context) PointerDown(x, y int) (pick.Hit, bool) {
	hit, ok := c.picker.Select(c.cam, c.candidates, x, y, c.width, c.height)
	c.selected = noSelection
	if ok {
		for i := range c.candidates {
			if c.candidates[i].Kind == hit.Kind && c.candidates[i].Index == hit.Index {
				c.selected = i
				break
			}
		}
	}
	c.refresh()
	return hit, ok
}

// ClearSelection drops the marker, used when the panel is closed
func (c *Context) ClearSelection() {
	c.selected = noSelection
	c.refresh()
}

// Selected returns the selected candidate
func (c *Context) Selected() (pick.Candidate, bool) {
	if c.selected == noSelection || c.selected >= len(c.candidates) {
		return pick.Candidate{}, false
	}
	return c.candidates[c.selected], true
}

// Resize updates the camera aspect and frame size for a width x height cell viewport
func (c *Context) Resize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	c.cam.SetViewport(c.width, c.height)
	c.composer.SetSize(c.width, c.height)
}

// Size returns the viewport in cells
func (c *Context) Size() (int, int) {
	return c.width, c.height
}

// Render implements render.SystemRenderer: render pass then bloom, resolved into buf
func (c *Context) Render(ctx render.RenderContext, buf *render.Buffer) {
	if ctx.ScreenWidth != c.width || ctx.ScreenHeight != c.height {
		c.Resize(ctx.ScreenWidth, ctx.ScreenHeight)
	}
	c.marker.Phase = ctx.Elapsed
	c.composer.Render(buf)
}

// Orbit queues a camera orbit in key-press steps
func (c *Context) Orbit(dx, dy float64) {
	c.controls.Rotate(dx*orbitStep, dy*orbitStep)
}

// Drag queues a camera orbit from a pointer drag measured in cells
func (c *Context) Drag(dx, dy int) {
	c.controls.Rotate(-float64(dx)*dragTheta, -float64(dy)*dragPhi)
}

// Zoom dollies in (steps > 0) or out (steps < 0)
func (c *Context) Zoom(steps int) {
	scale := 1.0
	for ; steps > 0; steps-- {
		scale *= zoomStep
	}
	for ; steps < 0; steps++ {
		scale /= zoomStep
	}
	c.controls.Zoom(scale)
}

// ResetView restores the initial camera
func (c *Context) ResetView() {
	c.controls.Reset()
}

// TogglePause stops or resumes orbit ticks; the camera stays live
func (c *Context) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// Paused reports whether orbits are frozen
func (c *Context) Paused() bool {
	return c.paused
}

// ToggleRings shows or hides orbit paths
func (c *Context) ToggleRings() bool {
	c.showRings = !c.showRings
	return c.showRings
}

// SetObserver installs a hook called for every pick
func (c *Context) SetObserver(fn pick.Observer) {
	c.picker.Observer = fn
}

// Ticks returns simulation ticks so far
func (c *Context) Ticks() uint64 {
	return c.sys.Ticks()
}

// Distance returns the camera distance from the origin
func (c *Context) Distance() float64 {
	return c.controls.Distance()
}

// System exposes the orbit state for reading
func (c *Context) System() *orbit.System {
	return c.sys
}

// Camera exposes the camera for reading
func (c *Context) Camera() *camera.Perspective {
	return c.cam
}
