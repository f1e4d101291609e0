package render

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/terminal"
	"github.com/lixenwraith/orrery/vmath"
)

func TestBlendOps(t *testing.T) {
	a := RGB{100, 100, 100}
	b := RGB{200, 50, 0}

	tests := []struct {
		name string
		got  RGB
		want RGB
	}{
		{"alpha full", Blend(a, b, 1), b},
		{"alpha none", Blend(a, b, 0), a},
		{"alpha half", Blend(a, b, 0.5), RGB{150, 75, 50}},
		{"add clamps", Add(a, b, 1), RGB{255, 150, 100}},
		{"max", Max(a, b, 1), RGB{200, 100, 100}},
		{"screen black identity", Screen(a, RGB{}, 1), a},
		{"screen white", Screen(a, RGB{255, 255, 255}, 1), RGB{255, 255, 255}},
		{"scale clamps", Scale(b, 2), RGB{255, 100, 0}},
		{"lerp ends", Lerp(a, b, 1), b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestBufferSetModes(t *testing.T) {
	buf := NewBuffer(4, 2)

	buf.SetWithBg(0, 0, 'a', RGBText, RGB{10, 10, 10})
	buf.Set(0, 0, 0, RGB{}, RGB{20, 20, 20}, BlendAdd, 1, terminal.AttrNone)
	c := buf.Get(0, 0)
	assert.Equal(t, 'a', c.Rune, "zero rune keeps existing glyph")
	assert.Equal(t, RGB{30, 30, 30}, c.Bg)

	buf.SetFgOnly(1, 0, 'b', RGBAccent, terminal.AttrBold)
	c = buf.Get(1, 0)
	assert.Equal(t, RGBAccent, c.Fg)
	assert.Equal(t, terminal.AttrBold, c.Attrs)

	// out of bounds writes are dropped
	buf.SetWithBg(10, 10, 'x', RGBText, RGBText)
	assert.Equal(t, emptyCell, buf.Get(10, 10))

	cells := buf.Cells()
	assert.Equal(t, RGBBackground, cells[1].Bg, "untouched background is space colour")
	assert.Equal(t, RGB{30, 30, 30}, cells[0].Bg)
}

func TestBufferWriteStringWide(t *testing.T) {
	buf := NewBuffer(10, 1)
	n := buf.WriteString(0, 0, "a木b", RGBText, terminal.AttrNone)
	assert.Equal(t, 4, n)
	assert.Equal(t, '木', buf.Get(1, 0).Rune)
	assert.Equal(t, 'b', buf.Get(3, 0).Rune)
}

func TestBufferResizeClears(t *testing.T) {
	buf := NewBuffer(3, 3)
	buf.SetWithBg(1, 1, 'x', RGBText, RGBText)
	buf.Resize(2, 2)
	w, h := buf.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, rune(0), buf.Get(1, 1).Rune)
}

func TestFrameResolveHalfBlocks(t *testing.T) {
	f := NewFrame(2, 1)
	require.Equal(t, 2, f.Width)
	require.Equal(t, 2, f.Height)
	f.Clear(colorful.Color{})
	f.Pix[0] = colorful.Color{R: 0.5}
	f.Pix[2] = colorful.Color{B: 0.5}

	buf := NewBuffer(2, 1)
	f.Resolve(buf)

	c := buf.Get(0, 0)
	assert.Equal(t, HalfBlock, c.Rune)
	assert.Equal(t, RGB{128, 0, 0}, c.Fg)
	assert.Equal(t, RGB{0, 0, 128}, c.Bg)
}

func TestFramePlotDepth(t *testing.T) {
	f := NewFrame(2, 1)
	f.Clear(colorful.Color{})
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	assert.True(t, f.Plot(0, 0, 10, red))
	assert.False(t, f.Plot(0, 0, 20, blue), "farther pixel is hidden")
	assert.True(t, f.Plot(0, 0, 5, blue))
	assert.Equal(t, blue, f.At(0, 0))
	assert.False(t, f.Plot(-1, 0, 1, red))
}

func TestToneMapMonotonic(t *testing.T) {
	prev := -1.0
	for v := 0.0; v < 10; v += 0.05 {
		got := toneMap(v)
		assert.Greater(t, got, prev-1e-12)
		assert.LessOrEqual(t, got, 1.0)
		prev = got
	}
	assert.Equal(t, 0.5, toneMap(0.5))
}

func TestPointLightFalloff(t *testing.T) {
	l := PointLight{Intensity: 100, Distance: 100, Color: colorful.Color{R: 1, G: 1, B: 1}}

	assert.InDelta(t, 1.0, l.Irradiance(vmath.V3F(10, 0, 0)), 1e-3)
	assert.Greater(t, l.Irradiance(vmath.V3F(10, 0, 0)), l.Irradiance(vmath.V3F(30, 0, 0)))
	assert.Equal(t, 0.0, l.Irradiance(vmath.V3F(150, 0, 0)), "no light past cutoff")
}

func testView(cols, rows int) (*View, *Frame) {
	cam := camera.NewPerspective(vmath.V3F(0, 0, 30), 60, 0.1, 1000)
	cam.SetViewport(cols, rows)
	v := &View{
		Camera:  cam,
		Light:   PointLight{Intensity: 100, Distance: 100, Color: colorful.Color{R: 1, G: 1, B: 1}},
		Ambient: 0.1,
	}
	v.Prepare()
	f := NewFrame(cols, rows)
	f.Clear(colorful.Color{})
	return v, f
}

func TestRasterSphereCentre(t *testing.T) {
	v, f := testView(40, 20)
	white := colorful.Color{R: 1, G: 1, B: 1}

	RasterSphere(f, v, vmath.V3F(0, 0, 0), 5, white, true)

	cx, cy := f.Width/2, f.Height/2
	assert.Greater(t, Luminance(f.At(cx, cy)), 0.5)
	assert.InDelta(t, 25.0, f.Depth[cy*f.Width+cx], 0.1)
	assert.Equal(t, colorful.Color{}, f.At(0, 0), "corner stays background")
	assert.True(t, math.IsInf(f.Depth[0], 1))
}

func TestRasterSphereOcclusion(t *testing.T) {
	v, f := testView(40, 20)
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	RasterSphere(f, v, vmath.V3F(0, 0, 10), 2, blue, true)
	RasterSphere(f, v, vmath.V3F(0, 0, 0), 5, red, true)

	c := f.At(f.Width/2, f.Height/2)
	assert.Greater(t, c.B, 0.0)
	assert.Equal(t, 0.0, c.R, "farther sphere is hidden")
}

func TestRasterSphereBehindCamera(t *testing.T) {
	v, f := testView(20, 10)
	RasterSphere(f, v, vmath.V3F(0, 0, 60), 5, colorful.Color{R: 1}, true)
	for _, c := range f.Pix {
		assert.Equal(t, colorful.Color{}, c)
	}
}

func TestBloomSpreadsLight(t *testing.T) {
	f := NewFrame(30, 15)
	f.Clear(colorful.Color{})
	f.Pix[15*f.Width+15] = colorful.Color{R: 1, G: 1, B: 1}

	NewBloomPass(2, 1, 0).Render(f)

	assert.Greater(t, f.At(16, 15).R, 0.0)
	assert.Greater(t, f.At(15, 17).R, 0.0)
	assert.Greater(t, f.At(15, 15).R, 1.0)
	assert.Equal(t, 0.0, f.At(0, 0).R, "black stays below threshold")
}

func TestBloomKernelNormalized(t *testing.T) {
	b := NewBloomPass(2, 1, 0)
	k := b.weights()
	sum := k[0]
	for _, w := range k[1:] {
		sum += 2 * w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestComposerRunsPassesInOrder(t *testing.T) {
	var order []string
	first := passFunc(func(f *Frame) { order = append(order, "render"); f.Clear(colorful.Color{G: 0.5}) })
	second := passFunc(func(f *Frame) { order = append(order, "bloom") })

	c := NewComposer(2, 1, first)
	c.AddPass(second)
	buf := NewBuffer(2, 1)
	c.Render(buf)

	assert.Equal(t, []string{"render", "bloom"}, order)
	assert.Equal(t, RGB{0, 128, 0}, buf.Get(1, 0).Fg)
}

func TestRenderPassDrawsDrawables(t *testing.T) {
	v, _ := testView(20, 10)
	var drawn int
	p := &RenderPass{
		View:       v,
		Background: FromRGB(RGBBackground),
		Drawables: []Drawable{
			DrawFunc(func(f *Frame, v *View) { drawn++ }),
			&Ring{Radius: 10, Color: colorful.Color{R: 1}, Alpha: 0.5},
		},
	}
	f := NewFrame(20, 10)
	p.Render(f)
	assert.Equal(t, 1, drawn)

	lit := 0
	bg := FromRGB(RGBBackground)
	for _, c := range f.Pix {
		if c.R > bg.R+0.01 {
			lit++
		}
	}
	assert.Greater(t, lit, 0, "ring visible")
}

type passFunc func(f *Frame)

func (fn passFunc) Render(f *Frame) { fn(f) }

type recordRenderer struct {
	name  string
	log   *[]string
	shown bool
}

func (r *recordRenderer) Render(ctx RenderContext, buf *Buffer) { *r.log = append(*r.log, r.name) }
func (r *recordRenderer) IsVisible() bool                       { return r.shown }

type flushTerm struct {
	terminal.Terminal
	flushed int
	synced  int
}

func (t *flushTerm) Flush(cells []terminal.Cell, w, h int) { t.flushed++ }
func (t *flushTerm) Sync()                                 { t.synced++ }

func TestOrchestratorPriorityOrder(t *testing.T) {
	term := &flushTerm{}
	o := NewOrchestrator(term, 4, 2)
	var log []string

	o.Register(&recordRenderer{name: "overlay", log: &log, shown: true}, PriorityOverlay)
	o.Register(&recordRenderer{name: "scene", log: &log, shown: true}, PriorityScene)
	o.Register(&recordRenderer{name: "hud-a", log: &log, shown: true}, PriorityHUD)
	o.Register(&recordRenderer{name: "hud-b", log: &log, shown: true}, PriorityHUD)
	o.Register(&recordRenderer{name: "hidden", log: &log, shown: false}, PriorityPanel)

	o.RenderFrame(RenderContext{ScreenWidth: 4, ScreenHeight: 2})

	assert.Equal(t, []string{"scene", "hud-a", "hud-b", "overlay"}, log)
	assert.Equal(t, 4, o.Drawn())
	assert.Equal(t, 1, term.flushed)

	o.Resize(8, 4)
	assert.Equal(t, 1, term.synced)
	w, h := o.Buffer().Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)
}

func TestOrchestratorImmersiveSkipsChrome(t *testing.T) {
	term := &flushTerm{}
	o := NewOrchestrator(term, 4, 2)
	var log []string

	o.Register(&recordRenderer{name: "scene", log: &log, shown: true}, PriorityScene)
	o.RegisterChrome(&recordRenderer{name: "hud", log: &log, shown: true}, PriorityHUD)
	o.Register(&recordRenderer{name: "prompt", log: &log, shown: true}, PriorityPrompt)

	o.RenderFrame(RenderContext{ScreenWidth: 4, ScreenHeight: 2, Immersive: true})
	assert.Equal(t, []string{"scene", "prompt"}, log)
	assert.Equal(t, 2, o.Drawn())

	log = log[:0]
	o.RenderFrame(RenderContext{ScreenWidth: 4, ScreenHeight: 2})
	assert.Equal(t, []string{"scene", "hud", "prompt"}, log)
	assert.Equal(t, 2, term.flushed)
}

func TestPixelFloorsOffscreenCoordinates(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{-0.4, -1},
		{-1.2, -2},
		{0, 0},
		{0.7, 0},
		{3.99, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pixel(tt.v), "pixel(%v)", tt.v)
	}

	f := NewFrame(4, 2)
	f.Clear(colorful.Color{})
	assert.False(t, f.Plot(pixel(-0.4), pixel(1.5), 1, colorful.Color{R: 1}), "left of the viewport")
	assert.False(t, f.Plot(pixel(1.5), pixel(-0.4), 1, colorful.Color{R: 1}), "above the viewport")
	assert.True(t, f.Plot(pixel(0.4), pixel(0.4), 1, colorful.Color{R: 1}))
}
