package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/vmath"
)

// SphereMesh is a shaded ball
// Emissive spheres ignore lighting and glow at Color
type SphereMesh struct {
	Center   vmath.Vec3F
	Radius   float64
	Color    colorful.Color
	Emissive bool
}

// Draw implements Drawable
func (s *SphereMesh) Draw(f *Frame, v *View) {
	RasterSphere(f, v, s.Center, s.Radius, s.Color, s.Emissive)
}

// RasterSphere ray-casts every pixel in the sphere's projected bounds
func RasterSphere(f *Frame, v *View, center vmath.Vec3F, radius float64, base colorful.Color, emissive bool) {
	if radius <= 0 || f.Width == 0 || f.Height == 0 {
		return
	}
	cx, cy, _, ok := v.ToPixel(f, center)
	if !ok {
		return
	}
	pr := v.Camera.ProjectedRadius(center, radius) * float64(f.Height) / 2
	if pr <= 0 {
		return
	}
	// Perspective stretches off-axis silhouettes; pad the box
	pad := pr*0.25 + 1
	x0 := max(int(math.Floor(cx-pr-pad)), 0)
	x1 := min(int(math.Ceil(cx+pr+pad)), f.Width-1)
	y0 := max(int(math.Floor(cy-pr-pad)), 0)
	y1 := min(int(math.Ceil(cy+pr+pad)), f.Height-1)

	sphere := vmath.Sphere{Center: center, Radius: radius}
	hitAny := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ray := v.PixelRay(f, x, y)
			t, hit := ray.IntersectSphere(sphere)
			if !hit {
				continue
			}
			hitAny = true
			p := ray.At(t)
			var c colorful.Color
			if emissive {
				c = emissiveShade(base, ray.Dir, vmath.V3FScale(vmath.V3FSub(p, center), 1/radius))
			} else {
				c = litShade(base, v, p, vmath.V3FScale(vmath.V3FSub(p, center), 1/radius))
			}
			f.Plot(x, y, t, c)
		}
	}

	// Sub-pixel bodies still leave a speck
	if !hitAny {
		ix, iy := int(cx), int(cy)
		d := vmath.V3FDist(center, v.Camera.Position)
		if emissive {
			f.Plot(ix, iy, d, base)
		} else {
			f.Plot(ix, iy, d, litShade(base, v, center, vmath.V3FNormalize(vmath.V3FSub(v.Camera.Position, center))))
		}
	}
}

// litShade is ambient plus lambert from the point light
func litShade(base colorful.Color, v *View, p, n vmath.Vec3F) colorful.Color {
	l := vmath.V3FNormalize(vmath.V3FSub(v.Light.Position, p))
	diffuse := math.Max(vmath.V3FDot(n, l), 0) * v.Light.Irradiance(p)
	return colorful.Color{
		R: base.R * (v.Ambient + diffuse*v.Light.Color.R),
		G: base.G * (v.Ambient + diffuse*v.Light.Color.G),
		B: base.B * (v.Ambient + diffuse*v.Light.Color.B),
	}
}

// emissiveShade brightens the core and softens the limb
func emissiveShade(base colorful.Color, dir, n vmath.Vec3F) colorful.Color {
	facing := math.Max(-vmath.V3FDot(dir, n), 0)
	k := 0.75 + 0.5*facing
	return colorful.Color{R: base.R * k, G: base.G * k, B: base.B * k}
}
