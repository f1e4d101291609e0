package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/vmath"
)

// bloomSmoothWidth is the soft edge above Threshold for extraction
const bloomSmoothWidth = 0.01

// bloomGain maps Strength onto the add-back in this pixel space
const bloomGain = 0.25

// BloomPass adds a blurred copy of bright pixels back onto the frame
type BloomPass struct {
	Strength  float64
	Radius    float64 // blur spread, 1 is about two pixels sigma
	Threshold float64 // luminance cut, 0 blooms everything

	bright  []colorful.Color
	scratch []colorful.Color
	kernel  []float64
	kRadius float64
}

// NewBloomPass creates a bloom pass
func NewBloomPass(strength, radius, threshold float64) *BloomPass {
	return &BloomPass{Strength: strength, Radius: radius, Threshold: threshold}
}

// Render implements Pass
func (b *BloomPass) Render(f *Frame) {
	if b.Strength <= 0 || f.Width == 0 || f.Height == 0 {
		return
	}
	n := f.Width * f.Height
	if cap(b.bright) < n {
		b.bright = make([]colorful.Color, n)
		b.scratch = make([]colorful.Color, n)
	}
	b.bright = b.bright[:n]
	b.scratch = b.scratch[:n]

	for i, c := range f.Pix {
		a := vmath.Smoothstep(b.Threshold, b.Threshold+bloomSmoothWidth, Luminance(c))
		b.bright[i] = colorful.Color{R: c.R * a, G: c.G * a, B: c.B * a}
	}

	k := b.weights()
	r := len(k) - 1
	w, h := f.Width, f.Height

	// horizontal into scratch
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var acc colorful.Color
			for o := -r; o <= r; o++ {
				xx := min(max(x+o, 0), w-1)
				s := b.bright[row+xx]
				wt := k[abs(o)]
				acc.R += s.R * wt
				acc.G += s.G * wt
				acc.B += s.B * wt
			}
			b.scratch[row+x] = acc
		}
	}

	gain := b.Strength * bloomGain
	// vertical and add back
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc colorful.Color
			for o := -r; o <= r; o++ {
				yy := min(max(y+o, 0), h-1)
				s := b.scratch[yy*w+x]
				wt := k[abs(o)]
				acc.R += s.R * wt
				acc.G += s.G * wt
				acc.B += s.B * wt
			}
			p := &f.Pix[y*w+x]
			p.R += acc.R * gain
			p.G += acc.G * gain
			p.B += acc.B * gain
		}
	}
}

// weights returns the half kernel, index 0 is the centre tap
func (b *BloomPass) weights() []float64 {
	if b.kernel != nil && b.kRadius == b.Radius {
		return b.kernel
	}
	sigma := math.Max(b.Radius*2, 0.5)
	r := int(math.Ceil(sigma * 3))
	k := make([]float64, r+1)
	sum := 0.0
	for i := 0; i <= r; i++ {
		k[i] = math.Exp(-float64(i*i) / (2 * sigma * sigma))
		if i == 0 {
			sum += k[i]
		} else {
			sum += 2 * k[i]
		}
	}
	for i := range k {
		k[i] /= sum
	}
	b.kernel = k
	b.kRadius = b.Radius
	return k
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
