package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HalfBlock draws the top pixel as foreground and the bottom pixel as background
const HalfBlock = '▀'

// Frame is a linear float colour layer at twice the vertical cell resolution
// Values above 1.0 are legal until Resolve
type Frame struct {
	Width  int // pixels == cells
	Height int // pixels == 2 * rows
	Pix    []colorful.Color
	Depth  []float64
}

// NewFrame allocates a frame for a cell grid of cols x rows
func NewFrame(cols, rows int) *Frame {
	f := &Frame{}
	f.Resize(cols, rows)
	return f
}

// Resize reallocates for a cell grid of cols x rows when capacity is short
func (f *Frame) Resize(cols, rows int) {
	w, h := max(cols, 0), max(rows, 0)*2
	n := w * h
	if cap(f.Pix) < n {
		f.Pix = make([]colorful.Color, n)
		f.Depth = make([]float64, n)
	}
	f.Pix = f.Pix[:n]
	f.Depth = f.Depth[:n]
	f.Width, f.Height = w, h
}

// Clear fills every pixel with bg and resets depth to +Inf
func (f *Frame) Clear(bg colorful.Color) {
	inf := math.Inf(1)
	for i := range f.Pix {
		f.Pix[i] = bg
		f.Depth[i] = inf
	}
}

// Plot writes c at (x, y) when depth is nearer than the stored depth
func (f *Frame) Plot(x, y int, depth float64, c colorful.Color) bool {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return false
	}
	i := y*f.Width + x
	if depth >= f.Depth[i] {
		return false
	}
	f.Depth[i] = depth
	f.Pix[i] = c
	return true
}

// Accumulate adds c scaled by alpha at (x, y) when depth passes
func (f *Frame) Accumulate(x, y int, depth float64, c colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := y*f.Width + x
	if depth >= f.Depth[i] {
		return
	}
	p := &f.Pix[i]
	p.R += c.R * alpha
	p.G += c.G * alpha
	p.B += c.B * alpha
}

// At returns the pixel at (x, y), black outside
func (f *Frame) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return colorful.Color{}
	}
	return f.Pix[y*f.Width+x]
}

// Luminance returns Rec.709 luma of a linear colour
func Luminance(c colorful.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// toneKnee is where highlight compression starts
const toneKnee = 0.8

func toneMap(v float64) float64 {
	if v <= toneKnee {
		return max(v, 0)
	}
	span := 1 - toneKnee
	return toneKnee + span*(1-math.Exp(-(v-toneKnee)/span))
}

// ToRGB tone maps and quantizes a linear colour
func ToRGB(c colorful.Color) RGB {
	return RGB{
		R: clamp(toneMap(c.R)*255 + 0.5),
		G: clamp(toneMap(c.G)*255 + 0.5),
		B: clamp(toneMap(c.B)*255 + 0.5),
	}
}

// FromRGB converts an 8-bit colour into the linear layer
func FromRGB(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Resolve packs pixel pairs into half-block cells of buf
// buf must be at least Width x Height/2
func (f *Frame) Resolve(buf *Buffer) {
	rows := f.Height / 2
	for y := 0; y < rows; y++ {
		top := f.Pix[(2*y)*f.Width:]
		bottom := f.Pix[(2*y+1)*f.Width:]
		for x := 0; x < f.Width; x++ {
			buf.SetWithBg(x, y, HalfBlock, ToRGB(top[x]), ToRGB(bottom[x]))
		}
	}
}
