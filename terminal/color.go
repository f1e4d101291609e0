package terminal

import (
	"github.com/muesli/termenv"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// DetectColorMode determines terminal color capability from the environment
func DetectColorMode() ColorMode {
	if termenv.EnvColorProfile() == termenv.TrueColor {
		return ColorModeTrueColor
	}
	return ColorMode256
}

// Color cube levels for palette indices 16-231
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

func cubeIndex(v uint8) int {
	best, bestDist := 0, 256
	for i, c := range cubeValues {
		d := int(v) - int(c)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// RGBTo256 maps a color to the nearest xterm-256 palette index,
// choosing between the 6x6x6 cube and the grayscale ramp
func RGBTo256(c RGB) uint8 {
	ri, gi, bi := cubeIndex(c.R), cubeIndex(c.G), cubeIndex(c.B)
	cube := RGB{cubeValues[ri], cubeValues[gi], cubeValues[bi]}
	cubeIdx := uint8(16 + 36*ri + 6*gi + bi)

	avg := (int(c.R) + int(c.G) + int(c.B)) / 3
	grayStep := (avg - 8) / 10
	if grayStep < 0 {
		grayStep = 0
	}
	if grayStep > 23 {
		grayStep = 23
	}
	gv := uint8(8 + grayStep*10)
	gray := RGB{gv, gv, gv}

	if distSq(c, gray) < distSq(c, cube) {
		return uint8(grayscaleStart + grayStep)
	}
	return cubeIdx
}

func distSq(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
