// Package vmath holds the float64 vector, matrix, and ray helpers shared by the
// simulator, camera, picker, and renderer.
package vmath

import "math"

// TwoPi is a full turn in radians
const TwoPi = 2 * math.Pi

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep is the cubic Hermite step between edge0 and edge1
func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
