// Package pick resolves the body under a pointer by casting a camera ray
// against bounding spheres. It keeps no state between calls.
package pick

import (
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/vmath"
)

// Kind tags what a candidate represents
type Kind uint8

const (
	KindStar Kind = iota
	KindPlanet
	KindSatellite
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindSatellite:
		return "satellite"
	default:
		return "unknown"
	}
}

// Candidate is a pickable body at its current position
// Index is the body's position within its kind's list
type Candidate struct {
	Kind        Kind
	Index       int
	Name        string
	Description string
	Link        string
	Bounds      vmath.Sphere
}

// Hit is the nearest intersection along the pick ray
type Hit struct {
	Candidate
	Distance float64
	Point    vmath.Vec3F
}

// Normalize maps a viewport coordinate to [-1, 1] on both axes, y up
func Normalize(px, py float64, width, height int) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := px/float64(width)*2 - 1
	ny := -(py/float64(height)*2 - 1)
	return nx, ny
}

// CellCenter returns the viewport coordinate of a cell's centre
func CellCenter(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y) + 0.5
}

// Cast returns the nearest candidate hit by the ray through (nx, ny)
// Equal distances keep the first candidate in iteration order
func Cast(cam *camera.Perspective, candidates []Candidate, nx, ny float64) (Hit, bool) {
	ray := cam.Ray(nx, ny)
	return Nearest(ray, candidates)
}

// Nearest intersects ray with every candidate and keeps the closest positive hit
func Nearest(ray vmath.Ray, candidates []Candidate) (Hit, bool) {
	var best Hit
	found := false
	for i := range candidates {
		t, ok := ray.IntersectSphere(candidates[i].Bounds)
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Candidate: candidates[i], Distance: t, Point: ray.At(t)}
			found = true
		}
	}
	return best, found
}
