package vmath

import "math"

// Ray is a half-line with a unit direction
type Ray struct {
	Origin Vec3F
	Dir    Vec3F
}

// NewRay normalizes dir
func NewRay(origin, dir Vec3F) Ray {
	return Ray{Origin: origin, Dir: V3FNormalize(dir)}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3F {
	return V3FAdd(r.Origin, V3FScale(r.Dir, t))
}

// Sphere is a bounding sphere
type Sphere struct {
	Center Vec3F
	Radius float64
}

// IntersectSphere returns the smallest positive distance along the ray to the sphere surface
// An origin inside the sphere yields the exit distance
func (r Ray) IntersectSphere(s Sphere) (float64, bool) {
	if s.Radius <= 0 {
		return 0, false
	}
	oc := V3FSub(r.Origin, s.Center)
	b := V3FDot(oc, r.Dir)
	c := V3FMagSq(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := -b - sq; t > 0 {
		return t, true
	}
	if t := -b + sq; t > 0 {
		return t, true
	}
	return 0, false
}
