package scene

import (
	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/vmath"
)

// CameraOptions places the viewer
type CameraOptions struct {
	Position vmath.Vec3F
	FovY     float64 // degrees
	Near     float64
	Far      float64
	Damping  float64
}

// BloomOptions tunes the glow pass
type BloomOptions struct {
	Strength  float64
	Radius    float64
	Threshold float64
}

// LightOptions describes the point light at the star
type LightOptions struct {
	Color     string
	Intensity float64
	Distance  float64
	Ambient   float64
}

// Options configures a Context
type Options struct {
	Registry *body.Registry
	Seed     int64
	Angles   []float64 // initial orbit angles; nil draws them from Seed
	Camera   CameraOptions
	Bloom    BloomOptions
	Light    LightOptions
	Stars    int
}

// DefaultOptions returns the stock scene
func DefaultOptions() Options {
	return Options{
		Registry: body.Default(),
		Seed:     1,
		Camera: CameraOptions{
			Position: vmath.V3F(30, 30, 30),
			FovY:     60,
			Near:     0.1,
			Far:      1000,
			Damping:  0.1,
		},
		Bloom: BloomOptions{Strength: 2, Radius: 1, Threshold: 0},
		Light: LightOptions{Color: "#ffffff", Intensity: 100, Distance: 100, Ambient: 0.12},
		Stars: 400,
	}
}
