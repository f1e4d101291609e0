package render

import (
	"time"
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	// Wall time of the frame and seconds since the previous one
	Now       time.Time
	DeltaTime float64

	// Seconds since start, drives pulses and fades
	Elapsed float64

	// Simulation ticks so far
	Ticks uint64

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int

	// Pointer position in cells, -1 when unknown
	PointerX int
	PointerY int

	// HUD chrome suppressed (fullscreen analog)
	Immersive bool
}

// InBounds reports whether a cell lies on screen
func (rc *RenderContext) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < rc.ScreenWidth && y < rc.ScreenHeight
}
