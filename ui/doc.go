// Package ui draws the chrome over the scene: the body info panel, the hover
// label, the loading bar, the full-view prompt, toasts and the status line.
// Everything here renders into a render.Buffer and is driven by Update calls
// from the frame loop.
package ui
