package render

// RenderPriority determines render order. Lower values render first
type RenderPriority int

const (
	PriorityScene RenderPriority = iota
	PriorityHUD
	PriorityLabel
	PriorityPanel
	PriorityLoading
	PriorityPrompt
	PriorityOverlay
)
