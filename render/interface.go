package render

// SystemRenderer is implemented by anything that draws into the cell buffer
type SystemRenderer interface {
	Render(ctx RenderContext, buf *Buffer)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
