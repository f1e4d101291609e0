package render

import (
	"sort"

	"github.com/lixenwraith/orrery/terminal"
)

// layer is one registered renderer in draw order
type layer struct {
	renderer SystemRenderer
	priority RenderPriority
	chrome   bool // skipped while the view is immersive
}

// Orchestrator composites the registered layers into one buffer per frame
type Orchestrator struct {
	term   terminal.Terminal
	buffer *Buffer
	layers []layer
	drawn  int
}

// NewOrchestrator creates an orchestrator with the given terminal and dimensions
func NewOrchestrator(term terminal.Terminal, width, height int) *Orchestrator {
	return &Orchestrator{
		term:   term,
		buffer: NewBuffer(width, height),
		layers: make([]layer, 0, 8),
	}
}

// Register adds a layer drawn in every view mode
// Equal priorities draw in registration order
func (o *Orchestrator) Register(r SystemRenderer, priority RenderPriority) {
	o.insert(layer{renderer: r, priority: priority})
}

// RegisterChrome adds a layer that immersive frames leave out
func (o *Orchestrator) RegisterChrome(r SystemRenderer, priority RenderPriority) {
	o.insert(layer{renderer: r, priority: priority, chrome: true})
}

func (o *Orchestrator) insert(l layer) {
	pos := sort.Search(len(o.layers), func(i int) bool {
		return o.layers[i].priority > l.priority
	})
	o.layers = append(o.layers, layer{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = l
}

// Resize updates buffer dimensions and forces a full repaint
func (o *Orchestrator) Resize(width, height int) {
	o.buffer.Resize(width, height)
	o.term.Sync()
}

// Buffer returns the compositing buffer
func (o *Orchestrator) Buffer() *Buffer {
	return o.buffer
}

// Drawn returns how many layers the last frame rendered
func (o *Orchestrator) Drawn() int {
	return o.drawn
}

// RenderFrame clears the buffer, draws every active layer and flushes
func (o *Orchestrator) RenderFrame(ctx RenderContext) {
	o.buffer.Clear()
	o.drawn = 0
	for _, l := range o.layers {
		if !active(l, ctx) {
			continue
		}
		l.renderer.Render(ctx, o.buffer)
		o.drawn++
	}
	o.buffer.FlushToTerminal(o.term)
}

func active(l layer, ctx RenderContext) bool {
	if l.chrome && ctx.Immersive {
		return false
	}
	if vt, ok := l.renderer.(VisibilityToggle); ok {
		return vt.IsVisible()
	}
	return true
}
