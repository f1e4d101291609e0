package input

import (
	"github.com/lixenwraith/orrery/terminal"
)

// Pointer is a mouse position in cells
type Pointer struct {
	X, Y   int
	Button terminal.MouseButton
	Mods   terminal.Modifier
}

// Handlers receives routed events; nil entries are skipped
type Handlers struct {
	PointerMove func(p Pointer)
	PointerDown func(p Pointer)
	PointerUp   func(p Pointer)
	PointerDrag func(p Pointer, dx, dy int)
	Wheel       func(p Pointer, delta int) // +1 up, -1 down
	Resize      func(width, height int)
	Key         func(ev terminal.Event, action Action) bool
}

// Dispatcher routes events to Handlers
type Dispatcher struct {
	h      Handlers
	keys   *KeyTable
	lastX  int
	lastY  int
	primed bool
}

// NewDispatcher creates a dispatcher with the default key table
func NewDispatcher(h Handlers) *Dispatcher {
	return &Dispatcher{h: h, keys: DefaultKeyTable()}
}

// SetKeyTable replaces the key bindings
func (d *Dispatcher) SetKeyTable(kt *KeyTable) {
	d.keys = kt
}

// Dispatch handles one event. Returns false when the application should quit
func (d *Dispatcher) Dispatch(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventClosed:
		return false

	case terminal.EventResize:
		if d.h.Resize != nil {
			d.h.Resize(ev.Width, ev.Height)
		}

	case terminal.EventKey:
		action := d.keys.Lookup(ev)
		if d.h.Key != nil {
			return d.h.Key(ev, action)
		}
		return action != ActionQuit

	case terminal.EventMouse:
		d.mouse(ev)
	}
	return true
}

func (d *Dispatcher) mouse(ev terminal.Event) {
	p := Pointer{X: ev.MouseX, Y: ev.MouseY, Button: ev.MouseBtn, Mods: ev.Modifiers}
	dx, dy := 0, 0
	if d.primed {
		dx, dy = p.X-d.lastX, p.Y-d.lastY
	}
	d.lastX, d.lastY, d.primed = p.X, p.Y, true

	switch ev.MouseAction {
	case terminal.MouseActionMove:
		if d.h.PointerMove != nil {
			d.h.PointerMove(p)
		}
	case terminal.MouseActionPress:
		switch p.Button {
		case terminal.MouseBtnWheelUp:
			if d.h.Wheel != nil {
				d.h.Wheel(p, 1)
			}
		case terminal.MouseBtnWheelDown:
			if d.h.Wheel != nil {
				d.h.Wheel(p, -1)
			}
		default:
			if d.h.PointerDown != nil {
				d.h.PointerDown(p)
			}
		}
	case terminal.MouseActionRelease:
		if d.h.PointerUp != nil {
			d.h.PointerUp(p)
		}
	case terminal.MouseActionDrag:
		if d.h.PointerDrag != nil {
			d.h.PointerDrag(p, dx, dy)
		}
		// Hover follows the pointer while dragging too
		if d.h.PointerMove != nil {
			d.h.PointerMove(p)
		}
	}
}
