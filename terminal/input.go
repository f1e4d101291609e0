package terminal

import (
	"github.com/gdamore/tcell/v2"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventMouse
	EventInterrupt // Synthetic wakeup posted by PostEvent
	EventError     // Read error
	EventClosed    // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int   // For EventResize
	Height    int   // For EventResize
	Err       error // For EventError

	// Mouse event fields
	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction
}

func (t *termImpl) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventClosed}
		}
		if out, ok := t.convert(ev); ok {
			return out
		}
	}
}

func (t *termImpl) PostEvent(ev Event) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(ev))
}

// convert maps a tcell event, false for events with no equivalent
func (t *termImpl) convert(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKey(e), true

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true

	case *tcell.EventMouse:
		return t.convertMouse(e), true

	case *tcell.EventInterrupt:
		if posted, ok := e.Data().(Event); ok {
			return posted, true
		}
		return Event{Type: EventInterrupt}, true

	case *tcell.EventError:
		return Event{Type: EventError, Err: e}, true
	}
	return Event{}, false
}

var keyMap = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyCtrlC:      KeyCtrlC,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
}

func convertKey(e *tcell.EventKey) Event {
	out := Event{Type: EventKey, Modifiers: convertMods(e.Modifiers())}
	if e.Key() == tcell.KeyRune {
		out.Key = KeyRune
		out.Rune = e.Rune()
		return out
	}
	if k, ok := keyMap[e.Key()]; ok {
		out.Key = k
	}
	return out
}

func convertMods(m tcell.ModMask) Modifier {
	var out Modifier
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	return out
}

// convertMouse derives the action by comparing against the previous button mask
func (t *termImpl) convertMouse(e *tcell.EventMouse) Event {
	x, y := e.Position()
	btns := e.Buttons()
	out := Event{
		Type:      EventMouse,
		MouseX:    x,
		MouseY:    y,
		Modifiers: convertMods(e.Modifiers()),
	}

	switch {
	case btns&tcell.WheelUp != 0:
		out.MouseBtn, out.MouseAction = MouseBtnWheelUp, MouseActionPress
		return out
	case btns&tcell.WheelDown != 0:
		out.MouseBtn, out.MouseAction = MouseBtnWheelDown, MouseActionPress
		return out
	}

	const buttonBits = tcell.Button1 | tcell.Button2 | tcell.Button3
	cur := btns & buttonBits
	prev := t.lastButtons
	t.lastButtons = cur

	switch {
	case cur == 0 && prev == 0:
		out.MouseAction = MouseActionMove
	case cur&^prev != 0:
		out.MouseBtn, out.MouseAction = buttonOf(cur&^prev), MouseActionPress
	case prev&^cur != 0:
		out.MouseBtn, out.MouseAction = buttonOf(prev&^cur), MouseActionRelease
	default:
		out.MouseBtn, out.MouseAction = buttonOf(cur), MouseActionDrag
	}
	return out
}

func buttonOf(m tcell.ButtonMask) MouseButton {
	switch {
	case m&tcell.Button1 != 0:
		return MouseBtnLeft
	case m&tcell.Button2 != 0:
		return MouseBtnRight
	case m&tcell.Button3 != 0:
		return MouseBtnMiddle
	default:
		return MouseBtnNone
	}
}
