package input

import "github.com/lixenwraith/orrery/terminal"

// Action is a semantic key binding
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionClose   // Esc: close panel, dismiss prompt
	ActionConfirm // Enter: accept prompt
	ActionToggleHUD
	ActionToggleMute
	ActionToggleRings
	ActionPause
	ActionResetView
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionQuit:        "quit",
	ActionOrbitLeft:   "orbit-left",
	ActionOrbitRight:  "orbit-right",
	ActionOrbitUp:     "orbit-up",
	ActionOrbitDown:   "orbit-down",
	ActionZoomIn:      "zoom-in",
	ActionZoomOut:     "zoom-out",
	ActionClose:       "close",
	ActionConfirm:     "confirm",
	ActionToggleHUD:   "toggle-hud",
	ActionToggleMute:  "toggle-mute",
	ActionToggleRings: "toggle-rings",
	ActionPause:       "pause",
	ActionResetView:   "reset-view",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (Ctrl+*, arrows)
	SpecialKeys map[terminal.Key]Action

	// Printable runes
	Runes map[rune]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[terminal.Key]Action{
			terminal.KeyCtrlC:    ActionQuit,
			terminal.KeyEscape:   ActionClose,
			terminal.KeyEnter:    ActionConfirm,
			terminal.KeyLeft:     ActionOrbitLeft,
			terminal.KeyRight:    ActionOrbitRight,
			terminal.KeyUp:       ActionOrbitUp,
			terminal.KeyDown:     ActionOrbitDown,
			terminal.KeyPageUp:   ActionZoomIn,
			terminal.KeyPageDown: ActionZoomOut,
			terminal.KeyHome:     ActionResetView,
		},
		Runes: map[rune]Action{
			'q': ActionQuit,
			'h': ActionOrbitLeft,
			'l': ActionOrbitRight,
			'k': ActionOrbitUp,
			'j': ActionOrbitDown,
			'+': ActionZoomIn,
			'=': ActionZoomIn,
			'-': ActionZoomOut,
			'f': ActionToggleHUD,
			'm': ActionToggleMute,
			'o': ActionToggleRings,
			' ': ActionPause,
			'0': ActionResetView,
			'y': ActionConfirm,
			'n': ActionClose,
		},
	}
}

// Lookup resolves a key event to an action
func (kt *KeyTable) Lookup(ev terminal.Event) Action {
	if ev.Type != terminal.EventKey {
		return ActionNone
	}
	if ev.Key == terminal.KeyRune {
		return kt.Runes[ev.Rune]
	}
	return kt.SpecialKeys[ev.Key]
}
