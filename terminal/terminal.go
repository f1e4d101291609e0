package terminal

import (
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
)

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Terminal provides low-level terminal access
type Terminal interface {
	// Init enters the alternate screen and hides the cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ColorMode returns the color capability used for output
	ColorMode() ColorMode

	// Flush writes cell buffer to terminal
	// Cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int)

	// Sync forces full redraw
	Sync()

	// PollEvent blocks until next input event
	PollEvent() Event

	// PostEvent injects a synthetic event
	PostEvent(Event)

	// SetMouseMode enables/disables mouse event reporting
	SetMouseMode(mode MouseMode) error
}

// termImpl implements Terminal over a tcell screen
type termImpl struct {
	screen    tcell.Screen
	colorMode ColorMode

	mu          sync.Mutex
	initialized bool
	finalized   bool
	mouseMode   MouseMode

	// Button mask of the previous mouse event, used to derive actions
	lastButtons tcell.ButtonMask
}

// New creates a terminal on the process tty
func New(colorMode ...ColorMode) (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, colorMode...), nil
}

// NewWithScreen wraps an existing tcell screen, e.g. a simulation screen
func NewWithScreen(screen tcell.Screen, colorMode ...ColorMode) Terminal {
	var c ColorMode
	if len(colorMode) == 0 {
		c = DetectColorMode()
	} else {
		c = colorMode[0]
	}
	return &termImpl{screen: screen, colorMode: c}
}

func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	t.screen.Clear()
	t.initialized = true
	return nil
}

func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.finalized = true
	t.screen.Fini()
}

func (t *termImpl) Size() (int, int) {
	return t.screen.Size()
}

func (t *termImpl) ColorMode() ColorMode {
	return t.colorMode
}

func (t *termImpl) Sync() {
	t.screen.Sync()
}

func (t *termImpl) Flush(cells []Cell, width, height int) {
	if len(cells) < width*height {
		return
	}
	for y := 0; y < height; y++ {
		row := cells[y*width : (y+1)*width]
		for x := range row {
			c := &row[x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, t.style(c))
		}
	}
	t.screen.Show()
}

// style converts a cell to a tcell style honoring the color mode
func (t *termImpl) style(c *Cell) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(t.color(c.Fg)).
		Background(t.color(c.Bg))
	if c.Attrs != AttrNone {
		st = st.
			Bold(c.Attrs&AttrBold != 0).
			Dim(c.Attrs&AttrDim != 0).
			Italic(c.Attrs&AttrItalic != 0).
			Underline(c.Attrs&AttrUnderline != 0).
			Blink(c.Attrs&AttrBlink != 0).
			Reverse(c.Attrs&AttrReverse != 0)
	}
	return st
}

func (t *termImpl) color(c RGB) tcell.Color {
	if t.colorMode == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *termImpl) SetMouseMode(mode MouseMode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mouseMode = mode
	if mode == MouseModeNone {
		t.screen.DisableMouse()
		return nil
	}

	var flags tcell.MouseFlags
	if mode&MouseModeClick != 0 {
		flags |= tcell.MouseButtonEvents
	}
	if mode&MouseModeDrag != 0 {
		flags |= tcell.MouseDragEvents
	}
	if mode&MouseModeMotion != 0 {
		flags |= tcell.MouseMotionEvents
	}
	t.screen.EnableMouse(flags)
	return nil
}

// EmergencyReset restores the terminal after a crash without a screen handle
func EmergencyReset(w io.Writer) {
	// Mouse tracking off, cursor on, leave alternate screen, reset attributes
	io.WriteString(w, "\x1b[?1003l\x1b[?1002l\x1b[?1000l\x1b[?1006l")
	io.WriteString(w, "\x1b[?25h\x1b[?1049l\x1b[0m\x1b[?7h")

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
