package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/orrery/terminal"
)

// Buffer is a compositor backed by terminal.Cell array with dirty tracking
type Buffer struct {
	cells   []terminal.Cell
	touched []bool
	width   int
	height  int
}

var emptyCell = terminal.Cell{Rune: 0, Fg: RGBText, Bg: RGBBlack, Attrs: terminal.AttrNone}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]terminal.Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y); out of bounds yields an empty cell
func (b *Buffer) Get(x, y int) terminal.Cell {
	if !b.inBounds(x, y) {
		return emptyCell
	}
	return b.cells[y*b.width+x]
}

// Set composites a cell with specified blend mode
func (b *Buffer) Set(x, y int, mainRune rune, fg, bg RGB, mode BlendMode, alpha float64, attrs terminal.Attr) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if mainRune != 0 {
		dst.Rune = mainRune
		dst.Attrs = attrs
	}

	if flags&flagBg != 0 {
		dst.Bg = blendOp(op, dst.Bg, bg, alpha)
		b.touched[idx] = true
	}
	if flags&flagFg != 0 {
		dst.Fg = blendOp(op, dst.Fg, fg, alpha)
	}
}

func blendOp(op uint8, dst, src RGB, alpha float64) RGB {
	switch op {
	case opAlpha:
		return Blend(dst, src, alpha)
	case opAdd:
		return Add(dst, src, alpha)
	case opMax:
		return Max(dst, src, alpha)
	case opScreen:
		return Screen(dst, src, alpha)
	default:
		return src
	}
}

// SetFgOnly writes rune, foreground, and attrs while preserving existing background
func (b *Buffer) SetFgOnly(x, y int, r rune, fg RGB, attrs terminal.Attr) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = attrs
}

// SetBgOnly updates the background color while preserving existing rune/foreground
func (b *Buffer) SetBgOnly(x, y int, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = bg
	b.touched[idx] = true
}

// SetWithBg writes a cell with explicit fg and bg colors (opaque replace)
func (b *Buffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]
	dst.Rune = r
	dst.Fg = fg
	dst.Bg = bg
	dst.Attrs = terminal.AttrNone
	b.touched[idx] = true
}

// WriteString writes s from (x, y) keeping backgrounds, returns the columns used
// Wide runes occupy two cells
func (b *Buffer) WriteString(x, y int, s string, fg RGB, attrs terminal.Attr) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.SetFgOnly(col, y, r, fg, attrs)
		for i := 1; i < w; i++ {
			b.SetFgOnly(col+i, y, ' ', fg, attrs)
		}
		col += w
	}
	return col - x
}

// WriteStringBg writes s from (x, y) with an opaque background
func (b *Buffer) WriteStringBg(x, y int, s string, fg, bg RGB) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.SetWithBg(col, y, r, fg, bg)
		for i := 1; i < w; i++ {
			b.SetWithBg(col+i, y, ' ', fg, bg)
		}
		col += w
	}
	return col - x
}

// FillRect paints an opaque background rectangle and clears runes
func (b *Buffer) FillRect(x, y, w, h int, bg RGB) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.SetWithBg(xx, yy, ' ', RGBText, bg)
		}
	}
}

// finalize sets default background to untouched cells before Flush
func (b *Buffer) finalize() {
	for i := range b.cells {
		if !b.touched[i] {
			b.cells[i].Bg = RGBBackground
		}
	}
}

// FlushToTerminal writes render buffer to terminal
func (b *Buffer) FlushToTerminal(term terminal.Terminal) {
	b.finalize()
	term.Flush(b.cells, b.width, b.height)
}

// Cells exposes the finalized cell slice, row-major
func (b *Buffer) Cells() []terminal.Cell {
	b.finalize()
	return b.cells
}
