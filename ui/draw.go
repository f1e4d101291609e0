package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/orrery/render"
)

// Box drawing runes
const (
	boxH  = '─'
	boxV  = '│'
	boxTL = '╭'
	boxTR = '╮'
	boxBL = '╰'
	boxBR = '╯'
)

// drawBox paints an opaque bordered rectangle
func drawBox(buf *render.Buffer, x, y, w, h int, edge, bg render.RGB) {
	if w < 2 || h < 2 {
		return
	}
	buf.FillRect(x, y, w, h, bg)
	for i := x + 1; i < x+w-1; i++ {
		buf.SetWithBg(i, y, boxH, edge, bg)
		buf.SetWithBg(i, y+h-1, boxH, edge, bg)
	}
	for j := y + 1; j < y+h-1; j++ {
		buf.SetWithBg(x, j, boxV, edge, bg)
		buf.SetWithBg(x+w-1, j, boxV, edge, bg)
	}
	buf.SetWithBg(x, y, boxTL, edge, bg)
	buf.SetWithBg(x+w-1, y, boxTR, edge, bg)
	buf.SetWithBg(x, y+h-1, boxBL, edge, bg)
	buf.SetWithBg(x+w-1, y+h-1, boxBR, edge, bg)
}

// wrap breaks s into lines no wider than width columns
// Words wider than a line are hard-cut, one rune per line at minimum
func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line strings.Builder
		lineW := 0
		start := len(lines)
		for _, word := range strings.Fields(para) {
			ww := runewidth.StringWidth(word)
			for ww > width {
				if lineW > 0 {
					lines = append(lines, line.String())
					line.Reset()
					lineW = 0
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					// a rune wider than the line still takes a line of its own
					_, n := utf8.DecodeRuneInString(word)
					head = word[:n]
				}
				lines = append(lines, head)
				word = word[len(head):]
				ww = runewidth.StringWidth(word)
			}
			if ww == 0 {
				continue
			}
			if lineW > 0 && lineW+1+ww > width {
				lines = append(lines, line.String())
				line.Reset()
				lineW = 0
			}
			if lineW > 0 {
				line.WriteByte(' ')
				lineW++
			}
			line.WriteString(word)
			lineW += ww
		}
		if lineW > 0 || len(lines) == start {
			lines = append(lines, line.String())
		}
	}
	return lines
}

// truncate clips s to width columns with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// easeOut is a cubic ease for slide animations
func easeOut(t float64) float64 {
	t = min(max(t, 0), 1)
	u := 1 - t
	return 1 - u*u*u
}
