// Package terminal adapts a tcell screen to a cell-buffer terminal.
//
// Callers render into []Cell and hand the whole frame to Flush. Input arrives
// as flat Event values; mouse press, release, move and drag are derived from
// tcell's button masks so consumers never see tcell types.
package terminal
