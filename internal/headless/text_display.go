// Package headless plays the game over plain text streams: commands are
// read line by line and the board is printed after every change.
package headless

import (
	"fmt"
	"io"

	"github.com/vovakirdan/tui-2048/internal/display"
	"github.com/vovakirdan/tui-2048/internal/grid"
)

// TextDisplay prints result notifications, and tile events when verbose.
type TextDisplay struct {
	w       io.Writer
	picker  display.Picker
	verbose bool
}

var _ grid.Display = (*TextDisplay)(nil)

// NewTextDisplay writes to w. picker chooses the win message and may be nil.
func NewTextDisplay(w io.Writer, picker display.Picker, verbose bool) *TextDisplay {
	return &TextDisplay{w: w, picker: picker, verbose: verbose}
}

func (d *TextDisplay) Clear() {
	if d.verbose {
		fmt.Fprintln(d.w, "-- new board --")
	}
}

func (d *TextDisplay) NewTile(g grid.Grid, row, col int) {
	if d.verbose {
		fmt.Fprintf(d.w, "+%d at (%d,%d)\n", g.At(row, col), row, col)
	}
}

func (d *TextDisplay) MoveTile(g grid.Grid, srcRow, srcCol, dstRow, dstCol int) {
	if d.verbose {
		fmt.Fprintf(d.w, "(%d,%d) -> (%d,%d) = %d\n", srcRow, srcCol, dstRow, dstCol, g.At(dstRow, dstCol))
	}
}

func (d *TextDisplay) Result(kind grid.ResultKind, value int) {
	switch kind {
	case grid.ResultWin:
		fmt.Fprintf(d.w, "%s! You reached %d. [c] keep going  [r] try again\n", display.WinMessage(d.picker), value)
	default:
		fmt.Fprintf(d.w, "%s. Highest tile: %d. [r] try again  [q] quit\n", display.LossMessage, value)
	}
}
