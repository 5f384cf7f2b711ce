package tui

import (
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/display"
	"github.com/vovakirdan/tui-2048/internal/grid"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border

	tileWidth = cellWidth - 1

	defaultSlideTicks = 8 // ~133ms at 60fps
	defaultPopTicks   = 6 // ~100ms at 60fps
)

type animPhase int

const (
	phaseNone animPhase = iota
	phaseSlide
	phasePop
)

// tileSlide is one tile travelling from its source to its destination.
type tileSlide struct {
	value            int // value before any merge
	fromRow, fromCol int
	toRow, toCol     int
}

type resultOverlay struct {
	kind    grid.ResultKind
	value   int
	message string
}

// BoardOptions tunes the board animations.
type BoardOptions struct {
	SlideTicks int            // Ticks a slide lasts; 0 uses the default
	PopTicks   int            // Ticks a pop lasts; 0 uses the default
	Picker     display.Picker // Picks win messages; nil always uses the first
}

// Board is a grid.Display that keeps its own copy of the tiles and animates
// engine notifications: moves slide first, then spawned and merged tiles pop.
// It is driven from the Bubble Tea goroutine only.
type Board struct {
	rows, cols int
	values     [][]int

	// before is the board when the current slide began.
	before [][]int
	slides []tileSlide
	pops   []grid.Cell
	phase  animPhase
	ticks  int

	slideTicks int
	popTicks   int
	picker     display.Picker

	result *resultOverlay
}

var _ grid.Display = (*Board)(nil)

// NewBoard creates an empty board of the given size.
func NewBoard(rows, cols int, opts BoardOptions) *Board {
	if opts.SlideTicks <= 0 {
		opts.SlideTicks = defaultSlideTicks
	}
	if opts.PopTicks <= 0 {
		opts.PopTicks = defaultPopTicks
	}
	return &Board{
		rows:       rows,
		cols:       cols,
		values:     makeValues(rows, cols),
		slideTicks: opts.SlideTicks,
		popTicks:   opts.PopTicks,
		picker:     opts.Picker,
	}
}

func makeValues(rows, cols int) [][]int {
	v := make([][]int, rows)
	for r := range v {
		v[r] = make([]int, cols)
	}
	return v
}

func copyValues(src [][]int) [][]int {
	dst := make([][]int, len(src))
	for r := range src {
		dst[r] = append([]int(nil), src[r]...)
	}
	return dst
}

// Clear empties the board and drops any animation or overlay.
func (b *Board) Clear() {
	b.values = makeValues(b.rows, b.cols)
	b.Finish()
	b.result = nil
}

// NewTile pops the spawned tile, after the running slide if there is one.
func (b *Board) NewTile(g grid.Grid, row, col int) {
	b.values[row][col] = g.At(row, col)
	b.pops = append(b.pops, grid.Cell{Row: row, Col: col})
	if b.phase != phaseSlide {
		b.phase = phasePop
		b.ticks = 0
	}
}

// MoveTile adds a slide to the current move. A move onto an occupied cell
// is a merge, which pops once the slide finishes.
func (b *Board) MoveTile(g grid.Grid, srcRow, srcCol, dstRow, dstCol int) {
	if b.phase != phaseSlide {
		b.before = copyValues(b.values)
		b.slides = b.slides[:0]
		b.pops = b.pops[:0]
		b.phase = phaseSlide
		b.ticks = 0
	}

	b.slides = append(b.slides, tileSlide{
		value:   b.values[srcRow][srcCol],
		fromRow: srcRow,
		fromCol: srcCol,
		toRow:   dstRow,
		toCol:   dstCol,
	})
	if b.values[dstRow][dstCol] != 0 {
		b.pops = append(b.pops, grid.Cell{Row: dstRow, Col: dstCol})
	}

	b.values[srcRow][srcCol] = 0
	b.values[dstRow][dstCol] = g.At(dstRow, dstCol)
}

// Result shows the win or loss overlay.
func (b *Board) Result(kind grid.ResultKind, value int) {
	msg := display.LossMessage
	if kind == grid.ResultWin {
		msg = display.WinMessage(b.picker)
	}
	b.result = &resultOverlay{kind: kind, value: value, message: msg}
}

// LastResult returns the overlay currently shown, if any.
func (b *Board) LastResult() (kind grid.ResultKind, value int, message string, ok bool) {
	if b.result == nil {
		return 0, 0, "", false
	}
	return b.result.kind, b.result.value, b.result.message, true
}

// DismissResult hides the result overlay.
func (b *Board) DismissResult() {
	b.result = nil
}

// Animating reports whether a slide or pop is in progress.
func (b *Board) Animating() bool {
	return b.phase != phaseNone
}

// Tick advances the running animation by one frame and reports whether it
// is still running.
func (b *Board) Tick() bool {
	if b.phase == phaseNone {
		return false
	}

	b.ticks++
	if b.ticks < b.duration() {
		return true
	}

	if b.phase == phaseSlide && len(b.pops) > 0 {
		b.phase = phasePop
		b.ticks = 0
		b.slides = b.slides[:0]
		return true
	}

	b.Finish()
	return false
}

// Finish jumps to the end of any running animation.
func (b *Board) Finish() {
	b.phase = phaseNone
	b.ticks = 0
	b.slides = b.slides[:0]
	b.pops = b.pops[:0]
	b.before = nil
}

// Values returns a copy of the tiles the board currently holds.
func (b *Board) Values() [][]int {
	return copyValues(b.values)
}

func (b *Board) duration() int {
	if b.phase == phaseSlide {
		return b.slideTicks
	}
	return b.popTicks
}

func (b *Board) progress() float64 {
	p := float64(b.ticks) / float64(b.duration())
	if p > 1 {
		p = 1
	}
	return easeOutQuad(p)
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// Size returns the rendered board width and height.
func (b *Board) Size() (w, h int) {
	return b.cols*cellWidth + 1, b.rows*cellHeight + 1
}

func tileX(originX, col int) int {
	return originX + col*cellWidth + 1
}

func tileY(originY, row int) int {
	return originY + row*cellHeight + 1
}

// Draw renders the board with its top-left corner at (x, y).
func (b *Board) Draw(dst *core.Screen, x, y int) {
	b.drawFrame(dst, x, y)

	switch b.phase {
	case phaseSlide:
		under := copyValues(b.before)
		for _, s := range b.slides {
			under[s.fromRow][s.fromCol] = 0
		}
		b.drawTiles(dst, x, y, under, nil)

		t := b.progress()
		for _, s := range b.slides {
			px := core.Lerp(tileX(x, s.fromCol), tileX(x, s.toCol), t)
			py := core.Lerp(tileY(y, s.fromRow), tileY(y, s.toRow), t)
			drawTile(dst, px, py, s.value, tileWidth)
		}

	case phasePop:
		b.drawTiles(dst, x, y, b.values, b.pops)

		w := core.Lerp(2, tileWidth, b.progress())
		for _, c := range b.pops {
			drawTile(dst, tileX(x, c.Col), tileY(y, c.Row), b.values[c.Row][c.Col], w)
		}

	default:
		b.drawTiles(dst, x, y, b.values, nil)
	}
}

// drawFrame draws the grid lines and the empty cell background.
func (b *Board) drawFrame(dst *core.Screen, originX, originY int) {
	for r := range b.rows + 1 {
		for c := range b.cols + 1 {
			px := originX + c*cellWidth
			py := originY + r*cellHeight

			var corner rune
			switch {
			case r == 0 && c == 0:
				corner = '┌'
			case r == 0 && c == b.cols:
				corner = '┐'
			case r == b.rows && c == 0:
				corner = '└'
			case r == b.rows && c == b.cols:
				corner = '┘'
			case r == 0:
				corner = '┬'
			case r == b.rows:
				corner = '┴'
			case c == 0:
				corner = '├'
			case c == b.cols:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetCell(px, py, core.Cell{Rune: corner, Fg: core.ColorGray})

			if c < b.cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetCell(px+i, py, core.Cell{Rune: '─', Fg: core.ColorGray})
				}
			}
			if r < b.rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetCell(px, py+i, core.Cell{Rune: '│', Fg: core.ColorGray})
				}
			}
			if r < b.rows && c < b.cols {
				dst.FillRect(core.NewRect(px+1, py+1, tileWidth, cellHeight-1),
					core.Cell{Rune: ' ', Bg: core.ColorBoard})
			}
		}
	}
}

// drawTiles draws every non-empty tile of values except the skipped cells.
func (b *Board) drawTiles(dst *core.Screen, originX, originY int, values [][]int, skip []grid.Cell) {
	for r := range b.rows {
		for c := range b.cols {
			if values[r][c] == 0 || containsCell(skip, r, c) {
				continue
			}
			drawTile(dst, tileX(originX, c), tileY(originY, r), values[r][c], tileWidth)
		}
	}
}

func containsCell(cells []grid.Cell, row, col int) bool {
	for _, c := range cells {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}

// drawTile paints a tile of width w centred in the tile slot at (x, y).
// The label is drawn only when it fits.
func drawTile(dst *core.Screen, x, y, value, w int) {
	w = core.Clamp(w, 1, tileWidth)
	bg, fg := core.TileColors(value)
	left := x + (tileWidth-w)/2

	dst.FillRect(core.NewRect(left, y, w, cellHeight-1), core.Cell{Rune: ' ', Fg: fg, Bg: bg})

	label := strconv.Itoa(value)
	if len(label) > w {
		return
	}
	dst.DrawStyledText(left+(w-len(label))/2, y, label, fg, bg)
}

// drawOverlay draws a centered box with the first line highlighted.
func drawOverlay(dst *core.Screen, centerX, centerY int, accent core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		if i == 0 {
			dst.DrawStyledText(x, box.Y+1, line, accent, core.ColorDefault)
			continue
		}
		dst.DrawText(x, box.Y+1+i, line)
	}
}
