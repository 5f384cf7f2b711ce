package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid is a rows x cols matrix of tile values. Zero marks an empty cell.
// Values handed to a Display share storage with the engine, so Grid exposes
// no exported mutators.
type Grid struct {
	rows  int
	cols  int
	cells []int
}

// Cell addresses a single grid position.
type Cell struct {
	Row, Col int
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) Grid {
	return Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]int, rows*cols),
	}
}

// FromRows builds a grid from row slices. All rows must share one length
// and every value must be zero or a power of two.
func FromRows(rows [][]int) (Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Grid{}, fmt.Errorf("grid: empty layout: %w", ErrInvalidOption)
	}

	g := NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != g.cols {
			return Grid{}, fmt.Errorf("grid: row %d has %d cells, want %d: %w", r, len(row), g.cols, ErrInvalidOption)
		}
		for c, v := range row {
			if v != 0 && !isPowerOfTwo(v) {
				return Grid{}, fmt.Errorf("grid: value %d at (%d,%d) is not a power of two: %w", v, r, c, ErrInvalidOption)
			}
			g.set(r, c, v)
		}
	}
	return g, nil
}

// Rows returns the row count.
func (g Grid) Rows() int {
	return g.rows
}

// Cols returns the column count.
func (g Grid) Cols() int {
	return g.cols
}

// At returns the value at (row, col). Out-of-bounds reads return 0.
func (g Grid) At(row, col int) int {
	if !g.InBounds(row, col) {
		return 0
	}
	return g.cells[row*g.cols+col]
}

// InBounds reports whether (row, col) lies on the grid.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.rows && col < g.cols
}

func (g Grid) set(row, col, v int) {
	g.cells[row*g.cols+col] = v
}

func (g Grid) reset() {
	for i := range g.cells {
		g.cells[i] = 0
	}
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range g.rows {
		for c := range g.cols {
			if g.At(r, c) == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// IsFull returns true if no cell is empty.
func (g Grid) IsFull() bool {
	for _, v := range g.cells {
		if v == 0 {
			return false
		}
	}
	return true
}

// HasAdjacentPair returns true if two horizontally or vertically adjacent
// cells hold the same value. Each cell is compared with its right and lower
// neighbour, which visits every adjacent pair exactly once.
func (g Grid) HasAdjacentPair() bool {
	for r := range g.rows {
		for c := range g.cols {
			val := g.At(r, c)
			if c < g.cols-1 && g.At(r, c+1) == val {
				return true
			}
			if r < g.rows-1 && g.At(r+1, c) == val {
				return true
			}
		}
	}
	return false
}

// Contains returns true if any cell equals v.
func (g Grid) Contains(v int) bool {
	for _, cell := range g.cells {
		if cell == v {
			return true
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, v := range g.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	clone := Grid{rows: g.rows, cols: g.cols, cells: make([]int, len(g.cells))}
	copy(clone.cells, g.cells)
	return clone
}

// Values returns the grid as freshly allocated row slices.
func (g Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r := range g.rows {
		out[r] = make([]int, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Equal reports whether both grids have the same shape and values.
func (g Grid) Equal(other Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as right-aligned columns, one row per line.
func (g Grid) String() string {
	width := len(strconv.Itoa(g.MaxTile()))
	if width < 1 {
		width = 1
	}

	var sb strings.Builder
	for r := range g.rows {
		for c := range g.cols {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := g.At(r, c)
			if v == 0 {
				sb.WriteString(strings.Repeat(" ", width-1))
				sb.WriteByte('.')
				continue
			}
			fmt.Fprintf(&sb, "%*d", width, v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
