package grid

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Valid returns true for the four defined directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// delta returns the row/col step of one cell in this direction.
func (d Direction) delta() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	}
	return 0, 0
}

// forward reports whether the scan runs from index 0 upwards.
// Tiles nearest the edge they travel towards are processed first.
func (d Direction) forward() bool {
	return d == DirUp || d == DirLeft
}

// ParseDirection accepts direction names and the single-key aliases used by
// keyboard drivers (w/a/s/d and vim-style h/j/k/l).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w", "k":
		return DirUp, nil
	case "down", "s", "j":
		return DirDown, nil
	case "left", "a", "h":
		return DirLeft, nil
	case "right", "d", "l":
		return DirRight, nil
	}
	return 0, fmt.Errorf("grid: parse direction %q: %w", s, ErrInvalidDirection)
}
