// Package grid implements the sliding-tile merge engine: move and merge
// rules, random tile spawning and win/loss detection. It has no rendering or
// input code; presentation is delegated to a Display.
package grid

import "fmt"

// State is the engine lifecycle state.
type State int

const (
	StateIdle State = iota
	StateActive
	StatePaused
	StateEnded
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Engine owns the grid and the game lifecycle.
// It is not safe for concurrent use; see session.Session.
type Engine struct {
	display Display
	opts    Options
	rng     Rand

	grid   Grid
	merged []bool // destination cells that received a merge this move
	state  State
	goal   int
	moves  int // effective moves since Start
}

// New creates an engine in the idle state.
func New(display Display, opts ...Option) (*Engine, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if display == nil {
		display = NopDisplay{}
	}

	return &Engine{
		display: display,
		opts:    o,
		rng:     o.Rand,
		grid:    NewGrid(o.Rows, o.Cols),
		merged:  make([]bool, o.Rows*o.Cols),
		state:   StateIdle,
		goal:    o.Goal,
	}, nil
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Goal returns the tile value that triggers the next win.
func (e *Engine) Goal() int {
	return e.goal
}

// Moves returns the number of effective moves since the last Start.
func (e *Engine) Moves() int {
	return e.moves
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() Grid {
	return e.grid.Clone()
}

// clear resets goal, state and every cell, then notifies the display.
func (e *Engine) clear() {
	e.goal = e.opts.Goal
	e.state = StateActive
	e.moves = 0
	e.grid.reset()
	e.display.Clear()
}

// Start resets the game and spawns the start tiles.
// It is safe to call at any time.
func (e *Engine) Start() {
	e.clear()
	for range e.opts.StartTiles {
		if e.grid.IsFull() {
			break
		}
		e.spawnRandomTile()
	}
}

// Pause pauses the game when resume is false and reactivates it when true.
// An idle or ended game is left untouched: only Start leaves those states.
func (e *Engine) Pause(resume bool) {
	if e.state == StateIdle || e.state == StateEnded {
		return
	}
	if resume {
		e.state = StateActive
	} else {
		e.state = StatePaused
	}
}

// blocked reports whether moves and spawns are currently ignored.
func (e *Engine) blocked() bool {
	return e.state != StateActive
}

// spawnRandomTile writes a 2 or 4 into a random empty cell.
func (e *Engine) spawnRandomTile() {
	if e.blocked() {
		return
	}

	value := 2
	if e.rng.Float64() < e.opts.SpawnFourProbability {
		value = 4
	}

	empty := e.grid.EmptyCells()
	if len(empty) == 0 {
		panic("grid: spawn requested on a full grid")
	}
	cell := empty[e.rng.Intn(len(empty))]

	e.grid.set(cell.Row, cell.Col, value)
	e.display.NewTile(e.grid, cell.Row, cell.Col)

	e.checkResult()
}

// Move slides every tile in dir, spawning one tile if anything changed.
// It reports whether the move was effective. Moves while paused, ended or
// idle are ignored.
func (e *Engine) Move(dir Direction) (bool, error) {
	if !dir.Valid() {
		return false, fmt.Errorf("grid: move %d: %w", int(dir), ErrInvalidDirection)
	}
	if e.blocked() {
		return false, nil
	}

	for i := range e.merged {
		e.merged[i] = false
	}

	moved := false
	rows, cols := e.grid.rows, e.grid.cols
	if dir.forward() {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				moved = e.updateTile(dir, r, c) || moved
			}
		}
	} else {
		for r := rows - 1; r >= 0; r-- {
			for c := cols - 1; c >= 0; c-- {
				moved = e.updateTile(dir, r, c) || moved
			}
		}
	}

	if !moved {
		return false, nil
	}

	e.moves++
	e.spawnRandomTile()
	return true, nil
}

// updateTile slides the tile at (row, col) as far as it goes in dir and
// merges it into an equal neighbour that has not absorbed a tile this move.
func (e *Engine) updateTile(dir Direction, row, col int) bool {
	val := e.grid.At(row, col)
	if val == 0 {
		return false
	}

	dr, dc := dir.delta()
	dstRow, dstCol := row, col
	for {
		nr, nc := dstRow+dr, dstCol+dc
		if !e.grid.InBounds(nr, nc) || e.grid.At(nr, nc) != 0 {
			break
		}
		dstRow, dstCol = nr, nc
	}

	nr, nc := dstRow+dr, dstCol+dc
	if e.grid.InBounds(nr, nc) && e.grid.At(nr, nc) == val && !e.merged[nr*e.grid.cols+nc] {
		dstRow, dstCol = nr, nc
		e.merged[nr*e.grid.cols+nc] = true
	}

	if dstRow == row && dstCol == col {
		return false
	}

	e.grid.set(row, col, 0)
	e.grid.set(dstRow, dstCol, e.grid.At(dstRow, dstCol)+val)
	e.display.MoveTile(e.grid, row, col, dstRow, dstCol)
	return true
}

// checkResult detects a reached goal and a deadlocked grid.
func (e *Engine) checkResult() {
	if e.grid.Contains(e.goal) {
		e.state = StatePaused
		e.display.Result(ResultWin, e.goal)
		e.goal *= 2
	}

	if !e.grid.IsFull() || e.grid.HasAdjacentPair() {
		return
	}

	e.state = StateEnded
	e.display.Result(ResultLoss, e.grid.MaxTile())
}
