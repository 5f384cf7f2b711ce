package grid

// Snapshot captures the engine state for determinism testing, spectators
// and text output.
type Snapshot struct {
	Rows    int     `json:"rows"`
	Cols    int     `json:"cols"`
	Board   [][]int `json:"board"`
	Goal    int     `json:"goal"`
	State   string  `json:"state"`
	MaxTile int     `json:"max_tile"`
	Moves   int     `json:"moves"`
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Rows:    e.grid.rows,
		Cols:    e.grid.cols,
		Board:   e.grid.Values(),
		Goal:    e.goal,
		State:   e.state.String(),
		MaxTile: e.grid.MaxTile(),
		Moves:   e.moves,
	}
}
