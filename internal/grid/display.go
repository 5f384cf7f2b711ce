package grid

// ResultKind distinguishes the two terminal notifications.
type ResultKind int

const (
	ResultLoss ResultKind = iota
	ResultWin
)

// String returns a human-readable name for the result kind.
func (k ResultKind) String() string {
	switch k {
	case ResultWin:
		return "win"
	case ResultLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Display receives side-effecting notifications from the engine.
// Calls are fire-and-forget: the engine never waits on presentation and
// implementations must not call back into the engine synchronously.
// The Grid argument is a live view; implementations must copy what they keep.
type Display interface {
	// Clear is called after the grid has been reset.
	Clear()

	// NewTile reports a tile that appeared at (row, col) with value g.At(row, col).
	NewTile(g Grid, row, col int)

	// MoveTile reports a tile that moved (and possibly merged) from source to
	// destination. The source is now empty; the destination holds the new value.
	MoveTile(g Grid, srcRow, srcCol, dstRow, dstCol int)

	// Result reports a win (value is the goal just reached) or a loss
	// (value is the highest tile on the board).
	Result(kind ResultKind, value int)
}

// NopDisplay discards every notification.
type NopDisplay struct{}

func (NopDisplay) Clear() {}

func (NopDisplay) NewTile(Grid, int, int) {}

func (NopDisplay) MoveTile(Grid, int, int, int, int) {}

func (NopDisplay) Result(ResultKind, int) {}
