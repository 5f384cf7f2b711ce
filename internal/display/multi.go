package display

import "github.com/vovakirdan/tui-2048/internal/grid"

// Multi forwards every notification to each display in order.
type Multi []grid.Display

// NewMulti builds a Multi, skipping nil displays.
func NewMulti(displays ...grid.Display) Multi {
	m := make(Multi, 0, len(displays))
	for _, d := range displays {
		if d != nil {
			m = append(m, d)
		}
	}
	return m
}

func (m Multi) Clear() {
	for _, d := range m {
		d.Clear()
	}
}

func (m Multi) NewTile(g grid.Grid, row, col int) {
	for _, d := range m {
		d.NewTile(g, row, col)
	}
}

func (m Multi) MoveTile(g grid.Grid, srcRow, srcCol, dstRow, dstCol int) {
	for _, d := range m {
		d.MoveTile(g, srcRow, srcCol, dstRow, dstCol)
	}
}

func (m Multi) Result(kind grid.ResultKind, value int) {
	for _, d := range m {
		d.Result(kind, value)
	}
}
