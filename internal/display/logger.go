package display

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/grid"
)

// Logger writes engine notifications to a charm logger. Tile events go to
// debug level; results are logged at info.
type Logger struct {
	logger *log.Logger
}

// NewLogger wraps l. A nil logger falls back to the package default.
func NewLogger(l *log.Logger) *Logger {
	if l == nil {
		l = log.Default()
	}
	return &Logger{logger: l}
}

func (l *Logger) Clear() {
	l.logger.Debug("board cleared")
}

func (l *Logger) NewTile(g grid.Grid, row, col int) {
	l.logger.Debug("tile spawned", "row", row, "col", col, "value", g.At(row, col))
}

func (l *Logger) MoveTile(g grid.Grid, srcRow, srcCol, dstRow, dstCol int) {
	l.logger.Debug("tile moved",
		"from", [2]int{srcRow, srcCol},
		"to", [2]int{dstRow, dstCol},
		"value", g.At(dstRow, dstCol),
	)
}

func (l *Logger) Result(kind grid.ResultKind, value int) {
	switch kind {
	case grid.ResultWin:
		l.logger.Info("goal reached", "goal", value)
	default:
		l.logger.Info("game over", "max_tile", value)
	}
}
