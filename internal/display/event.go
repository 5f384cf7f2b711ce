// Package display provides grid.Display implementations that are shared by
// the front ends: an event recorder, a fan-out and a structured logger.
package display

import "github.com/vovakirdan/tui-2048/internal/grid"

// EventKind names an engine notification.
type EventKind string

const (
	EventClear    EventKind = "clear"
	EventNewTile  EventKind = "new_tile"
	EventMoveTile EventKind = "move_tile"
	EventResult   EventKind = "result"
)

// Event is a flattened engine notification. Row/Col address the affected
// cell (the destination for moves); Value is the cell value after the event,
// or the result value for EventResult.
type Event struct {
	Kind    EventKind `json:"kind"`
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	FromRow int       `json:"from_row,omitempty"`
	FromCol int       `json:"from_col,omitempty"`
	Value   int       `json:"value,omitempty"`
	Result  string    `json:"result,omitempty"`
}

// ClearEvent describes a board reset.
func ClearEvent() Event {
	return Event{Kind: EventClear}
}

// NewTileEvent describes a spawned tile.
func NewTileEvent(g grid.Grid, row, col int) Event {
	return Event{Kind: EventNewTile, Row: row, Col: col, Value: g.At(row, col)}
}

// MoveTileEvent describes a slide or merge.
func MoveTileEvent(g grid.Grid, srcRow, srcCol, dstRow, dstCol int) Event {
	return Event{
		Kind:    EventMoveTile,
		Row:     dstRow,
		Col:     dstCol,
		FromRow: srcRow,
		FromCol: srcCol,
		Value:   g.At(dstRow, dstCol),
	}
}

// ResultEvent describes a win or loss.
func ResultEvent(kind grid.ResultKind, value int) Event {
	return Event{Kind: EventResult, Value: value, Result: kind.String()}
}
