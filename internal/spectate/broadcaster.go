package spectate

import (
	"github.com/vovakirdan/tui-2048/internal/display"
	"github.com/vovakirdan/tui-2048/internal/grid"
)

// Broadcaster is a grid.Display that publishes every notification of one
// session to the hub.
type Broadcaster struct {
	hub       *Hub
	sessionID string
}

var _ grid.Display = (*Broadcaster)(nil)

// NewBroadcaster creates a display publishing under sessionID.
func NewBroadcaster(hub *Hub, sessionID string) *Broadcaster {
	return &Broadcaster{hub: hub, sessionID: sessionID}
}

func (b *Broadcaster) Clear() {
	b.publish(display.ClearEvent(), nil)
}

func (b *Broadcaster) NewTile(g grid.Grid, row, col int) {
	b.publish(display.NewTileEvent(g, row, col), g.Values())
}

func (b *Broadcaster) MoveTile(g grid.Grid, srcRow, srcCol, dstRow, dstCol int) {
	b.publish(display.MoveTileEvent(g, srcRow, srcCol, dstRow, dstCol), g.Values())
}

func (b *Broadcaster) Result(kind grid.ResultKind, value int) {
	b.publish(display.ResultEvent(kind, value), nil)
}

func (b *Broadcaster) publish(ev display.Event, board [][]int) {
	b.hub.Publish(&Message{
		Type:      TypeEvent,
		SessionID: b.sessionID,
		Event:     &ev,
		Board:     board,
	})
}
