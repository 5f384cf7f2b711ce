package display

import (
	"sync"

	"github.com/vovakirdan/tui-2048/internal/grid"
)

// Recorder keeps every notification it receives. It is safe for concurrent
// use and is mostly useful in tests and for replaying a game to late
// spectators.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ grid.Display = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) Clear() {
	r.add(ClearEvent())
}

func (r *Recorder) NewTile(g grid.Grid, row, col int) {
	r.add(NewTileEvent(g, row, col))
}

func (r *Recorder) MoveTile(g grid.Grid, srcRow, srcCol, dstRow, dstCol int) {
	r.add(MoveTileEvent(g, srcRow, srcCol, dstRow, dstCol))
}

func (r *Recorder) Result(kind grid.ResultKind, value int) {
	r.add(ResultEvent(kind, value))
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
