package session

import (
	"sort"
	"sync"
	"time"
)

// Info describes a live session.
type Info struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	Variant   string    `json:"variant"`
	State     string    `json:"state"`
	MaxTile   int       `json:"max_tile"`
	Moves     int       `json:"moves"`
	StartedAt time.Time `json:"started_at"`
}

// Directory tracks live sessions so spectators can find them.
type Directory struct {
	mu       sync.RWMutex
	sessions map[string]entry
}

type entry struct {
	session *Session
	added   time.Time
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{sessions: make(map[string]entry)}
}

// Add registers a session under its ID.
func (d *Directory) Add(s *Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions[s.ID()] = entry{session: s, added: time.Now()}
}

// Remove drops a session. Unknown IDs are ignored.
func (d *Directory) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, id)
}

// Get looks up a live session.
func (d *Directory) Get(id string) (*Session, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.sessions[id]
	return e.session, ok
}

// List describes every live session, oldest first.
func (d *Directory) List() []Info {
	d.mu.RLock()
	entries := make([]entry, 0, len(d.sessions))
	for _, e := range d.sessions {
		entries = append(entries, e)
	}
	d.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].added.Equal(entries[j].added) {
			return entries[i].session.ID() < entries[j].session.ID()
		}
		return entries[i].added.Before(entries[j].added)
	})

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		snap := e.session.Snapshot()
		infos = append(infos, Info{
			ID:        e.session.ID(),
			Player:    e.session.Player(),
			Variant:   e.session.Variant().ID,
			State:     snap.State,
			MaxTile:   snap.MaxTile,
			Moves:     snap.Moves,
			StartedAt: e.added,
		})
	}
	return infos
}

// Len returns the number of live sessions.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}
