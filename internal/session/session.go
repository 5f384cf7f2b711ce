// Package session wraps a grid engine for one player. It serializes access
// to the engine, maps input actions to engine calls and records finished
// games.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/display"
	"github.com/vovakirdan/tui-2048/internal/grid"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// ErrClosed is returned by calls on a closed session.
var ErrClosed = errors.New("session closed")

// ResultSaver persists finished games. *storage.Store implements it.
type ResultSaver interface {
	SaveGame(rec storage.GameRecord) (string, error)
}

// Config configures a new session.
type Config struct {
	ID      string // Defaults to a new UUID
	Variant registry.Variant
	Display grid.Display  // Receives engine notifications; may be nil
	Saver   ResultSaver   // Records finished games; may be nil
	Logger  *log.Logger   // Defaults to log.Default()
	Player  string        // Free-form player name stored with results
	Seed    int64         // 0 seeds from the clock
	Options []grid.Option // Extra engine options applied after the variant's
}

// Session owns one engine and the bookkeeping around the current game.
type Session struct {
	mu sync.Mutex

	id      string
	player  string
	variant registry.Variant
	engine  *grid.Engine
	saver   ResultSaver
	logger  *log.Logger
	now     func() time.Time

	results  *resultTracker
	started  time.Time
	recorded bool // current game already saved
	closed   bool
}

// New creates a session. The game is not started until Start is called.
func New(cfg Config) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger = logger.With("session", shortID(id), "variant", cfg.Variant.ID)

	opts := cfg.Variant.Options()
	if cfg.Seed != 0 {
		opts = append(opts, grid.WithSeed(cfg.Seed))
	}
	opts = append(opts, cfg.Options...)

	results := &resultTracker{}
	engine, err := grid.New(display.NewMulti(results, cfg.Display, display.NewLogger(logger)), opts...)
	if err != nil {
		return nil, fmt.Errorf("session: variant %q: %w", cfg.Variant.ID, err)
	}

	return &Session{
		id:      id,
		player:  cfg.Player,
		variant: cfg.Variant,
		engine:  engine,
		saver:   cfg.Saver,
		logger:  logger,
		now:     time.Now,
		results: results,
	}, nil
}

// ID returns the session's UUID.
func (s *Session) ID() string {
	return s.id
}

// Player returns the player name the session was created with.
func (s *Session) Player() string {
	return s.player
}

// Variant returns the board variant.
func (s *Session) Variant() registry.Variant {
	return s.variant
}

// Start begins a new game. A game in progress is recorded as abandoned.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.abandonLocked()
	s.results.reset()
	s.recorded = false
	s.started = s.now()
	s.engine.Start()
	s.logger.Debug("game started")
	s.checkEndedLocked()
	return nil
}

// Move slides the tiles and reports whether anything moved.
func (s *Session) Move(dir grid.Direction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}

	moved, err := s.engine.Move(dir)
	if err != nil {
		return false, fmt.Errorf("session: %w", err)
	}
	s.checkEndedLocked()
	return moved, nil
}

// Continue resumes a paused game, typically after a goal was reached.
// It reports whether the game was resumed.
func (s *Session) Continue() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}
	if s.engine.State() != grid.StatePaused {
		return false, nil
	}
	s.engine.Pause(true)
	return true, nil
}

// TogglePause pauses an active game or resumes a paused one.
func (s *Session) TogglePause() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}
	switch s.engine.State() {
	case grid.StateActive:
		s.engine.Pause(false)
	case grid.StatePaused:
		s.engine.Pause(true)
	default:
		return false, nil
	}
	return true, nil
}

// Apply runs the engine call an action maps to and reports whether the game
// changed. ActionQuit and ActionNone are ignored; front ends handle quitting
// by calling Close.
func (s *Session) Apply(a core.Action) (bool, error) {
	switch a {
	case core.ActionUp:
		return s.Move(grid.DirUp)
	case core.ActionDown:
		return s.Move(grid.DirDown)
	case core.ActionLeft:
		return s.Move(grid.DirLeft)
	case core.ActionRight:
		return s.Move(grid.DirRight)
	case core.ActionContinue:
		return s.Continue()
	case core.ActionPause:
		return s.TogglePause()
	case core.ActionRestart:
		if err := s.Start(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Close records a game in progress as abandoned and rejects further calls.
// Calling Close twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.abandonLocked()
	s.closed = true
	s.logger.Debug("session closed")
	return nil
}

// Snapshot returns the current engine state.
func (s *Session) Snapshot() grid.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// State returns the engine state.
func (s *Session) State() grid.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Grid returns a copy of the board.
func (s *Session) Grid() grid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Grid()
}

// BestGoal returns the highest goal reached in the current game, 0 if none.
func (s *Session) BestGoal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.bestGoal
}

// checkEndedLocked records a lost game once.
func (s *Session) checkEndedLocked() {
	if s.engine.State() != grid.StateEnded || s.recorded {
		return
	}
	s.recordLocked(storage.OutcomeLost)
}

// abandonLocked records an unfinished game that saw at least one move.
func (s *Session) abandonLocked() {
	if s.recorded || s.engine.Moves() == 0 {
		return
	}
	switch s.engine.State() {
	case grid.StateActive, grid.StatePaused:
		s.recordLocked(storage.OutcomeAbandoned)
	}
}

func (s *Session) recordLocked(outcome storage.Outcome) {
	s.recorded = true

	rec := storage.GameRecord{
		ID:          uuid.NewString(),
		SessionID:   s.id,
		Player:      s.player,
		Variant:     s.variant.ID,
		MaxTile:     s.engine.Grid().MaxTile(),
		GoalReached: s.results.bestGoal,
		Moves:       s.engine.Moves(),
		Outcome:     outcome,
		Duration:    s.now().Sub(s.started),
	}

	s.logger.Info("game finished",
		"outcome", outcome,
		"max_tile", rec.MaxTile,
		"moves", rec.Moves,
		"duration", rec.Duration.Round(time.Second),
	)

	if s.saver == nil {
		return
	}
	if _, err := s.saver.SaveGame(rec); err != nil {
		s.logger.Warn("could not save game", "error", err)
	}
}

// resultTracker remembers the result notifications of the current game.
type resultTracker struct {
	grid.NopDisplay
	bestGoal int
}

func (t *resultTracker) Result(kind grid.ResultKind, value int) {
	if kind == grid.ResultWin && value > t.bestGoal {
		t.bestGoal = value
	}
}

func (t *resultTracker) reset() {
	t.bestGoal = 0
}

// shortID trims a UUID to its first group for log lines.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
