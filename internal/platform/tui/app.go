package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/grid"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/spectate"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// AppConfig configures the menu, scoreboard and game flow.
type AppConfig struct {
	Runtime   core.RuntimeConfig
	Board     BoardOptions
	Store     *storage.Store // May be nil; results are then not recorded
	Logger    *log.Logger
	Player    string
	Variant   string             // Preselected variant; empty opens the menu
	Default   string             // Where the menu cursor starts
	Options   []grid.Option      // Applied to every game
	Directory *session.Directory // Lists live games for spectators; may be nil
	Hub       *spectate.Hub      // Streams live games; may be nil
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenScoreboard
	screenGame
)

// AppModel manages the full flow: menu -> game -> menu, with the
// scoreboard reachable from the menu.
type AppModel struct {
	cfg        AppConfig
	screen     appScreen
	menu       MenuModel
	scoreboard ScoreboardModel
	game       *GameModel
	live       *liveGames
	last       string // Last variant played
	err        error
	quitting   bool
}

// NewAppModel creates the app. With a preselected variant it opens
// straight into that game.
func NewAppModel(cfg AppConfig) (AppModel, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	last := cfg.Variant
	if last == "" {
		last = cfg.Default
	}
	if last == "" {
		last = registry.DefaultID
	}

	m := AppModel{
		cfg:  cfg,
		menu: NewMenuModel(cfg.Runtime, last),
		live: &liveGames{dir: cfg.Directory, hub: cfg.Hub, sessions: make(map[string]*session.Session)},
		last: last,
	}

	if cfg.Variant != "" {
		if err := m.newGame(cfg.Variant); err != nil {
			return AppModel{}, err
		}
	}
	return m, nil
}

// newGame builds a game model for a variant and switches to it.
func (m *AppModel) newGame(variantID string) error {
	v, err := registry.Get(variantID)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	var extra grid.Display
	if m.cfg.Hub != nil {
		extra = spectate.NewBroadcaster(m.cfg.Hub, id)
	}
	var saver session.ResultSaver
	if m.cfg.Store != nil {
		saver = m.cfg.Store
	}

	gm, err := NewGameModel(GameConfig{
		SessionID: id,
		Variant:   v,
		Runtime:   m.cfg.Runtime,
		Board:     m.cfg.Board,
		Saver:     saver,
		Logger:    m.cfg.Logger,
		Player:    m.cfg.Player,
		Display:   extra,
		Options:   m.cfg.Options,
	})
	if err != nil {
		return err
	}

	m.live.track(gm.Session())
	m.game = &gm
	m.screen = screenGame
	m.last = v.ID
	return nil
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the current screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Runtime.ScreenW = wsm.Width
		m.cfg.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		current := m.last
		if sel := m.menu.Selected(); sel != nil {
			current = sel.VariantID
		}
		m.scoreboard = NewScoreboardModel(m.cfg.Store, m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH, current)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		if err := m.newGame(m.menu.Selected().VariantID); err != nil {
			m.cfg.Logger.Error("cannot start game", "variant", m.menu.Selected().VariantID, "error", err)
			m.menu = NewMenuModel(m.cfg.Runtime, m.last)
			return m, nil
		}
		return m, m.game.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when showing results.
func (m AppModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if sb, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.menu = NewMenuModel(m.cfg.Runtime, m.last)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.live.release(m.game.Session())
		m.game = nil
		m.menu = NewMenuModel(m.cfg.Runtime, m.last)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.live.release(m.game.Session())
		m.err = m.game.Err()
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the app, if any.
func (m AppModel) Err() error {
	return m.err
}

// Close ends every game the app still has open.
func (m AppModel) Close() {
	m.live.releaseAll()
}

// RunApp runs the app in the local terminal.
func RunApp(cfg AppConfig) error {
	model, err := NewAppModel(cfg)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if app, ok := final.(AppModel); ok {
		return app.Err()
	}
	return nil
}

// liveGames tracks the sessions an app has open so they can be published to
// spectators and closed when the terminal goes away.
type liveGames struct {
	mu       sync.Mutex
	dir      *session.Directory
	hub      *spectate.Hub
	sessions map[string]*session.Session
}

func (l *liveGames) track(s *session.Session) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[s.ID()] = s
	if l.dir != nil {
		l.dir.Add(s)
	}
}

func (l *liveGames) release(s *session.Session) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releaseLocked(s)
}

func (l *liveGames) releaseLocked(s *session.Session) {
	s.Close()
	delete(l.sessions, s.ID())
	if l.dir != nil {
		l.dir.Remove(s.ID())
	}
	if l.hub != nil {
		l.hub.EndSession(s.ID())
	}
}

func (l *liveGames) releaseAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.sessions {
		l.releaseLocked(s)
	}
}
