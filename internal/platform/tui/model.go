package tui

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/display"
	"github.com/vovakirdan/tui-2048/internal/grid"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/session"
)

const hudHeight = 3

// GameConfig configures a game model.
type GameConfig struct {
	SessionID string
	Variant   registry.Variant
	Runtime   core.RuntimeConfig
	Board     BoardOptions
	Saver     session.ResultSaver
	Logger    *log.Logger
	Player    string
	Display   grid.Display  // Extra display such as a spectator broadcaster
	Options   []grid.Option // Applied after the variant's options
}

// errMsg carries a fatal error back into Update.
type errMsg struct{ err error }

// GameModel is the Bubble Tea model for one board.
type GameModel struct {
	session *session.Session
	board   *Board
	screen  *core.Screen
	styles  styleCache
	keys    KeyMap
	help    help.Model
	config  core.RuntimeConfig
	logger  *log.Logger

	status     string
	err        error
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the session and board for a variant. The game starts
// when the model is initialized.
func NewGameModel(cfg GameConfig) (GameModel, error) {
	if cfg.Runtime.TickRate <= 0 {
		cfg.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	seed := cfg.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.Board.Picker == nil {
		cfg.Board.Picker = rand.New(rand.NewSource(seed))
	}

	board := NewBoard(cfg.Variant.Rows, cfg.Variant.Cols, cfg.Board)
	sess, err := session.New(session.Config{
		ID:      cfg.SessionID,
		Variant: cfg.Variant,
		Display: display.NewMulti(board, cfg.Display),
		Saver:   cfg.Saver,
		Logger:  cfg.Logger,
		Player:  cfg.Player,
		Seed:    cfg.Runtime.Seed,
		Options: cfg.Options,
	})
	if err != nil {
		return GameModel{}, err
	}

	h := help.New()
	h.Width = cfg.Runtime.ScreenW

	return GameModel{
		session: sess,
		board:   board,
		screen:  core.NewScreen(cfg.Runtime.ScreenW, max(cfg.Runtime.ScreenH-1, 1)),
		styles:  make(styleCache),
		keys:    DefaultKeyMap(),
		help:    h,
		config:  cfg.Runtime,
		logger:  cfg.Logger,
	}, nil
}

// Init starts the game and the animation ticker.
func (m GameModel) Init() tea.Cmd {
	if err := m.session.Start(); err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.board.Tick()
		return m, tickCmd(m.config.TickRate)

	case errMsg:
		m.err = msg.err
		m.quitting = true
		m.session.Close()
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		m.session.Close()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		m.session.Close()
		return m, tea.Quit
	}

	// A new input lands on the final frame of the previous one.
	m.board.Finish()
	m.status = ""

	if _, err := m.session.Apply(action); err != nil {
		m.logger.Warn("input rejected", "action", action, "error", err)
		return m, nil
	}
	// The win prompt only applies while the game waits on it.
	if kind, _, _, ok := m.board.LastResult(); ok && kind == grid.ResultWin && m.session.State() != grid.StatePaused {
		m.board.DismissResult()
	}
	return m, nil
}

// saveScreenshot writes the plain board text to the user directory.
func (m GameModel) saveScreenshot() string {
	m.render()

	dir := filepath.Join(config.UserDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	name := fmt.Sprintf("%s_%s.txt", m.session.Variant().ID, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "saved " + path
}

// render draws the HUD, board and overlays into the screen buffer.
func (m GameModel) render() {
	dst := m.screen
	dst.Clear()

	boardW, boardH := m.board.Size()
	if dst.Width() < boardW || dst.Height() < hudHeight+boardH+1 {
		y := dst.Height() / 2
		dst.DrawTextCentered(y, "Window too small")
		dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", boardW, hudHeight+boardH+2))
		return
	}

	snap := m.session.Snapshot()
	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight

	title := m.session.Variant().Title
	dst.DrawStyledText(boardX+(boardW-len([]rune(title)))/2, 0, title, core.ColorYellow, core.ColorDefault)

	dst.DrawText(boardX, 1, fmt.Sprintf("Goal: %d", snap.Goal))
	info := fmt.Sprintf("Moves: %d  Max: %d", snap.Moves, snap.MaxTile)
	dst.DrawText(max(boardX, boardX+boardW-len(info)), 1, info)
	if m.status != "" {
		dst.DrawTextCentered(2, m.status)
	}

	m.board.Draw(dst, boardX, boardY)
	m.renderOverlay(dst, boardX+boardW/2, boardY+boardH/2)
}

// renderOverlay shows the result of the game, or a pause notice.
func (m GameModel) renderOverlay(dst *core.Screen, cx, cy int) {
	if kind, value, msg, ok := m.board.LastResult(); ok {
		if kind == grid.ResultWin {
			drawOverlay(dst, cx, cy, core.ColorGreen,
				msg+"!",
				fmt.Sprintf("You reached %d", value),
				"[c] keep going  [r] try again")
			return
		}
		drawOverlay(dst, cx, cy, core.ColorRed,
			msg,
			fmt.Sprintf("Highest tile: %d", value),
			"[r] try again  [q] quit")
		return
	}

	if m.session.State() == grid.StatePaused {
		drawOverlay(dst, cx, cy, core.ColorYellow, "PAUSED", "[p] resume")
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return renderScreen(m.screen, m.styles) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Session returns the session the model drives.
func (m GameModel) Session() *session.Session {
	return m.session
}

// Err returns the error that ended the game, if any.
func (m GameModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
