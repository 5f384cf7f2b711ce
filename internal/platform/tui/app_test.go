package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/session"
)

func send(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return app, cmd
}

func newTestApp(t *testing.T, cfg AppConfig) AppModel {
	t.Helper()
	cfg.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	cfg.Logger = quietLogger
	m, err := NewAppModel(cfg)
	if err != nil {
		t.Fatalf("NewAppModel() failed: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func TestAppMenuToGameAndBack(t *testing.T) {
	dir := session.NewDirectory()
	m := newTestApp(t, AppConfig{Directory: dir})

	if m.screen != screenMenu {
		t.Fatalf("screen = %d, want menu", m.screen)
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || cmd == nil {
		t.Fatalf("enter should start a game, screen = %d", m.screen)
	}
	if m.game.Session().Variant().ID != registry.DefaultID {
		t.Errorf("variant = %q, want %q", m.game.Session().Variant().ID, registry.DefaultID)
	}
	if dir.Len() != 1 {
		t.Errorf("directory has %d sessions, want 1", dir.Len())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %d", m.screen)
	}
	if dir.Len() != 0 {
		t.Errorf("directory has %d sessions after leaving the game", dir.Len())
	}

	m, cmd = send(t, m, runeKey('q'))
	if cmd == nil || m.View() != "" {
		t.Error("q in the menu should quit")
	}
}

func TestAppPreselectedVariant(t *testing.T) {
	m := newTestApp(t, AppConfig{Variant: "mini"})

	if m.screen != screenGame {
		t.Fatalf("screen = %d, want game", m.screen)
	}
	if got := m.game.Session().Variant().ID; got != "mini" {
		t.Errorf("variant = %q, want mini", got)
	}
}

func TestAppUnknownVariant(t *testing.T) {
	if _, err := NewAppModel(AppConfig{Variant: "nope", Logger: quietLogger}); err == nil {
		t.Fatal("expected an error for an unknown variant")
	}
}

func TestAppScoreboardWithoutStore(t *testing.T) {
	m := newTestApp(t, AppConfig{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScoreboard {
		t.Fatalf("tab should open the scoreboard, screen = %d", m.screen)
	}
	if view := m.View(); view == "" {
		t.Error("scoreboard view is empty")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("esc should return to the menu, screen = %d", m.screen)
	}
}

func TestMenuCursorStartsOnDefault(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "mini")
	if m.items[m.cursor].VariantID != "mini" {
		t.Errorf("cursor on %q, want mini", m.items[m.cursor].VariantID)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if sel := m.Selected(); sel == nil || sel.VariantID != "mini" {
		t.Errorf("Selected() = %+v, want mini", sel)
	}
}
