package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cosmic-defender/internal/core"
	_ "github.com/vovakirdan/cosmic-defender/internal/games/shooter"
	"github.com/vovakirdan/cosmic-defender/internal/registry"
	"github.com/vovakirdan/cosmic-defender/internal/storage"
)

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMenuListsShipsWithBestScores(t *testing.T) {
	store := testStore(t)
	if _, err := store.SaveRun(storage.Run{Name: "ace", Ship: "tank", Score: 420}); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, "ace")
	view := m.View()
	for _, info := range registry.List() {
		if !strings.Contains(view, info.Title) {
			t.Errorf("menu missing %q", info.Title)
		}
	}
	if !strings.Contains(view, "(best 420)") {
		t.Error("menu should show the tank's best score")
	}
	if !strings.Contains(view, "Choose your ship, ace") {
		t.Error("menu should greet the pilot")
	}
}

func TestMenuNavigationAndSelect(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "")
	ships := registry.List()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should select and close the menu")
	}
	if m.Selected().ID != ships[1].ID {
		t.Errorf("selected %q, expected %q", m.Selected().ID, ships[1].ID)
	}
}

func TestSessionFlow(t *testing.T) {
	store := testStore(t)
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
	s := NewSessionModel(store, cfg, registry.Env{Pilot: "ace"}, GameOptions{})

	step := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(s.View(), "HIGH SCORES - All ships") {
		t.Error("scoreboard should start on the combined board")
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.quitting {
		t.Fatal("leaving the scoreboard must not end the session")
	}
	if s.scoreboard != nil {
		t.Fatal("esc should return to the menu")
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.gameModel == nil {
		t.Fatal("enter should launch a game")
	}
	step(tea.KeyMsg{Type: tea.KeyEsc}) // pause edge
	step(TickMsg{})
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.gameModel != nil {
		t.Fatal("esc while paused should return to the menu")
	}

	step(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !s.quitting {
		t.Error("q in the menu should end the session")
	}
}
