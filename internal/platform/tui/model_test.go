package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cosmic-defender/internal/core"
	"github.com/vovakirdan/cosmic-defender/internal/scoresvc"
	"github.com/vovakirdan/cosmic-defender/internal/sim"
)

// fakeGame records the frames it is driven with. Reset starts every run in
// the start state.
type fakeGame struct {
	start  core.GameState
	state  core.GameState
	frames []core.InputFrame
	seeds  []int64
	runID  string
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.seeds = append(g.seeds, cfg.Seed)
	g.state = g.start
}
func (g *fakeGame) Frame(_ time.Time, in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}
func (g *fakeGame) Render(dst *core.Screen) { dst.Clear() }
func (g *fakeGame) State() core.GameState  { return g.state }
func (g *fakeGame) RunID() string          { return g.runID }

type rankBackend struct{}

func (rankBackend) Submit(_ context.Context, sub scoresvc.Submission) (*scoresvc.Response, error) {
	return &scoresvc.Response{
		Rank:       1,
		Percentile: 50,
		Scores:     []scoresvc.Score{{Name: sub.Name, Rank: 1, Score: sub.Score, Time: sub.Time}},
	}, nil
}

func newTestModel(g *fakeGame, opts GameOptions) GameModel {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewGameModel(g, cfg, opts)
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelHeldKeysReachFrames(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, GameOptions{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))

	if len(g.frames) != 2 {
		t.Fatalf("frames = %d, expected 2", len(g.frames))
	}
	for i, f := range g.frames {
		if !f.Has(core.ActionLeft) {
			t.Errorf("frame %d lost the held left key", i)
		}
	}
	if g.seeds[0] != 7 {
		t.Errorf("Init seed = %d, expected 7", g.seeds[0])
	}
}

func TestGameModelEscPausesThenLeaves(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, GameOptions{})
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	m, _ = update(t, m, esc)
	m, _ = update(t, m, TickMsg(time.Now()))
	if !g.frames[0].Has(core.ActionPause) {
		t.Fatal("esc during play should pause")
	}
	if m.BackToMenu() {
		t.Fatal("esc during play must not leave")
	}

	g.state.Paused = true
	m, _ = update(t, m, TickMsg(time.Now()))
	m, cmd := update(t, m, esc)
	if !m.BackToMenu() || cmd == nil {
		t.Error("esc while paused should leave the game program")
	}

	in := newTestModel(&fakeGame{start: core.GameState{GameOver: true}}, GameOptions{InSession: true})
	in, _ = update(t, in, TickMsg(time.Now()))
	in, cmd = update(t, in, esc)
	if !in.BackToMenu() || cmd != nil {
		t.Error("inside a session leaving must not quit the program")
	}
}

func TestGameModelRestartOnlyAfterGameOver(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, GameOptions{})
	r := runeKey("r")

	m, _ = update(t, m, r)
	if len(g.seeds) != 1 {
		t.Fatal("restart ignored while the run is live")
	}

	g.state.GameOver = true
	g.state.Score = 40
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, r)
	if len(g.seeds) != 2 {
		t.Fatalf("resets = %d, expected 2", len(g.seeds))
	}
	if g.seeds[1] == g.seeds[0] {
		t.Error("restart should pick a new seed")
	}
	if m.gameState.GameOver {
		t.Error("model should see the fresh run")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestModel(&fakeGame{}, GameOptions{})
	m, cmd := update(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View should be empty once quitting")
	}
}

func TestGameModelShowsOutcome(t *testing.T) {
	sub := scoresvc.NewSubmitter(rankBackend{}, nil)
	g := &fakeGame{runID: "run-2", start: core.GameState{GameOver: true, Score: 120}}
	m := newTestModel(g, GameOptions{Submitter: sub})

	m, _ = update(t, m, TickMsg(time.Now()))
	if !strings.Contains(m.View(), "Submitting score") {
		t.Error("expected a pending notice")
	}

	// A late outcome of an earlier run is ignored.
	sub.Submit(sim.Result{RunID: "run-1", Name: "ace", Score: 10})
	sub.Wait()
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.outcome != nil {
		t.Fatal("outcome of another run should be ignored")
	}

	sub.Submit(sim.Result{RunID: "run-2", Name: "ace", Score: 120, Elapsed: 90 * time.Second})
	sub.Wait()
	m, _ = update(t, m, TickMsg(time.Now()))

	view := m.View()
	for _, want := range []string{"You placed 1st", "50%", "ace", "01:30"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(m.summary(), "ranked 1st") {
		t.Errorf("summary = %q", m.summary())
	}
}

func TestGameModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(&fakeGame{}, GameOptions{ScreenshotDir: dir})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.notice, "Saved fake_") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, GameOptions{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if len(g.seeds) != 1 {
		t.Error("resize must not reset the run")
	}
	if c := m.Config(); c.ScreenW != 120 || c.ScreenH != 40 {
		t.Errorf("config = %dx%d", c.ScreenW, c.ScreenH)
	}
}
