package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cosmic-defender/internal/core"
	"github.com/vovakirdan/cosmic-defender/internal/registry"
	"github.com/vovakirdan/cosmic-defender/internal/scoresvc"
)

// GameOptions configures a GameModel.
type GameOptions struct {
	// Submitter delivers score outcomes for finished runs. It must be the
	// sink the game was created with.
	Submitter *scoresvc.Submitter

	// Painter renders the screen. Nil uses the default renderer.
	Painter *Painter

	// ScreenshotDir receives ctrl+s captures. Empty means ~/.defender/screenshots.
	ScreenshotDir string

	// Clipboard enables copying the run summary with 'c'. Only meaningful
	// when the terminal runs on the player's machine.
	Clipboard bool

	// Autofire starts with fire held.
	Autofire bool

	// InSession keeps the model running when the player leaves the game,
	// for hosts that show a menu in the same program.
	InSession bool
}

// GameModel is the Bubble Tea model that drives one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       GameOptions
	painter    *Painter
	held       *HeldInput
	keyMapper  *KeyMapper
	gameState  core.GameState
	outcome    *scoresvc.Outcome
	notice     string
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	painter := opts.Painter
	if painter == nil {
		painter = defaultPainter
	}
	held := NewHeldInput()
	held.Autofire = opts.Autofire

	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		opts:      opts,
		painter:   painter,
		held:      held,
		keyMapper: NewKeyMapper(),
	}
}

// Init starts a run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		// The world is scaled to the screen, so a resize keeps the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if err := m.saveScreenshot(); err != nil {
			m.notice = "Screenshot failed: " + err.Error()
		}
		return m, nil
	case "f":
		m.held.Autofire = !m.held.Autofire
		return m, nil
	case "c":
		if m.gameState.GameOver && m.opts.Clipboard {
			m.copySummary()
			return m, nil
		}
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			m.held.Press(core.ActionPause, now)
			return m, nil
		}
		m.backToMenu = true
		if m.opts.InSession {
			return m, nil
		}
		return m, tea.Quit

	case core.ActionRestart:
		if m.gameState.GameOver {
			m.restart()
		}
		return m, nil

	case core.ActionConfirm:
		return m, nil
	}

	m.held.Press(action, now)
	return m, nil
}

// restart begins a new run with a fresh seed.
func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.held.Reset()
	m.outcome = nil
	m.notice = ""
}

// handleTick runs one host frame.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	result := m.game.Frame(now, m.held.Frame(now))
	m.gameState = result.State
	m.pollOutcome()

	return m, tickCmd(m.config.TickRate)
}

// pollOutcome picks up a finished submission without blocking the frame.
func (m *GameModel) pollOutcome() {
	if m.opts.Submitter == nil {
		return
	}
	select {
	case o := <-m.opts.Submitter.Results():
		// Outcomes of earlier runs arrive after a quick restart.
		if o.Result.RunID == m.game.RunID() {
			m.outcome = &o
		}
	default:
	}
}

// summary is the one-line run report used for the clipboard.
func (m GameModel) summary() string {
	s := fmt.Sprintf("Cosmic Defender: %d points in %s flying %s",
		m.gameState.Score, scoresvc.FormatTime(m.gameState.Elapsed), m.game.Title())
	if m.outcome != nil && m.outcome.Err == nil && m.outcome.Rank > 0 {
		s += fmt.Sprintf(", ranked %s", scoresvc.Ordinal(m.outcome.Rank))
	}
	return s
}

func (m *GameModel) copySummary() {
	if err := clipboard.WriteAll(m.summary()); err != nil {
		m.notice = "Clipboard unavailable"
		return
	}
	m.notice = "Summary copied to clipboard"
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() error {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".defender", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		return err
	}
	m.notice = "Saved " + filename
	return nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.gameState.GameOver {
		m.drawOutcome()
	}
	if m.notice != "" {
		m.screen.DrawTextCenteredColor(m.screen.Height()-1, m.notice, core.ColorGray)
	}
	return m.painter.Paint(m.screen)
}

// drawOutcome shows the submission result under the game over panel.
func (m GameModel) drawOutcome() {
	if m.opts.Submitter == nil {
		return
	}
	y := m.screen.Height()/2 + 4
	o := m.outcome

	switch {
	case o == nil:
		m.screen.DrawTextCenteredColor(y, "Submitting score...", core.ColorGray)
		return
	case errors.Is(o.Err, scoresvc.ErrUnavailable):
		m.screen.DrawTextCenteredColor(y, "Score server unavailable, run not ranked", core.ColorRed)
		return
	case o.Err != nil:
		m.screen.DrawTextCenteredColor(y, "Score rejected: "+o.Err.Error(), core.ColorRed)
		return
	}

	m.screen.DrawTextCenteredColor(y,
		fmt.Sprintf("You placed %s, ahead of %d%% of pilots", scoresvc.Ordinal(o.Rank), o.Percentile),
		core.ColorBrightGreen)
	for i, s := range o.Board {
		row := y + 1 + i
		if row >= m.screen.Height()-1 {
			break
		}
		color := core.ColorWhite
		if s.Rank == o.Rank {
			color = core.ColorBrightYellow
		}
		m.screen.DrawTextCenteredColor(row,
			fmt.Sprintf("%3s  %-10s %7d  %s", scoresvc.Ordinal(s.Rank), s.Name, s.Score, s.Time), color)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the current runtime config (may have been updated by resize).
func (m GameModel) Config() core.RuntimeConfig {
	return m.config
}

// RunResult reports how a game program ended.
type RunResult struct {
	Config     core.RuntimeConfig
	BackToMenu bool
}

// Run starts a Bubble Tea program for game and blocks until the player
// leaves it.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (RunResult, error) {
	opts.InSession = false
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{Config: cfg}, err
	}
	m, ok := finalModel.(GameModel)
	if !ok {
		return RunResult{Config: cfg}, nil
	}
	return RunResult{Config: m.Config(), BackToMenu: m.BackToMenu()}, nil
}
