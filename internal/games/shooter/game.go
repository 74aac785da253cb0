// Package shooter adapts the Cosmic Defender simulation to the arcade
// platform. One game is registered per built-in ship archetype.
package shooter

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cosmic-defender/internal/config"
	"github.com/vovakirdan/cosmic-defender/internal/core"
	"github.com/vovakirdan/cosmic-defender/internal/registry"
	"github.com/vovakirdan/cosmic-defender/internal/sim"
)

// Game drives one ship through runs of the simulation.
type Game struct {
	ship     config.ShipConfig
	env      registry.Env
	run      *sim.RunState
	sched    *sim.Scheduler
	banner   *Announcer
	renderer *Renderer
	config   core.RuntimeConfig
	last     sim.FrameResult
}

// New creates a game for the ship with the given archetype ID. A zero
// env.Config selects the built-in defaults.
func New(shipID string, env registry.Env) (*Game, error) {
	if len(env.Config.Ships) == 0 {
		env.Config = config.DefaultShooterConfig()
	}
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	if err := env.Config.Validate(); err != nil {
		return nil, fmt.Errorf("shooter: %w", err)
	}
	ship, err := env.Config.Ship(shipID)
	if err != nil {
		return nil, fmt.Errorf("shooter: %w", err)
	}

	g := &Game{ship: ship, env: env, renderer: &Renderer{}}
	g.banner = NewAnnouncer(func() time.Duration {
		if g.run == nil {
			return 0
		}
		return g.run.Now
	})
	if err := g.start(core.DefaultConfig()); err != nil {
		return nil, err
	}
	return g, nil
}

// ID returns the ship archetype ID.
func (g *Game) ID() string { return g.ship.ID }

// Title returns the ship's display name.
func (g *Game) Title() string { return g.ship.Name }

// Reset starts a new run with the seed from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if err := g.start(cfg); err != nil {
		// The configuration was validated in New.
		g.env.Logger.Error("cannot restart run", "err", err)
	}
}

func (g *Game) start(cfg core.RuntimeConfig) error {
	notifier := sim.Notifier(g.banner)
	if g.env.Notifier != nil {
		notifier = sim.MultiNotifier{g.banner, g.env.Notifier}
	}

	run, err := sim.NewRun(sim.Options{
		Config:   g.env.Config,
		Ship:     g.ship.ID,
		Name:     g.env.Pilot,
		Seed:     cfg.Seed,
		Logger:   g.env.Logger,
		Notifier: notifier,
		Sink:     g.env.Sink,
	})
	if err != nil {
		return fmt.Errorf("shooter: %w", err)
	}

	g.config = cfg
	g.run = run
	g.banner.Clear()
	g.sched = sim.NewScheduler(run, g.env.Config.Loop.StallThreshold)
	if g.env.Debug {
		g.renderer.Stats = g.sched.Stats()
	} else {
		g.renderer.Stats = nil
	}
	g.last = sim.FrameResult{}
	return nil
}

// Frame handles one host frame. Pause is an edge action handled before the
// scheduler sees the frame.
func (g *Game) Frame(now time.Time, in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.run.TogglePause()
	}
	g.last = g.sched.Frame(now, in)
	return core.StepResult{
		State: g.State(),
		Stall: g.last.Kind == sim.FrameStall,
	}
}

// Render draws the run and any overlay panels.
func (g *Game) Render(dst *core.Screen) {
	g.renderer.Render(g.run, dst)

	if text := g.banner.Current(); text != "" && !g.run.GameOver {
		dst.DrawTextCenteredColor(hudRows+(dst.Height()-hudRows)/3, text, core.ColorBrightYellow)
	}

	switch {
	case g.run.GameOver:
		drawPanel(dst, "GAME OVER",
			fmt.Sprintf("Score %d  Time %s  Kills %d  Bosses %d",
				g.run.Score, clock(g.run.Now), g.run.Kills, g.run.BossesDefeated),
			"R: restart  Esc: menu  Q: quit")
	case g.run.Paused:
		drawPanel(dst, "PAUSED", "P: resume  Esc: menu  Q: quit")
	}
}

// drawPanel draws a message box in the center of the screen.
func drawPanel(dst *core.Screen, title string, lines ...string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorBrightWhite)
	dst.DrawTextCenteredColor(boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawTextCenteredColor(boxY+3+i, l, core.ColorWhite)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.run.Score,
		GameOver: g.run.GameOver,
		Paused:   g.run.Paused,
		Elapsed:  g.run.Now,
	}
}

// RunID returns the ID of the current run.
func (g *Game) RunID() string { return g.run.ID }

// Run exposes the current run for summaries.
func (g *Game) Run() *sim.RunState { return g.run }

// LastFrame reports what the most recent host frame did.
func (g *Game) LastFrame() sim.FrameResult { return g.last }

// Describe summarizes a ship's stats for menus.
func Describe(s config.ShipConfig) string {
	return fmt.Sprintf("HP %.0f  DEF %.0f%%  DMG %.0f  ROF %.0f/s  SPD %.0f  %s (%s)",
		s.Health, s.Defense, s.Damage, s.FireRate, s.Speed, specialName(s.Special), s.SpecialCooldown)
}

func specialName(key string) string {
	switch key {
	case "dodge_roll":
		return "Dodge Roll"
	case "fortify":
		return "Fortify"
	case "power_surge":
		return "Power Surge"
	case "energy_wave":
		return "Energy Wave"
	default:
		return "No special"
	}
}

// Register the built-in ships with the registry
func init() {
	for _, ship := range config.DefaultShooterConfig().Ships {
		id := ship.ID
		registry.Register(registry.GameInfo{
			ID:          id,
			Title:       ship.Name,
			Description: Describe(ship),
		}, func(env registry.Env) (registry.Game, error) {
			return New(id, env)
		})
	}
}
