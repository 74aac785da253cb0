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

// Autopilot flies a ship without a player. It lines up under the enemy
// closest to the bottom of the world, fires continuously and spends the
// special whenever it is ready.
type Autopilot struct {
	Deadband float64 // Horizontal distance treated as lined up
}

// Input returns the actions for the current state of rs.
func (a Autopilot) Input(rs *sim.RunState) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFire)

	p := rs.Player
	if p.SpecialReady(rs.Now) && !p.EMPed(rs.Now) {
		in.Set(core.ActionSpecial)
	}

	var target *sim.Enemy
	for _, e := range rs.Enemies {
		if !e.Active() {
			continue
		}
		if target == nil || e.Y > target.Y {
			target = e
		}
	}
	if target == nil {
		return in
	}

	dx := target.X - p.X
	if dx > -a.Deadband && dx < a.Deadband {
		return in
	}
	right := dx > 0
	// Controls are inverted while mind controlled.
	if p.MindControlled(rs.Now) {
		right = !right
	}
	if right {
		in.Set(core.ActionRight)
	} else {
		in.Set(core.ActionLeft)
	}
	return in
}

// SimulateOptions configures a headless run.
type SimulateOptions struct {
	Ship  string
	Seed  int64
	Limit time.Duration // Simulated time before the run is cut off
	Step  time.Duration // Fixed step length; zero means the tick interval
}

// Simulate flies one run with the autopilot at fixed steps until the
// player dies or the limit passes. The run is returned for reporting.
func Simulate(env registry.Env, opts SimulateOptions) (*sim.RunState, error) {
	if len(env.Config.Ships) == 0 {
		env.Config = config.DefaultShooterConfig()
	}
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	if opts.Step <= 0 {
		opts.Step = 16 * time.Millisecond
	}
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("shooter: simulation limit must be positive")
	}

	rs, err := sim.NewRun(sim.Options{
		Config:   env.Config,
		Ship:     opts.Ship,
		Name:     env.Pilot,
		Seed:     opts.Seed,
		Logger:   env.Logger,
		Notifier: env.Notifier,
		Sink:     env.Sink,
	})
	if err != nil {
		return nil, fmt.Errorf("shooter: %w", err)
	}

	pilot := Autopilot{Deadband: rs.Player.W / 4}
	for !rs.GameOver && rs.Now < opts.Limit {
		rs.Step(opts.Step, pilot.Input(rs))
	}
	return rs, nil
}
