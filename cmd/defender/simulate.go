package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-defender/internal/games/shooter"
	"github.com/vovakirdan/cosmic-defender/internal/registry"
	"github.com/vovakirdan/cosmic-defender/internal/scoresvc"
	"github.com/vovakirdan/cosmic-defender/internal/sim"
)

var (
	flagSimRuns     int
	flagSimSeconds  int
	flagSimSeedBase int64
	flagSimSeedStep int64
	flagSimShip     string
	flagSimRecord   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Fly headless autopilot runs",
	Long: `Run the simulation without a terminal. An autopilot steers under the
lowest enemy, fires continuously and uses the special when ready. Each run
stops when the ship is destroyed or the time limit passes.

Useful for tuning a config: the same seeds always replay the same runs.

Examples:
  defender simulate
  defender simulate --ship tank --runs 20 --seconds 300
  defender simulate --ship all --config ./my-shooter.yaml --difficulty hard
  defender simulate --record --name autopilot`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&flagSimRuns, "runs", 5, "Number of runs per ship")
	f.IntVar(&flagSimSeconds, "seconds", 180, "Simulated seconds per run")
	f.Int64Var(&flagSimSeedBase, "seed-base", 42, "Seed of the first run")
	f.Int64Var(&flagSimSeedStep, "seed-step", 1, "Seed increment between runs")
	f.StringVar(&flagSimShip, "ship", "all_rounder", "Ship to fly, or \"all\"")
	f.BoolVar(&flagSimRecord, "record", false, "Record finished runs to the scoreboard")
}

type simStats struct {
	ship     string
	runs     int
	deaths   int
	score    int
	kills    int
	bosses   int
	survived time.Duration
	best     sim.Result
}

func runSimulate(_ *cobra.Command, _ []string) error {
	if flagSimRuns <= 0 {
		return errors.New("--runs must be > 0")
	}
	if flagSimSeconds <= 0 {
		return errors.New("--seconds must be > 0")
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	ships := []string{flagSimShip}
	if flagSimShip == "all" {
		ships = ships[:0]
		for _, s := range gameCfg.Ships {
			ships = append(ships, s.ID)
		}
	}

	logger := newLogger(os.Stderr, "defender-sim")
	var backend scoresvc.Backend
	if flagSimRecord {
		store := openStore()
		if store != nil {
			defer store.Close()
		}
		backend = newBackend(store)
	}

	limit := time.Duration(flagSimSeconds) * time.Second
	fmt.Printf("=== Autopilot Report ===\n")
	fmt.Printf("ships=%v runs=%d limit=%s seed_base=%d seed_step=%d\n\n",
		ships, flagSimRuns, scoresvc.FormatTime(limit), flagSimSeedBase, flagSimSeedStep)

	all := make([]simStats, 0, len(ships))
	for _, ship := range ships {
		st := simStats{ship: ship}
		for i := range flagSimRuns {
			seed := flagSimSeedBase + int64(i)*flagSimSeedStep
			rs, err := shooter.Simulate(registry.Env{
				Config: gameCfg,
				Pilot:  pilotName(),
				Logger: logger,
			}, shooter.SimulateOptions{Ship: ship, Seed: seed, Limit: limit})
			if err != nil {
				return err
			}

			r := rs.Result()
			printSimRun(i+1, seed, rs.GameOver, r)
			st.add(r, rs.GameOver)
			if backend != nil {
				record(backend, r)
			}
		}
		fmt.Println()
		all = append(all, st)
	}

	printSimAggregate(all)
	return nil
}

func (s *simStats) add(r sim.Result, died bool) {
	s.runs++
	if died {
		s.deaths++
	}
	s.score += r.Score
	s.kills += r.Kills
	s.bosses += r.Bosses
	s.survived += r.Elapsed
	if r.Score > s.best.Score || s.runs == 1 {
		s.best = r
	}
}

func record(backend scoresvc.Backend, r sim.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	resp, err := backend.Submit(ctx, scoresvc.FromResult(r))
	if err != nil {
		fmt.Printf("    not recorded: %v\n", err)
		return
	}
	fmt.Printf("    recorded: rank %s, ahead of %d%%\n", scoresvc.Ordinal(resp.Rank), resp.Percentile)
}

func printSimRun(n int, seed int64, died bool, r sim.Result) {
	end := "survived"
	if died {
		end = "destroyed"
	}
	fmt.Printf("--- %s run %d (seed=%d) ---\n", r.Ship, n, seed)
	fmt.Printf("score=%d time=%s kills=%d bosses=%d end=%s\n",
		r.Score, scoresvc.FormatTime(r.Elapsed), r.Kills, r.Bosses, end)
}

func printSimAggregate(all []simStats) {
	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("  %-12s  %-4s  %-6s  %-9s  %-9s  %-8s  %-6s  %s\n",
		"Ship", "Runs", "Deaths", "AvgScore", "BestScore", "AvgTime", "Kills", "Bosses")
	for _, s := range all {
		avgScore := float64(s.score) / float64(s.runs)
		avgTime := s.survived / time.Duration(s.runs)
		fmt.Printf("  %-12s  %-4d  %-6d  %-9.1f  %-9d  %-8s  %-6d  %d\n",
			s.ship, s.runs, s.deaths, avgScore, s.best.Score, scoresvc.FormatTime(avgTime), s.kills, s.bosses)
	}
}
