package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-defender/internal/platform/tui"
	"github.com/vovakirdan/cosmic-defender/internal/registry"
	"github.com/vovakirdan/cosmic-defender/internal/scoresvc"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a ship picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to launch a ship, Tab for the
scoreboard. Leaving a run returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Launch ship
  Tab          - Scoreboard
  Q            - Quit

Examples:
  defender menu
  defender menu --fps 120
  defender menu --db ./scores.db --name ace`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if err := checkFPS(flagFPS, gameCfg.Loop.StallThreshold); err != nil {
		return err
	}

	logger, closeLog := openLogFile()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	backend := newBackend(store)

	sound, closeSound := newSound(flagMute, flagMusic, logger)
	defer closeSound()

	pilot := pilotName()
	cfg := screenConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, pilot)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		// Each game gets its own submitter so outcomes of an abandoned
		// program never reach the next one.
		submitter := scoresvc.NewSubmitter(backend, logger)
		game, err := registry.Create(menuResult.GameID, registry.Env{
			Config:   gameCfg,
			Pilot:    pilot,
			Logger:   logger,
			Notifier: sound,
			Sink:     submitter,
			Debug:    flagDebug,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		cfg.Seed = flagSeed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		result, err := tui.Run(game, cfg, tui.GameOptions{
			Submitter: submitter,
			Clipboard: true,
			Autofire:  flagAutofire,
		})
		if sound != nil {
			sound.Music(false) // A run left mid-flight never reaches game over
		}
		waitSubmissions(submitter, 3*time.Second)
		if err != nil {
			return err
		}
		cfg = result.Config
		if !result.BackToMenu {
			return nil
		}
	}
}
