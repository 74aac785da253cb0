package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-defender/internal/platform/tui"
	"github.com/vovakirdan/cosmic-defender/internal/registry"
	"github.com/vovakirdan/cosmic-defender/internal/scoresvc"
)

var (
	flagMute     bool
	flagMusic    bool
	flagAutofire bool
)

var playCmd = &cobra.Command{
	Use:   "play <ship>",
	Short: "Fly a ship",
	Long: `Start a run with the specified ship.

Controls:
  A/D, Left/Right  - Steer (hold)
  Space/W/Up       - Fire (hold)
  E/X              - Special ability
  F                - Toggle autofire
  P                - Pause
  Esc              - Pause; leave when paused or after game over
  R                - Restart (after game over)
  C                - Copy the run summary (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start with the calm opening, progresses to max
  normal - Start slightly ahead on the difficulty ramp
  hard   - Start well into the difficulty ramp
  fixed  - No progression, stays at config's initial level

Examples:
  defender play speedster
  defender play tank --difficulty hard
  defender play glass_cannon --mute
  defender play all_rounder --config ./my-shooter.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
		c.Flags().BoolVar(&flagMusic, "music", true, "Play the background theme")
		c.Flags().BoolVar(&flagAutofire, "autofire", false, "Start with fire held")
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	shipID := args[0]

	if !registry.Exists(shipID) {
		return fmt.Errorf("unknown ship %q, run 'defender list' to see the ships", shipID)
	}

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
	submitter := scoresvc.NewSubmitter(newBackend(store), logger)
	defer waitSubmissions(submitter, 3*time.Second)

	sound, closeSound := newSound(flagMute, flagMusic, logger)
	defer closeSound()

	game, err := registry.Create(shipID, registry.Env{
		Config:   gameCfg,
		Pilot:    pilotName(),
		Logger:   logger,
		Notifier: sound,
		Sink:     submitter,
		Debug:    flagDebug,
	})
	if err != nil {
		return err
	}

	_, err = tui.Run(game, screenConfig(), tui.GameOptions{
		Submitter: submitter,
		Clipboard: true,
		Autofire:  flagAutofire,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
