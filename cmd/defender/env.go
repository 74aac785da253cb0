package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/cosmic-defender/internal/audio"
	"github.com/vovakirdan/cosmic-defender/internal/config"
	"github.com/vovakirdan/cosmic-defender/internal/core"
	"github.com/vovakirdan/cosmic-defender/internal/scoresvc"
	"github.com/vovakirdan/cosmic-defender/internal/sim"
	"github.com/vovakirdan/cosmic-defender/internal/storage"
)

// loadGameConfig resolves --config and applies --difficulty.
func loadGameConfig() (config.ShooterConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.ShooterConfig{}, err
	}
	cfg, err := config.LoadShooter(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyShooterPreset(&cfg, preset)
	return cfg, nil
}

// newLogger builds a logger on w at --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile logs interactive sessions to ~/.defender/defender.log so the
// alternate screen stays clean. It falls back to discarding logs.
func openLogFile() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".defender")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "defender.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	closeLog := func() {
		//nolint:errcheck // Best-effort close on exit
		f.Close()
	}
	return newLogger(f, "defender"), closeLog
}

// pilotName returns --name, the login name, or a placeholder.
func pilotName() string {
	if flagName != "" {
		return flagName
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "pilot"
}

// openStore opens --db. A failure is reported and play continues without
// local scores.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// newBackend picks where finished runs are recorded.
func newBackend(store *storage.Store) scoresvc.Backend {
	if flagScoreURL != "" {
		return scoresvc.NewClient(flagScoreURL)
	}
	if store != nil {
		return &scoresvc.LocalBackend{Store: store}
	}
	return nil
}

// waitSubmissions gives in-flight submissions a moment to finish on exit.
func waitSubmissions(sub *scoresvc.Submitter, limit time.Duration) {
	done := make(chan struct{})
	go func() {
		sub.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(limit):
	}
}

// newSound opens the speaker unless muted. The player stays silent when no
// audio device is available.
func newSound(mute, music bool, logger *log.Logger) (sim.Notifier, func()) {
	if mute {
		return nil, func() {}
	}
	player := audio.NewPlayer(audio.Options{Music: music, Logger: logger})
	//nolint:errcheck // Init logs the failure and leaves the player silent
	player.Init()
	return player, player.Close
}

// minFPS is the lowest host frame rate whose frame spacing stays within 80%
// of the stall threshold. Slower hosts turn every frame into a stall.
func minFPS(stall time.Duration) int {
	if stall <= 0 {
		return 1
	}
	return int(math.Ceil(float64(5*time.Second) / float64(4*stall)))
}

// checkFPS rejects --fps values the loop cannot run at.
func checkFPS(fps int, stall time.Duration) error {
	if lowest := minFPS(stall); fps < lowest {
		return fmt.Errorf("--fps must be at least %d (stall threshold %v), got %d", lowest, stall, fps)
	}
	return nil
}

// screenConfig sizes the runtime config to the terminal.
func screenConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
