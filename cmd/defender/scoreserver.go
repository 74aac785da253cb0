package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-defender/internal/scoresvc"
	"github.com/vovakirdan/cosmic-defender/internal/storage"
)

var flagHTTPAddr string

var scoreServerCmd = &cobra.Command{
	Use:   "scoreserver",
	Short: "Start the HTTP score service",
	Long: `Serve the high-score API over HTTP, backed by --db.

Endpoints:
  POST /api/scores                 - Submit {name, score, time}; returns the rank
  GET  /api/scores?page=N&limit=M  - Read one page of the board
  GET  /healthz                    - Liveness probe

Examples:
  defender scoreserver
  defender scoreserver --addr :8080 --db ./scores.db`,
	RunE: runScoreServer,
}

func init() {
	scoreServerCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":5500", "HTTP listen address (host:port)")
}

func runScoreServer(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "defender-scores")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return scoresvc.NewServer(store, logger).ListenAndServe(ctx, flagHTTPAddr)
}
