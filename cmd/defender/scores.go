package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-defender/internal/registry"
	"github.com/vovakirdan/cosmic-defender/internal/scoresvc"
	"github.com/vovakirdan/cosmic-defender/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPage  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [ship]",
	Short: "Show high scores",
	Long: `Display the top scores, for one ship or for all of them.

With --score-url the board is read from the score service, which keeps a
single board for every ship.

Examples:
  defender scores
  defender scores tank --limit 20
  defender scores --score-url http://localhost:5500 --page 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().IntVar(&flagScoresPage, "page", 1, "Page of the remote board")
}

func runScores(_ *cobra.Command, args []string) error {
	ship := ""
	if len(args) == 1 {
		ship = args[0]
		if !registry.Exists(ship) {
			return fmt.Errorf("unknown ship %q, run 'defender list' to see the ships", ship)
		}
	}

	if flagScoreURL != "" {
		return remoteScores()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	scores, err := store.TopScores(ship, flagScoresLimit)
	if err != nil {
		return err
	}

	title := "all ships"
	if ship != "" {
		title = ship
	}
	fmt.Printf("High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'defender play <ship>' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %-8s  %-5s  %-5s  %s\n", "Rank", "Pilot", "Ship", "Score", "Time", "Kills", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %-8s  %-5s  %-5s  %s\n", "----", "-----", "----", "-----", "----", "-----", "----")
	for _, e := range scores {
		fmt.Printf("  %-4d  %-10s  %-12s  %-8d  %-5s  %-5d  %s\n",
			e.Rank, e.Name, e.Ship, e.Score, scoresvc.FormatTime(e.Elapsed), e.Kills, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(ship); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func remoteScores() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := scoresvc.NewClient(flagScoreURL).Scores(ctx, flagScoresPage, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s (page %d of %d)\n\n", flagScoreURL, flagScoresPage, resp.TotalPages)
	if len(resp.Scores) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Pilot", "Score", "Time")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "-----", "----")
	for _, s := range resp.Scores {
		fmt.Printf("  %-4d  %-10s  %-8d  %s\n", s.Rank, s.Name, s.Score, s.Time)
	}
	return nil
}
