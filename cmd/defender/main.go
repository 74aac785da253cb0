// defender is Cosmic Defender, a vertical arcade shooter for the terminal.
//
// Usage:
//
//	defender list              - List the ships
//	defender play <ship>       - Fly a ship
//	defender menu              - Pick ships and browse scores interactively
//	defender serve             - Start SSH server for remote play
//	defender scoreserver       - Start the HTTP score service
//	defender scores [ship]     - Show high scores
//	defender simulate          - Fly headless autopilot runs
//	defender defaults          - Print the built-in game configuration
//
// Global flags:
//
//	--fps <rate>          - Set host frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.defender/scores.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--score-url <url>     - Submit to a remote score service instead of the database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/cosmic-defender/internal/games/shooter"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagName       string
	flagScoreURL   string
	flagLogLevel   string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "defender",
	Short: "Cosmic Defender - hold the line in your terminal",
	Long: `Cosmic Defender is a vertical arcade shooter for the terminal.
Steer your ship along the bottom of the screen, shoot down waves of
enemies, collect power-ups and survive the bosses.

Available commands:
  list         - Show the ships
  play         - Fly a specific ship directly
  menu         - Interactive ship picker and scoreboard
  serve        - Start SSH server for remote play
  scoreserver  - Start the HTTP score service
  scores       - View high scores
  simulate     - Fly headless autopilot runs
  defaults     - Print the built-in game configuration

Examples:
  defender list
  defender play speedster
  defender menu --name ace
  defender serve --ssh :2222
  defender scoreserver --addr :5500
  defender play tank --score-url http://localhost:5500`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Host frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.defender/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagName, "name", "", "Pilot name reported with scores (default: $USER)")
	pf.StringVar(&flagScoreURL, "score-url", "", "Score service URL; empty records to --db")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagDebug, "debug", false, "Show frame diagnostics in the HUD")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreServerCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(defaultsCmd)
}
