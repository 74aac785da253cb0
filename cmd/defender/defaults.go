package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-defender/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in game configuration",
	Long: `Print the built-in game configuration as YAML.

Save it to ~/.defender/configs/shooter.yaml or pass it with --config to
tune ships, enemies, spawning and difficulty. Keys left out of a custom
file keep their built-in values.

Examples:
  defender defaults > ~/.defender/configs/shooter.yaml`,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		return err
	},
}
