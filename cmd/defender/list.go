package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cosmic-defender/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the ships",
	Long:  `Shows every ship that can be flown, with its stats and special ability.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	ships := registry.List()

	if len(ships) == 0 {
		fmt.Println("No ships available.")
		return
	}

	fmt.Println("Available ships:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, s := range ships {
		maxIDLen = max(maxIDLen, len(s.ID))
		maxTitleLen = max(maxTitleLen, len(s.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Profile")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-------")

	for _, s := range ships {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, s.ID, maxTitleLen, s.Title, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'defender play <id>' to fly a ship.")
}
