package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all registered games with their recorded runs.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Run counts are optional; a missing database just leaves them blank
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.AllGamesStats()
		store.Close()
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Runs")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "----")
	for _, g := range games {
		runs := "-"
		if st, ok := stats[g.ID]; ok {
			runs = fmt.Sprintf("%d (best %d lines)", st.Runs, st.BestLines)
		}
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, g.ID, g.Title, runs)
	}

	fmt.Println()
	fmt.Println("Run 'tetris play <id>' to play a game.")
}
