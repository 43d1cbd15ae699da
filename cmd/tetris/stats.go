package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagInteractive bool
	flagRecent      bool
	flagLimit       int
	flagClear       bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show run statistics for a game",
	Long: `Display totals and the best runs recorded for a game (default: tetris).
Runs are ranked by cleared lines, then by placed pieces.

Examples:
  tetris stats
  tetris stats --recent --limit 5
  tetris stats --interactive
  tetris stats --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in an interactive table")
	statsCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the most recent runs instead of the best")
	statsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to list")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs for the game")
}

func runStats(cmd *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}

	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q (run 'tetris list' to see available games)", gameID)
	}
	title := info.Title

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run statistics: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs for %s.\n", title)
		return nil
	}

	if flagInteractive {
		width, height := terminalSize()
		return tui.RunStats(store, gameID, title, width, height)
	}

	stats, err := store.GameStats(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("Run statistics - %s\n", title)
	fmt.Println()

	if stats.Runs == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to record the first run!\n", gameID)
		return nil
	}

	fmt.Printf("  Runs:        %d\n", stats.Runs)
	fmt.Printf("  Best:        %d lines\n", stats.BestLines)
	fmt.Printf("  Average:     %.1f lines\n", stats.AvgLines)
	fmt.Printf("  Total:       %d lines, %d pieces\n", stats.TotalLines, stats.Pieces)
	fmt.Printf("  Play time:   %s\n", stats.PlayTime.Round(time.Second))
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()

	var runs []storage.Run
	heading := tui.OrderBest.String()
	if flagRecent {
		heading = tui.OrderRecent.String()
		runs, err = store.RecentRuns(gameID, flagLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println(heading)
	fmt.Printf("  %-4s  %-6s  %-6s  %-8s  %-20s  %s\n", "#", "Lines", "Pieces", "Time", "Seed", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-8s  %-20s  %s\n", "-", "-----", "------", "----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-6d  %-8s  %-20d  %s\n",
			i+1, r.Lines, r.Pieces, r.Duration.Round(time.Second), r.Seed,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
