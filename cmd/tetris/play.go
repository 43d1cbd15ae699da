package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: tetris).

Default controls (change them with --config):
  Left/A/H       - Move left
  Right/D/L      - Move right
  Up/X/K         - Rotate clockwise
  Z/J            - Rotate counter-clockwise
  Space/Enter    - Hard drop
  P/Esc          - Pause
  R              - Restart (after game over)
  Q/Ctrl+C       - Quit
  ?              - Show all keys
  Ctrl+S         - Save a text screenshot

Examples:
  tetris play
  tetris play --seed 42
  tetris play --fps 30
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Open the same menu SSH users get: play games and browse run
statistics without leaving the terminal.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// openStore opens run statistics. Failure is logged and play continues
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run statistics database", "error", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'tetris list' to see available games)", gameID)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, "tetris")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	// The alternate screen owns the terminal while playing; session logs are
	// printed once it is gone.
	var sessionLog bytes.Buffer
	width, height := terminalSize()
	run, err := tui.Run(game, store, runtimeConfig(width, height), keyMap(cfg), newLogger(&sessionLog, "tetris"))
	os.Stderr.Write(sessionLog.Bytes())
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	printSummary(store, run)
	return nil
}

// printSummary reports the last finished run after the TUI exits.
func printSummary(store *storage.Store, run *storage.Run) {
	if run == nil {
		return
	}
	fmt.Printf("Game over: %d lines, %d pieces in %s (seed %d)\n",
		run.Lines, run.Pieces, run.Duration.Round(time.Second), run.Seed)

	if store == nil {
		return
	}
	if best, err := store.BestLines(run.GameID); err == nil {
		fmt.Printf("Best: %d lines\n", best)
	}
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, "tetris")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	var sessionLog bytes.Buffer
	width, height := terminalSize()
	model := tui.NewSessionModel(store, runtimeConfig(width, height), keyMap(cfg), newLogger(&sessionLog, "tetris"))

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	os.Stderr.Write(sessionLog.Bytes())
	return err
}
