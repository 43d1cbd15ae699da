// tetris is a terminal falling-block puzzle game with run statistics and
// SSH serving.
//
// Usage:
//
//	tetris list              - List available games
//	tetris play [game]       - Play a game (default: tetris)
//	tetris menu              - Start menu with game and statistics screens
//	tetris serve             - Start SSH server for remote play
//	tetris stats [game]      - Show run statistics for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.tetris/runs.db)
//	--config <path>      - Use a custom controls/theme config
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

// defaultGame is played when no game is named.
const defaultGame = tetris.ID

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logLevel = log.InfoLevel
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris is a terminal falling-block puzzle. Pieces fall on a fixed
10x20 well; full rows are cleared and the game ends when the stack
reaches the top.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive menu with statistics
  serve    - Start SSH server for remote play
  stats    - View run statistics

Examples:
  tetris play
  tetris play --seed 42
  tetris stats --interactive
  tetris serve --ssh :2222`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logLevel = level
		if flagFPS <= 0 {
			return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
		}
		tetris.SetConfigPath(flagConfig)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/runs.db", "Path to run statistics database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

// newLogger returns a logger at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel,
	})
}

// loadConfig loads the controls and theme config. A broken --config is an
// error; anything else falls back to the defaults.
func loadConfig() (config.TetrisConfig, error) {
	return config.LoadTetris(flagConfig)
}

// runtimeConfig builds the runtime config from the global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// keyMap builds the game key bindings from cfg.
func keyMap(cfg config.TetrisConfig) tui.KeyMap {
	return tui.NewKeyMap(cfg.Controls)
}
