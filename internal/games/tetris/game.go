// Package tetris adapts the falling-block simulation in package sim to the
// platform's Game interface: fixed-rate ticks, semantic actions and a
// character screen.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/sim"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "tetris"

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the config file path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements registry.Game on top of sim.Engine.
type Game struct {
	engine   *sim.Engine
	theme    config.ThemeConfig
	seed     int64
	tickRate int
	tick     uint64
	paused   bool

	lastCleared int // Rows cleared by the most recent tick

	// Screen dimensions from the runtime config, updated by Render
	screenW int
	screenH int
}

// New creates a new Tetris game. Call Reset before stepping it.
func New() *Game {
	return &Game{theme: config.DefaultTetrisConfig().Theme}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a fresh game seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tc, err := config.LoadTetris(configPath)
	if err != nil {
		tc = config.DefaultTetrisConfig()
	}
	g.theme = tc.Theme

	g.seed = cfg.Seed
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.lastCleared = 0

	g.engine = sim.NewEngine(rand.New(rand.NewSource(cfg.Seed)))
}

// Seed returns the seed the current game was started with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Played returns the simulated time of the current game, excluding pauses.
func (g *Game) Played() time.Duration {
	if g.engine == nil {
		return 0
	}
	return g.engine.Played()
}

// Step advances the game by one platform tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}
	g.tick++
	g.lastCleared = 0

	if input.Has(core.ActionPause) && !g.engine.IsGameOver() {
		g.paused = !g.paused
	}

	// The clock only runs while the game is live
	if g.paused || g.engine.IsGameOver() {
		return core.StepResult{State: g.State()}
	}

	res := g.engine.Step(time.Second/time.Duration(g.tickRate), toSimInput(input))
	g.lastCleared = len(res.Cleared)

	return core.StepResult{State: g.State(), Cleared: g.lastCleared}
}

// toSimInput converts platform actions to the engine's event set.
func toSimInput(input core.InputFrame) sim.Input {
	var in sim.Input
	if input.Has(core.ActionLeft) {
		in |= sim.MoveLeft
	}
	if input.Has(core.ActionRight) {
		in |= sim.MoveRight
	}
	if input.Has(core.ActionDrop) {
		in |= sim.HardDrop
	}
	if input.Has(core.ActionRotate) {
		in |= sim.RotateCW
	}
	if input.Has(core.ActionRotateCCW) {
		in |= sim.RotateCCW
	}
	return in
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Lines:    g.engine.Lines(),
		Pieces:   g.engine.Pieces(),
		GameOver: g.engine.IsGameOver(),
		Paused:   g.paused,
	}
}
