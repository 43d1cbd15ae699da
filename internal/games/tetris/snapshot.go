package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/sim"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick   uint64
	Seed   int64
	State  GameStateType
	Engine sim.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.engine != nil && g.engine.IsGameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	var es sim.Snapshot
	if g.engine != nil {
		es = g.engine.Snapshot()
	}

	return Snapshot{
		Tick:   g.tick,
		Seed:   g.seed,
		State:  state,
		Engine: es,
	}
}
