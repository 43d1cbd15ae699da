// Package registry maps game IDs to factories. Game packages add themselves
// from init(), so the CLI, the session menu and the run statistics only need
// a blank import to find them. This build ships one game, "tetris", but every
// lookup goes through the registry so an unknown ID fails the same way in
// each entry point.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is what the TUI platform drives. Implementations hold only simulation
// and drawing state: the platform owns real time, key mapping and the
// terminal, and calls Step once per tick at RuntimeConfig.TickRate.
type Game interface {
	// ID is the key runs are recorded under in the statistics database.
	ID() string

	// Title is shown in the menu, the stats screen and `tetris list`.
	Title() string

	// Reset starts a new game. cfg.Seed fixes the piece sequence.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed since the last tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which has the terminal size minus the help footer.
	Render(dst *core.Screen)

	// State reports the counters and the paused/game over flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory returns a fresh, not yet Reset game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game under id. Registering the same id twice is a
// programming error and panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	games := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		games = append(games, e.info)
	}
	slices.SortFunc(games, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return games
}

// Info returns the description of id.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create returns a new instance of id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Info(id)
	return ok
}
