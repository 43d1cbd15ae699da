package tui

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	quitKey  = runeKey('q')
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *tetris.Game) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	game := tetris.New()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 42}
	m := NewModel(game, store, cfg, DefaultKeyMap(), quietLogger())
	m.Init()
	return m, game
}

// send feeds one message to the model and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, TickMsg{Loop: m.loop})
	return m
}

func playUntilGameOver(t *testing.T, m Model) Model {
	t.Helper()
	for range 500 {
		if m.State().GameOver {
			return m
		}
		m, _ = send(t, m, spaceKey)
		m = tick(t, m)
	}
	require.FailNow(t, "game never ended")
	return m
}

func TestModelDropLocksPiece(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = send(t, m, spaceKey)
	m = tick(t, m)
	assert.Equal(t, 1, m.State().Pieces)

	// Input is consumed by the tick
	m = tick(t, m)
	assert.Equal(t, 1, m.State().Pieces, "idle tick placed a piece")
}

func TestModelIgnoresForeignTicks(t *testing.T) {
	m, game := newTestModel(t, nil)

	m, cmd := send(t, m, TickMsg{Loop: m.loop + 1000})
	assert.Nil(t, cmd, "foreign tick should not schedule another")
	assert.Zero(t, game.Snapshot().Tick, "foreign tick stepped the game")

	tick(t, m)
	assert.Equal(t, uint64(1), game.Snapshot().Tick, "own tick should step the game")
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	m, game := newTestModel(t, store)

	m = playUntilGameOver(t, m)
	for range 10 {
		m = tick(t, m)
	}

	runs, err := store.TopRuns("tetris", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1, "expected exactly one saved run")

	st := m.State()
	run := runs[0]
	assert.Equal(t, st.Lines, run.Lines)
	assert.Equal(t, st.Pieces, run.Pieces)
	assert.Equal(t, game.Seed(), run.Seed)
	assert.Equal(t, game.Played().Truncate(time.Millisecond), run.Duration)

	last := m.LastRun()
	require.NotNil(t, last)
	assert.Equal(t, run.ID, last.ID)
}

func TestModelRecordsRunWithoutStore(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = playUntilGameOver(t, m)

	require.NotNil(t, m.LastRun(), "run should be reported even without a store")
	assert.Zero(t, m.LastRun().ID, "unsaved run should have no ID")
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	store := openStore(t)
	m, _ := newTestModel(t, store)

	// Restart mid-game is ignored
	m, _ = send(t, m, spaceKey)
	m = tick(t, m)
	m, _ = send(t, m, runeKey('r'))
	m = tick(t, m)
	require.Equal(t, 1, m.State().Pieces, "restart mid-game reset the board")

	m = playUntilGameOver(t, m)
	m, _ = send(t, m, runeKey('r'))
	m = tick(t, m)

	st := m.State()
	require.False(t, st.GameOver, "restart did not start a fresh game")
	require.Zero(t, st.Pieces)

	playUntilGameOver(t, m)
	runs, err := store.RecentRuns("tetris", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2, "expected a run per game")
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := send(t, m, quitKey)
	assert.True(t, m.IsQuitting(), "q should quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View(), "view should be empty when quitting")
}

func TestEmbeddedModelReturnsToMenu(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.embedded = true

	m, cmd := send(t, m, quitKey)
	assert.Nil(t, cmd, "embedded quit should not exit the program")
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())

	_, cmd = send(t, m, TickMsg{Loop: m.loop})
	assert.Nil(t, cmd, "tick loop should stop after leaving the game")
}

func TestModelResizeKeepsGame(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = send(t, m, spaceKey)
	m = tick(t, m)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = tick(t, m)

	assert.Equal(t, 1, m.State().Pieces, "resize should not reset the game")
	assert.Equal(t, 100, m.screen.Width())
	assert.Less(t, m.screen.Height(), 40, "help needs room below the screen")
}

func TestModelViewShowsHelp(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = tick(t, m)

	view := m.View()
	assert.Contains(t, view, "drop")
	assert.Contains(t, view, "Lines: 0")

	short := m.screen.Height()
	m, _ = send(t, m, runeKey('?'))
	assert.Less(t, m.screen.Height(), short, "full help should take more rows")
	assert.Contains(t, m.View(), "rotate ccw", "full help should list every binding")
}
