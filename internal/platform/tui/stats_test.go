package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func saveRun(t *testing.T, store *storage.Store, r storage.Run) {
	t.Helper()
	_, err := store.SaveRun(r)
	require.NoError(t, err)
}

func TestRunStatsOrders(t *testing.T) {
	store := openStore(t)
	for _, lines := range []int{3, 9, 1} {
		saveRun(t, store, storage.Run{GameID: "tetris", Lines: lines, Pieces: lines * 3})
	}

	m := NewRunStatsModel(store, "tetris", "Tetris", 100, 30)
	require.Equal(t, OrderBest, m.Order())
	require.Len(t, m.Runs(), 3)
	assert.Equal(t, 9, m.Runs()[0].Lines)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunStatsModel)
	require.Equal(t, OrderRecent, m.Order())
	assert.Equal(t, 1, m.Runs()[0].Lines, "newest run first")

	view := m.View()
	for _, want := range []string{"Recent runs", "Runs: 3", "Best: 9 lines"} {
		assert.Contains(t, view, want)
	}
}

func TestRunStatsWithoutStore(t *testing.T) {
	m := NewRunStatsModel(nil, "tetris", "Tetris", 80, 24)

	assert.Contains(t, m.View(), "unavailable")
}

func TestRunStatsEmpty(t *testing.T) {
	m := NewRunStatsModel(openStore(t), "tetris", "Tetris", 80, 24)

	view := m.View()
	assert.Contains(t, view, "No runs recorded yet")
	assert.Contains(t, view, "No runs yet")
}

func TestRunStatsBackAndQuit(t *testing.T) {
	m := NewRunStatsModel(nil, "tetris", "Tetris", 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(RunStatsModel).IsGoingBack(), "esc should go back")
	assert.NotNil(t, cmd)

	next, _ = m.Update(runeKey('q'))
	assert.True(t, next.(RunStatsModel).IsQuitting(), "q should quit")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61*time.Second + 600*time.Millisecond, "1:02"},
		{75 * time.Minute, "75:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in), "formatDuration(%v)", tt.in)
	}
}

func TestNarrowTableDropsSeed(t *testing.T) {
	store := openStore(t)
	saveRun(t, store, storage.Run{GameID: "tetris", Lines: 2, Seed: 123456789})

	wide := NewRunStatsModel(store, "tetris", "Tetris", 100, 30)
	narrow := NewRunStatsModel(store, "tetris", "Tetris", 60, 30)

	assert.Len(t, wide.table.Columns(), 6)
	assert.Len(t, narrow.table.Columns(), 5)
	assert.Contains(t, wide.View(), "123456789")
}
