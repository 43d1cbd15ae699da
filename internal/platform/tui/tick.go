// Package tui provides the Bubble Tea integration for the Tetris platform.
// It handles the terminal UI loop, input mapping, run statistics screens and
// SSH serving.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the model that scheduled it.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

// loopIDs hands out tick loop identifiers so a model ignores ticks still in
// flight from a model it replaced.
var loopIDs atomic.Uint64

func nextLoopID() uint64 {
	return loopIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
