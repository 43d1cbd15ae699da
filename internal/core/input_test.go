package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	assert.False(t, f.Has(ActionLeft), "new frame should have no actions")

	f.Set(ActionLeft)
	f.Set(ActionDrop)
	assert.True(t, f.Has(ActionLeft))
	assert.True(t, f.Has(ActionDrop))
	assert.False(t, f.Has(ActionRight))

	f.Clear()
	assert.False(t, f.Has(ActionLeft))
	assert.False(t, f.Has(ActionDrop))
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	assert.False(t, f.Has(ActionPause))

	f.Set(ActionPause)
	assert.True(t, f.Has(ActionPause), "Set on zero frame should allocate")
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRotate)

	clone := f.Clone()
	f.Clear()

	assert.True(t, clone.Has(ActionRotate), "clone should keep actions after original is cleared")
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionLeft, "Left"},
		{ActionRight, "Right"},
		{ActionDrop, "Drop"},
		{ActionRotate, "Rotate"},
		{ActionRotateCCW, "RotateCCW"},
		{ActionRestart, "Restart"},
		{ActionQuit, "Quit"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.action.String(), "Action(%d)", int(tc.action))
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		expected Color
		ok       bool
	}{
		{"cyan", ColorCyan, true},
		{" Orange ", ColorOrange, true},
		{"grey", ColorGray, true},
		{"purple", ColorPurple, true},
		{"chartreuse", ColorDefault, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseColor(tc.name)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}
