package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration. It mirrors the
// embedded defaults/tetris.yaml and is used when that cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Controls: ControlsConfig{
			Left:      []string{"left", "a", "h"},
			Right:     []string{"right", "d", "l"},
			Drop:      []string{" ", "enter"},
			Rotate:    []string{"up", "x", "k"},
			RotateCCW: []string{"z", "j"},
			Pause:     []string{"p", "esc"},
			Restart:   []string{"r"},
			Quit:      []string{"q", "ctrl+c"},
		},
		Theme: ThemeConfig{
			Block:      "██",
			Empty:      " ·",
			ShowBorder: true,
			Colors: map[string]string{
				"I":      "cyan",
				"J":      "blue",
				"L":      "orange",
				"O":      "yellow",
				"S":      "green",
				"Z":      "red",
				"T":      "purple",
				"empty":  "gray",
				"border": "white",
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
