// Package config provides YAML-based configuration loading for the
// terminal front end: key bindings and the board theme.
// Simulation rules (board size, gravity interval, spawn point) are fixed
// and deliberately not configurable.
package config

import (
	"fmt"
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// TetrisConfig contains all configuration for the Tetris front end.
type TetrisConfig struct {
	Controls ControlsConfig `yaml:"controls"`
	Theme    ThemeConfig    `yaml:"theme"`
}

// ControlsConfig lists the keys bound to each action, in Bubble Tea key
// notation ("left", "a", " ", "ctrl+c").
type ControlsConfig struct {
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	Drop      []string `yaml:"drop"`
	Rotate    []string `yaml:"rotate"`
	RotateCCW []string `yaml:"rotate_ccw"`
	Pause     []string `yaml:"pause"`
	Restart   []string `yaml:"restart"`
	Quit      []string `yaml:"quit"`
}

// ThemeConfig controls how the board is drawn.
type ThemeConfig struct {
	Block      string            `yaml:"block"`       // Glyph for an occupied cell, two single-width runes
	Empty      string            `yaml:"empty"`       // Glyph for an empty cell, two single-width runes
	ShowBorder bool              `yaml:"show_border"` // Draw a frame around the well
	Colors     map[string]string `yaml:"colors"`      // Piece letter (or "empty", "border") -> color name
}

// colorKeys are the keys accepted in ThemeConfig.Colors.
var colorKeys = map[string]bool{
	"I": true, "J": true, "L": true, "O": true, "S": true, "Z": true, "T": true,
	"empty": true, "border": true,
}

// CellWidth is the number of terminal columns one board cell occupies.
const CellWidth = 2

// Validate checks that every action has a key, no key is bound twice,
// glyphs fit a cell and color names are known.
func (c TetrisConfig) Validate() error {
	bindings := []struct {
		name string
		keys []string
	}{
		{"left", c.Controls.Left},
		{"right", c.Controls.Right},
		{"drop", c.Controls.Drop},
		{"rotate", c.Controls.Rotate},
		{"rotate_ccw", c.Controls.RotateCCW},
		{"pause", c.Controls.Pause},
		{"restart", c.Controls.Restart},
		{"quit", c.Controls.Quit},
	}

	owner := make(map[string]string)
	for _, b := range bindings {
		if len(b.keys) == 0 {
			return fmt.Errorf("config: controls.%s has no keys", b.name)
		}
		for _, k := range b.keys {
			if prev, dup := owner[k]; dup {
				return fmt.Errorf("config: key %q bound to both %s and %s", k, prev, b.name)
			}
			owner[k] = b.name
		}
	}

	if err := checkGlyph("theme.block", c.Theme.Block); err != nil {
		return err
	}
	if err := checkGlyph("theme.empty", c.Theme.Empty); err != nil {
		return err
	}

	keys := make([]string, 0, len(c.Theme.Colors))
	for k := range c.Theme.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !colorKeys[k] {
			return fmt.Errorf("config: theme.colors has unknown key %q", k)
		}
		if _, ok := core.ParseColor(c.Theme.Colors[k]); !ok {
			return fmt.Errorf("config: theme.colors.%s: unknown color %q", k, c.Theme.Colors[k])
		}
	}

	return nil
}

// glyphWidth measures glyphs with ambiguous-width runes (█, ·) as narrow,
// independent of the user's locale.
var glyphWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// checkGlyph requires exactly CellWidth single-column runes, one per
// screen column of a board cell.
func checkGlyph(field, glyph string) error {
	runes := []rune(glyph)
	if w := glyphWidth.StringWidth(glyph); w != CellWidth || len(runes) != CellWidth {
		return fmt.Errorf("config: %s %q must be %d single-width characters", field, glyph, CellWidth)
	}
	return nil
}

// Color returns the configured color for key, or fallback when unset.
func (t ThemeConfig) Color(key string, fallback core.Color) core.Color {
	name, ok := t.Colors[key]
	if !ok {
		return fallback
	}
	if c, ok := core.ParseColor(name); ok {
		return c
	}
	return fallback
}
