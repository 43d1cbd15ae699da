package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(GetDefaultYAML())
	require.NoError(t, err, "embedded defaults do not parse")

	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultTetrisConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TetrisConfig)
		wantErr string
	}{
		{
			name:    "empty key list",
			mutate:  func(c *TetrisConfig) { c.Controls.Rotate = nil },
			wantErr: "controls.rotate",
		},
		{
			name:    "key bound twice",
			mutate:  func(c *TetrisConfig) { c.Controls.Quit = append(c.Controls.Quit, "left") },
			wantErr: `"left"`,
		},
		{
			name:    "narrow block glyph",
			mutate:  func(c *TetrisConfig) { c.Theme.Block = "#" },
			wantErr: "theme.block",
		},
		{
			name:    "wide empty glyph",
			mutate:  func(c *TetrisConfig) { c.Theme.Empty = " . " },
			wantErr: "theme.empty",
		},
		{
			name:    "unknown color name",
			mutate:  func(c *TetrisConfig) { c.Theme.Colors["T"] = "mauve" },
			wantErr: "mauve",
		},
		{
			name:    "unknown color key",
			mutate:  func(c *TetrisConfig) { c.Theme.Colors["X"] = "red" },
			wantErr: `"X"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGlyphWidth(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Theme.Block = "[]"
	cfg.Theme.Empty = "  "
	assert.NoError(t, cfg.Validate())

	// One rune spanning two columns cannot be split across screen cells.
	cfg.Theme.Block = "中"
	assert.Error(t, cfg.Validate())
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("controls:\n  drop: [\"s\"]\ntheme:\n  colors:\n    T: magenta\n"))
	require.NoError(t, err)

	def := DefaultTetrisConfig()
	assert.Equal(t, []string{"s"}, cfg.Controls.Drop)
	assert.Equal(t, def.Controls.Left, cfg.Controls.Left)
	assert.Equal(t, "magenta", cfg.Theme.Colors["T"])
	assert.Equal(t, "cyan", cfg.Theme.Colors["I"])
	assert.Equal(t, def.Theme.Block, cfg.Theme.Block)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("controls: ["))
	assert.Error(t, err, "YAML syntax error")

	_, err = Parse([]byte("theme:\n  block: \"#\"\n"))
	assert.Error(t, err, "validation error")
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", "theme:\n  show_border: false\n")

	cfg, err := LoadTetris(path)
	require.NoError(t, err)
	assert.False(t, cfg.Theme.ShowBorder)
}

func TestLoadTetrisCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTetris(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "controls:\n  quit: []\n")
	_, err = LoadTetris(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadTetrisFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, filepath.Join("configs", ConfigFile), "controls:\n  pause: [\"space\"]\n")

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, []string{"space"}, cfg.Controls.Pause)
}

func TestLoadTetrisUserConfigWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, home, filepath.Join(".tetris", "configs", ConfigFile), "theme:\n  block: \"[]\"\n")
	writeFile(t, dir, filepath.Join("configs", ConfigFile), "theme:\n  block: \"##\"\n")

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, "[]", cfg.Theme.Block)
}

func TestThemeColorFallback(t *testing.T) {
	theme := DefaultTetrisConfig().Theme
	assert.Equal(t, core.ColorPurple, theme.Color("T", core.ColorDefault))
	assert.Equal(t, core.ColorWhite, theme.Color("border", core.ColorRed))

	theme.Colors = nil
	assert.Equal(t, core.ColorRed, theme.Color("T", core.ColorRed))
}
