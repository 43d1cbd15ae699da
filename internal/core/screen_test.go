package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertFilled checks that every cell of r holds want.
func assertFilled(t *testing.T, s *Screen, r Rect, want rune) {
	t.Helper()
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			assert.Equal(t, want, s.Get(x, y), "cell (%d, %d)", x, y)
		}
	}
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	assert.Equal(t, 80, s.Width())
	assert.Equal(t, 24, s.Height())
	assertFilled(t, s, NewRect(0, 0, 80, 24), ' ')
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	assert.Equal(t, 'X', s.Get(5, 5))

	// Out of bounds writes are ignored
	assert.NotPanics(t, func() {
		s.Set(-1, 0, 'A')
		s.Set(100, 0, 'A')
		s.Set(0, -1, 'A')
		s.Set(0, 100, 'A')
	})

	assert.Equal(t, ' ', s.Get(-1, 0))
	assert.Equal(t, ' ', s.Get(100, 0))
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.Fill('X')
	s.SetColored(3, 3, '#', ColorRed)

	s.Clear()

	assertFilled(t, s, NewRect(0, 0, 10, 10), ' ')
	assert.Equal(t, ColorDefault, s.GetCell(3, 3).Color)
}

func TestScreenFill(t *testing.T) {
	s := NewScreen(5, 5)
	s.Fill('#')

	assertFilled(t, s, NewRect(0, 0, 5, 5), '#')
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	assert.Equal(t, "  Hello             ", s.Row(1))

	// Only "He" fits before the right edge
	s.DrawText(18, 0, "Hello")
	assert.Equal(t, 'H', s.Get(18, 0))
	assert.Equal(t, 'e', s.Get(19, 0))
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	assertFilled(t, s, NewRect(2, 2, 3, 3), '#')
	assert.Equal(t, ' ', s.Get(1, 1))
	assert.Equal(t, ' ', s.Get(5, 5))
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(7, 6)
	s.DrawBox(NewRect(1, 1, 5, 4))

	want := strings.Join([]string{
		"       ",
		" ┌───┐ ",
		" │   │ ",
		" │   │ ",
		" └───┘ ",
		"       ",
	}, "\n")
	assert.Equal(t, want, s.String())
}

func TestScreenDrawBoxColored(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBoxColored(NewRect(0, 0, 4, 3), ColorWhite)

	assert.Equal(t, Cell{Rune: '┌', Color: ColorWhite}, s.GetCell(0, 0))
	assert.Equal(t, Cell{Rune: '│', Color: ColorWhite}, s.GetCell(3, 1))
	assert.Equal(t, ColorDefault, s.GetCell(1, 1).Color, "inside stays uncolored")
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	assert.Equal(t, "AAAAA\nBBBBB\nCCCCC", s.String())
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	// Shrinking keeps the top-left content
	s.Resize(8, 4)
	require.Equal(t, 8, s.Width())
	require.Equal(t, 4, s.Height())
	assert.Equal(t, "Hello   ", s.Row(0))

	// Growing keeps it too and pads with blanks
	s.Resize(15, 8)
	assert.Equal(t, "Hello          ", s.Row(0))
	assert.Equal(t, strings.Repeat(" ", 15), s.Row(5), "rows cut by the shrink stay blank")
}

func TestScreenResizeSameSize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")

	s.Resize(4, 2)

	assert.Equal(t, "abcd\n    ", s.String())
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	assert.Equal(t, "Test      ", s.Row(2))
	assert.Equal(t, "          ", s.Row(-1))
	assert.Equal(t, "          ", s.Row(5))
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColored(1, 1, "██", ColorCyan)

	assert.Equal(t, Cell{Rune: '█', Color: ColorCyan}, s.GetCell(1, 1))
	assert.Equal(t, ColorCyan, s.GetCell(2, 1).Color)
	assert.Equal(t, ColorDefault, s.GetCell(3, 1).Color)

	// Plain Set resets color
	s.Set(1, 1, 'x')
	assert.Equal(t, ColorDefault, s.GetCell(1, 1).Color)

	assert.Equal(t, Cell{Rune: ' ', Color: ColorDefault}, s.GetCell(-1, 0))
}

func TestScreenResizeKeepsColors(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(0, 0, '#', ColorRed)
	s.Resize(8, 8)

	assert.Equal(t, Cell{Rune: '#', Color: ColorRed}, s.GetCell(0, 0))
}
