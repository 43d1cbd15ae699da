package sim

import (
	"fmt"
	"strings"
)

// Board dimensions and the row whose occupation ends the game.
const (
	Width     = 10
	Height    = 20
	CutoffRow = 1
)

// Grid is the row-major cell storage, row 0 at the top.
// Being an array, a Grid value is always an independent copy.
type Grid [Height][Width]Cell

// Board holds the settled blocks. The active piece is never stored here
// until it locks.
type Board struct {
	cells Grid
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// InBounds reports whether (x, y) addresses a stored cell.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Set writes a cell. Out-of-range coordinates are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y][x] = c
}

// Get returns the cell at (x, y). Reading outside the board is a logic
// error in the caller and panics.
func (b *Board) Get(x, y int) Cell {
	b.mustBeInBounds(x, y)
	return b.cells[y][x]
}

// place writes a cell that must be in range.
func (b *Board) place(x, y int, c Cell) {
	b.mustBeInBounds(x, y)
	b.cells[y][x] = c
}

func (b *Board) mustBeInBounds(x, y int) {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("sim: cell (%d,%d) out of bounds %dx%d", x, y, Width, Height))
	}
}

// IsRowFull reports whether every cell in row y is occupied.
func (b *Board) IsRowFull(y int) bool {
	b.mustBeInBounds(0, y)
	for x := range Width {
		if b.cells[y][x].IsEmpty() {
			return false
		}
	}
	return true
}

// IsRowEmpty reports whether row y has no blocks.
func (b *Board) IsRowEmpty(y int) bool {
	b.mustBeInBounds(0, y)
	for x := range Width {
		if !b.cells[y][x].IsEmpty() {
			return false
		}
	}
	return true
}

// ClearRow empties row y and shifts every row above it down by one.
// Row 0 becomes empty.
func (b *Board) ClearRow(y int) {
	b.mustBeInBounds(0, y)
	for row := y; row > 0; row-- {
		b.cells[row] = b.cells[row-1]
	}
	b.cells[0] = [Width]Cell{}
}

// ClearFullRows removes every full row at once and returns their indices,
// top to bottom, in pre-clear coordinates. Surviving rows are compacted
// bottom-up into a fresh grid so several simultaneous clears never
// double-shift or skip a row.
func (b *Board) ClearFullRows() []int {
	var cleared []int
	var next Grid

	dst := Height - 1
	for y := Height - 1; y >= 0; y-- {
		if b.IsRowFull(y) {
			cleared = append(cleared, y)
			continue
		}
		next[dst] = b.cells[y]
		dst--
	}

	if len(cleared) == 0 {
		return nil
	}

	// Collected bottom-up; report top-down.
	for i, j := 0, len(cleared)-1; i < j; i, j = i+1, j-1 {
		cleared[i], cleared[j] = cleared[j], cleared[i]
	}

	b.cells = next
	return cleared
}

// IsCutoffBreached reports whether any block sits in the cutoff row.
func (b *Board) IsCutoffBreached() bool {
	return !b.IsRowEmpty(CutoffRow)
}

// Cells returns a copy of the grid.
func (b *Board) Cells() Grid {
	return b.cells
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for y := range Height {
		for x := range Width {
			if !b.cells[y][x].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// String renders the board one rune per cell, '.' for empty cells.
func (b *Board) String() string {
	return b.cells.String()
}

// String renders the grid one rune per cell, '.' for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := range Height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range Width {
			sb.WriteString(g[y][x].String())
		}
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of cell letters ('.' for empty).
// Missing rows are filled from the top so short layouts sit on the floor.
func ParseGrid(rows ...string) (Grid, error) {
	var g Grid
	if len(rows) > Height {
		return g, fmt.Errorf("sim: layout has %d rows, max %d", len(rows), Height)
	}

	offset := Height - len(rows)
	for i, row := range rows {
		if len(row) != Width {
			return g, fmt.Errorf("sim: layout row %d has %d cells, want %d", i, len(row), Width)
		}
		for x, r := range row {
			c, ok := cellFromRune(r)
			if !ok {
				return g, fmt.Errorf("sim: layout row %d: unknown cell %q", i, r)
			}
			g[offset+i][x] = c
		}
	}
	return g, nil
}

// NewBoardFromGrid returns a board holding a copy of g.
func NewBoardFromGrid(g Grid) *Board {
	return &Board{cells: g}
}

func cellFromRune(r rune) (Cell, bool) {
	switch r {
	case '.', ' ':
		return Empty, true
	case 'I':
		return I, true
	case 'J':
		return J, true
	case 'L':
		return L, true
	case 'O':
		return O, true
	case 'S':
		return S, true
	case 'Z':
		return Z, true
	case 'T':
		return T, true
	default:
		return Empty, false
	}
}
