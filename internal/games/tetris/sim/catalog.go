// Package sim implements the falling-block simulation core: the block
// catalog, the board, the active piece and the step-driven engine.
// It has no rendering, timing or input dependencies so the rules can be
// exercised deterministically from tests and from any host.
package sim

// Cell is the state of a single board cell. Every non-empty state names the
// kind of piece that left the block behind.
type Cell uint8

const (
	Empty Cell = iota
	I
	J
	L
	O
	S
	Z
	T
)

// Kinds lists the seven piece kinds in catalog order.
var Kinds = [7]Cell{I, J, L, O, S, Z, T}

// String returns the single-letter name of the cell state.
func (c Cell) String() string {
	switch c {
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case Z:
		return "Z"
	case T:
		return "T"
	case Empty:
		return "."
	default:
		return "?"
	}
}

// IsEmpty reports whether no block occupies the cell.
func (c Cell) IsEmpty() bool {
	return c == Empty
}

// Color returns the RGB display color for the cell state.
func (c Cell) Color() uint32 {
	switch c {
	case I:
		return 0x00ffff
	case J:
		return 0x0000ff
	case L:
		return 0xff7f00
	case O:
		return 0xffff00
	case S:
		return 0x00ff00
	case Z:
		return 0xff0000
	case T:
		return 0x800080
	default:
		return 0x2b2b2b
	}
}

// Point is a signed grid coordinate. Y grows downward; negative Y is the
// open space above the visible board.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Rotation is one of the four discrete orientations of a piece.
type Rotation uint8

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// Direction selects clockwise or counter-clockwise rotation.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Rotate returns the next rotation state in the given direction.
// Legality is not checked here; the engine validates before committing.
func (r Rotation) Rotate(dir Direction) Rotation {
	return Rotation((int(r) + int(dir) + 4) % 4)
}

// Degrees returns the rotation angle.
func (r Rotation) Degrees() int {
	return int(r%4) * 90
}

// Shape is the set of four offsets a piece occupies relative to its origin.
type Shape [4]Point

// baseShapes holds the 0° offsets for every kind.
var baseShapes = map[Cell]Shape{
	I: {{0, 0}, {0, 1}, {0, -1}, {0, -2}},
	J: {{0, 0}, {0, 1}, {0, -1}, {-1, -1}},
	L: {{0, 0}, {0, 1}, {0, -1}, {1, -1}},
	O: {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	T: {{0, 0}, {0, -1}, {-1, 0}, {1, 0}},
	S: {{0, 0}, {0, -1}, {1, -1}, {-1, 0}},
	Z: {{0, 0}, {0, -1}, {-1, -1}, {1, 0}},
}

// iShapes keeps the I piece rotating in place between a vertical and a
// horizontal bar. The generic matrix would shift it by a row at 180°.
var iShapes = [4]Shape{
	{{0, 0}, {0, 1}, {0, -1}, {0, -2}},
	{{0, 0}, {-1, 0}, {1, 0}, {2, 0}},
	{{0, 0}, {0, 1}, {0, -1}, {0, -2}},
	{{0, 0}, {-1, 0}, {1, 0}, {2, 0}},
}

// ShapeOf returns the offsets of kind at rotation r. Empty has no shape and
// yields the zero Shape.
func ShapeOf(kind Cell, r Rotation) Shape {
	r %= 4
	switch kind {
	case I:
		return iShapes[r]
	case O:
		return baseShapes[O]
	}

	base, ok := baseShapes[kind]
	if !ok {
		return Shape{}
	}

	var out Shape
	for i, p := range base {
		out[i] = rotatePoint(p, r)
	}
	return out
}

// rotatePoint applies the standard 2x2 rotation matrix for r.
func rotatePoint(p Point, r Rotation) Point {
	switch r {
	case Rot90:
		return Point{X: -p.Y, Y: p.X}
	case Rot180:
		return Point{X: -p.X, Y: -p.Y}
	case Rot270:
		return Point{X: p.Y, Y: -p.X}
	default:
		return p
	}
}

// OccupiedCells returns the absolute cells a piece of kind at rotation r
// covers when its origin sits at origin.
func OccupiedCells(kind Cell, r Rotation, origin Point) [4]Point {
	var cells [4]Point
	for i, off := range ShapeOf(kind, r) {
		cells[i] = origin.Add(off)
	}
	return cells
}
