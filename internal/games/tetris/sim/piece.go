package sim

// Spawn coordinate of every new piece: horizontal center, top row.
const (
	SpawnX = 4
	SpawnY = 0
)

// SpawnPoint is the origin given to freshly spawned pieces.
var SpawnPoint = Point{X: SpawnX, Y: SpawnY}

// Piece is the active, falling piece.
type Piece struct {
	Kind     Cell
	Rotation Rotation
	Origin   Point
}

// Cells returns the four absolute cells the piece covers.
func (p Piece) Cells() [4]Point {
	return OccupiedCells(p.Kind, p.Rotation, p.Origin)
}

// Moved returns a copy of the piece translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.Origin = p.Origin.Add(Point{X: dx, Y: dy})
	return p
}

// Rotated returns a copy of the piece turned one step in dir.
func (p Piece) Rotated(dir Direction) Piece {
	p.Rotation = p.Rotation.Rotate(dir)
	return p
}

// Randomizer is the source of randomness for piece selection.
// *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// Spawner creates new active pieces with a uniformly random kind.
type Spawner struct {
	rng Randomizer
}

// NewSpawner returns a spawner drawing kinds from rng.
func NewSpawner(rng Randomizer) *Spawner {
	return &Spawner{rng: rng}
}

// Spawn returns a new piece at the spawn point with rotation 0.
// Kinds are drawn with replacement, so repeats are possible.
func (s *Spawner) Spawn() *Piece {
	return &Piece{
		Kind:     Kinds[s.rng.Intn(len(Kinds))],
		Rotation: Rot0,
		Origin:   SpawnPoint,
	}
}

// SequenceRandomizer replays a fixed list of indices, wrapping around.
// Useful for scripted games and tests.
type SequenceRandomizer struct {
	seq []int
	pos int
}

// NewSequenceRandomizer returns a randomizer yielding seq in order.
func NewSequenceRandomizer(seq ...int) *SequenceRandomizer {
	return &SequenceRandomizer{seq: seq}
}

// Intn returns the next value in the sequence modulo n.
func (r *SequenceRandomizer) Intn(n int) int {
	if len(r.seq) == 0 {
		return 0
	}
	v := r.seq[r.pos%len(r.seq)]
	r.pos++
	return ((v % n) + n) % n
}

// KindIndex returns the position of kind in Kinds, or -1 for Empty.
func KindIndex(kind Cell) int {
	for i, k := range Kinds {
		if k == kind {
			return i
		}
	}
	return -1
}
