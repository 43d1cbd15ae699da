package sim

import "time"

// State is the engine's lifecycle state.
type State int

const (
	Falling  State = iota // an active piece is being stepped
	Locking               // transient: the piece could not advance and is being committed
	GameOver              // terminal: no further board mutation
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Falling:
		return "falling"
	case Locking:
		return "locking"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Input is the set of edge-triggered events delivered for one step.
type Input uint8

const (
	MoveLeft Input = 1 << iota
	MoveRight
	HardDrop
	RotateCW
	RotateCCW
)

// NoInput is the empty event set.
const NoInput Input = 0

// Has reports whether every event in e is present.
func (in Input) Has(e Input) bool {
	return in&e == e && e != 0
}

// StepResult reports what happened during a single step.
type StepResult struct {
	Ticks    int   // gravity ticks applied
	Locks    int   // pieces locked
	Cleared  []int // rows cleared, top to bottom per lock, pre-clear coordinates
	State    State
	GameOver bool
}

// Engine is the simulation state machine. It owns the board and the active
// piece exclusively; callers observe them through copies.
type Engine struct {
	board   *Board
	piece   *Piece
	spawner *Spawner
	clock   *Clock
	state   State

	steps     uint64
	played    time.Duration
	lines     int
	pieces    int
	toppedOut bool
}

// NewEngine returns an engine on an empty board with a freshly spawned piece.
func NewEngine(rng Randomizer) *Engine {
	return NewEngineWithBoard(NewBoard(), rng)
}

// NewEngineWithBoard returns an engine that plays on board. The board is
// owned by the engine from here on.
func NewEngineWithBoard(board *Board, rng Randomizer) *Engine {
	e := &Engine{
		board:   board,
		spawner: NewSpawner(rng),
		clock:   NewClock(GravityInterval),
		state:   Falling,
	}
	e.spawn()
	return e
}

// ValidPosition reports whether a piece covering cells may sit on b.
// Columns outside the board and rows at or below the floor are rejected,
// rows above the board are open space, and settled blocks collide.
func ValidPosition(b *Board, cells [4]Point) bool {
	for _, c := range cells {
		if c.X < 0 || c.X >= Width {
			return false
		}
		if c.Y >= Height {
			return false
		}
		if c.Y < 0 {
			continue
		}
		if !b.Get(c.X, c.Y).IsEmpty() {
			return false
		}
	}
	return true
}

// Step advances the simulation by elapsed and applies this step's input.
// Order: gravity, horizontal move, rotation, hard drop. When both horizontal
// events are set MoveRight wins. After game over Step does nothing.
func (e *Engine) Step(elapsed time.Duration, in Input) StepResult {
	var res StepResult
	if e.state == GameOver {
		return e.finish(res)
	}

	e.steps++
	if elapsed > 0 {
		e.played += elapsed
	}

	for range e.clock.Advance(elapsed) {
		res.Ticks++
		if e.tryMove(0, 1) {
			continue
		}
		e.lock(&res)
		// Ticks left over from a long frame do not carry to the next piece.
		e.clock.Reset()
		break
	}
	if e.state == GameOver {
		return e.finish(res)
	}

	switch {
	case in.Has(MoveRight):
		e.tryMove(1, 0)
	case in.Has(MoveLeft):
		e.tryMove(-1, 0)
	}

	switch {
	case in.Has(RotateCW):
		e.tryRotate(Clockwise)
	case in.Has(RotateCCW):
		e.tryRotate(CounterClockwise)
	}

	if in.Has(HardDrop) {
		e.hardDrop(&res)
	}

	return e.finish(res)
}

func (e *Engine) finish(res StepResult) StepResult {
	res.State = e.state
	res.GameOver = e.state == GameOver
	return res
}

// tryMove shifts the active piece when the destination is valid and
// reports whether it moved. An invalid move leaves the piece where it was.
func (e *Engine) tryMove(dx, dy int) bool {
	next := e.piece.Moved(dx, dy)
	if !ValidPosition(e.board, next.Cells()) {
		return false
	}
	*e.piece = next
	return true
}

// tryRotate turns the active piece in place when the result is valid.
func (e *Engine) tryRotate(dir Direction) bool {
	next := e.piece.Rotated(dir)
	if !ValidPosition(e.board, next.Cells()) {
		return false
	}
	*e.piece = next
	return true
}

// hardDrop moves the piece to the lowest valid row and locks it at once.
func (e *Engine) hardDrop(res *StepResult) {
	for e.tryMove(0, 1) {
	}
	e.lock(res)
	e.clock.Reset()
}

// DropDistance returns how many rows the active piece can still fall.
func (e *Engine) DropDistance() int {
	if e.state == GameOver {
		return 0
	}
	n := 0
	for ValidPosition(e.board, e.piece.Moved(0, n+1).Cells()) {
		n++
	}
	return n
}

// lock commits the active piece, clears full rows, checks the cutoff and
// spawns the next piece.
func (e *Engine) lock(res *StepResult) {
	e.state = Locking

	for _, c := range e.piece.Cells() {
		if c.Y < 0 {
			// Part of the piece never entered the board.
			e.toppedOut = true
			continue
		}
		e.board.place(c.X, c.Y, e.piece.Kind)
	}
	e.pieces++
	res.Locks++

	cleared := e.board.ClearFullRows()
	e.lines += len(cleared)
	res.Cleared = append(res.Cleared, cleared...)

	if e.toppedOut || e.board.IsCutoffBreached() {
		e.state = GameOver
		return
	}

	e.spawn()
}

// spawn replaces the active piece. A spawn that already collides ends the game.
func (e *Engine) spawn() {
	e.piece = e.spawner.Spawn()
	if !ValidPosition(e.board, e.piece.Cells()) {
		e.state = GameOver
		return
	}
	e.state = Falling
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// IsGameOver reports whether the terminal state has been reached.
func (e *Engine) IsGameOver() bool {
	return e.state == GameOver
}

// Board returns a copy of the settled blocks.
func (e *Engine) Board() Grid {
	return e.board.Cells()
}

// View returns the settled blocks with the active piece drawn over them.
// After game over only the settled blocks are shown.
func (e *Engine) View() Grid {
	g := e.board.Cells()
	if e.state == GameOver {
		return g
	}
	for _, c := range e.piece.Cells() {
		if e.board.InBounds(c.X, c.Y) {
			g[c.Y][c.X] = e.piece.Kind
		}
	}
	return g
}

// Piece returns a copy of the active piece and whether one is in play.
func (e *Engine) Piece() (Piece, bool) {
	if e.state == GameOver {
		return Piece{}, false
	}
	return *e.piece, true
}

// Lines returns the number of rows cleared so far.
func (e *Engine) Lines() int {
	return e.lines
}

// Pieces returns the number of pieces locked so far.
func (e *Engine) Pieces() int {
	return e.pieces
}

// Played returns the total simulated time fed to the engine.
func (e *Engine) Played() time.Duration {
	return e.played
}

// Snapshot captures the engine state for determinism checks and debugging.
type Snapshot struct {
	Steps  uint64
	State  State
	Board  Grid
	Piece  Piece
	Lines  int
	Pieces int
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	p, _ := e.Piece()
	return Snapshot{
		Steps:  e.steps,
		State:  e.state,
		Board:  e.board.Cells(),
		Piece:  p,
		Lines:  e.lines,
		Pieces: e.pieces,
	}
}
