package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/sim"
)

var rotations = []sim.Rotation{sim.Rot0, sim.Rot90, sim.Rot180, sim.Rot270}

func TestOccupiedCellsAreFourDistinct(t *testing.T) {
	origins := []sim.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 7, Y: 15}, {X: -3, Y: -2}}

	for _, kind := range sim.Kinds {
		for _, rot := range rotations {
			for _, origin := range origins {
				cells := sim.OccupiedCells(kind, rot, origin)
				seen := make(map[sim.Point]bool, 4)
				for _, c := range cells {
					seen[c] = true
				}
				assert.Len(t, seen, 4, "kind %v rotation %d origin %v", kind, rot.Degrees(), origin)
			}
		}
	}
}

func TestOccupiedCellsIncludeOrigin(t *testing.T) {
	origin := sim.Point{X: 5, Y: 7}
	for _, kind := range sim.Kinds {
		for _, rot := range rotations {
			assert.Contains(t, sim.OccupiedCells(kind, rot, origin), origin, "kind %v rotation %d", kind, rot.Degrees())
		}
	}
}

func TestGenericRotationMatrix(t *testing.T) {
	tests := []struct {
		name string
		rot  sim.Rotation
		want sim.Shape
	}{
		{"0", sim.Rot0, sim.Shape{{0, 0}, {0, -1}, {-1, 0}, {1, 0}}},
		{"90", sim.Rot90, sim.Shape{{0, 0}, {1, 0}, {0, -1}, {0, 1}}},
		{"180", sim.Rot180, sim.Shape{{0, 0}, {0, 1}, {1, 0}, {-1, 0}}},
		{"270", sim.Rot270, sim.Shape{{0, 0}, {-1, 0}, {0, 1}, {0, -1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sim.ShapeOf(sim.T, tc.rot))
		})
	}
}

func TestORotationInvariant(t *testing.T) {
	base := sim.ShapeOf(sim.O, sim.Rot0)
	for _, rot := range rotations {
		assert.Equal(t, base, sim.ShapeOf(sim.O, rot))
	}
}

func TestIAlternatesInPlace(t *testing.T) {
	vertical := sim.ShapeOf(sim.I, sim.Rot0)
	horizontal := sim.ShapeOf(sim.I, sim.Rot90)

	assert.Equal(t, vertical, sim.ShapeOf(sim.I, sim.Rot180))
	assert.Equal(t, horizontal, sim.ShapeOf(sim.I, sim.Rot270))

	for _, p := range vertical {
		assert.Zero(t, p.X, "vertical I should stay in its column")
	}
	for _, p := range horizontal {
		assert.Zero(t, p.Y, "horizontal I should stay in its row")
	}
}

func TestEmptyHasNoShape(t *testing.T) {
	assert.Equal(t, sim.Shape{}, sim.ShapeOf(sim.Empty, sim.Rot0))
}

func TestRotationCycles(t *testing.T) {
	r := sim.Rot0
	for i := 1; i <= 4; i++ {
		r = r.Rotate(sim.Clockwise)
		assert.Equal(t, (i%4)*90, r.Degrees())
	}
	assert.Equal(t, sim.Rot270, sim.Rot0.Rotate(sim.CounterClockwise))
	assert.Equal(t, sim.Rot0, sim.Rot90.Rotate(sim.CounterClockwise))
}

func TestCellColors(t *testing.T) {
	want := map[sim.Cell]uint32{
		sim.I:     0x00ffff,
		sim.J:     0x0000ff,
		sim.L:     0xff7f00,
		sim.O:     0xffff00,
		sim.S:     0x00ff00,
		sim.Z:     0xff0000,
		sim.T:     0x800080,
		sim.Empty: 0x2b2b2b,
	}
	for c, color := range want {
		assert.Equal(t, color, c.Color(), "color of %v", c)
	}
}

func TestSpawnUsesInjectedRandomness(t *testing.T) {
	sp := sim.NewSpawner(sim.NewSequenceRandomizer(0, 3, 6, 3))

	var kinds []sim.Cell
	for range 4 {
		p := sp.Spawn()
		require.NotNil(t, p)
		assert.Equal(t, sim.SpawnPoint, p.Origin)
		assert.Equal(t, sim.Rot0, p.Rotation)
		kinds = append(kinds, p.Kind)
	}

	assert.Equal(t, []sim.Cell{sim.I, sim.O, sim.T, sim.O}, kinds)
}

func TestKindIndex(t *testing.T) {
	for i, k := range sim.Kinds {
		assert.Equal(t, i, sim.KindIndex(k))
	}
	assert.Equal(t, -1, sim.KindIndex(sim.Empty))
}
