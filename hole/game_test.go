package hole

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/holeio/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

var testColor = color.RGBA{200, 80, 80, 255}

func newTestGame(t *testing.T, variant Variant, mutate func(*Config)) *Game {
	t.Helper()

	cfg := DefaultConfig(variant)
	cfg.Width, cfg.Height = 800, 600
	cfg.Consumables = 0
	cfg.Walls = nil
	cfg.Seed = 42
	if mutate != nil {
		mutate(&cfg)
	}

	g, err := NewGame(cfg)
	require.NoError(t, err)
	return g
}

func testHole(t *testing.T, g *Game) holeEntity {
	t.Helper()
	hole, ok := ecs.NewQuery[holeEntity](g.Storage()).First()
	require.True(t, ok)
	return hole
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, VariantAdvanced, func(c *Config) {
		c.Consumables = 25
		c.Walls = []Rect{{X: 50, Y: 50, W: 20, H: 100}}
	})

	snap := g.Snapshot()
	assert.Equal(t, StatusRunning, snap.Status)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, Position{X: 400, Y: 300}, snap.Hole.Position)
	assert.Equal(t, 20.0, snap.Hole.Radius)
	assert.Equal(t, 300.0, snap.MaxRadius)
	assert.Len(t, snap.Consumables, 25)
	assert.Equal(t, []Rect{{X: 50, Y: 50, W: 20, H: 100}}, snap.Walls)
	assert.Zero(t, snap.Elapsed)
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig(VariantBasic)
	cfg.HoleRadius = 0

	_, err := NewGame(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSpawnedRadiiWithinRange(t *testing.T) {
	for _, variant := range []Variant{VariantBasic, VariantAdvanced} {
		t.Run(variant.String(), func(t *testing.T) {
			g := newTestGame(t, variant, func(c *Config) { c.Consumables = 40 })

			for _, c := range g.Snapshot().Consumables {
				assert.GreaterOrEqual(t, c.Radius, DefaultMinRadius)
				assert.Less(t, c.Radius, DefaultMaxRadius)
				assert.GreaterOrEqual(t, c.Position.X, c.Radius)
				assert.LessOrEqual(t, c.Position.X, 800-c.Radius)
				assert.GreaterOrEqual(t, c.Position.Y, c.Radius)
				assert.LessOrEqual(t, c.Position.Y, 600-c.Radius)
				assert.Equal(t, uint8(255), c.Color.A)
			}
		})
	}
}

func TestAdvancedSpawnDoesNotOverlap(t *testing.T) {
	walls := []Rect{{X: 100, Y: 100, W: 40, H: 200}, {X: 600, Y: 400, W: 150, H: 30}}
	g := newTestGame(t, VariantAdvanced, func(c *Config) {
		c.Consumables = 40
		c.Walls = walls
	})

	snap := g.Snapshot()
	require.Len(t, snap.Consumables, 40)

	for i, a := range snap.Consumables {
		assert.Greater(t, Distance(a.Position, snap.Hole.Position), a.Radius+snap.Hole.Radius)
		for _, w := range walls {
			assert.False(t, CircleOverlapsRect(a.Position, a.Radius, w))
		}
		for _, b := range snap.Consumables[i+1:] {
			assert.Greater(t, Distance(a.Position, b.Position), a.Radius+b.Radius)
		}
	}
}

func TestAdvancedSpawnGivesUpWhenCrowded(t *testing.T) {
	g := newTestGame(t, VariantAdvanced, func(c *Config) {
		c.Width, c.Height = 120, 120
		c.HoleRadius = 10
		c.MaxHoleSize = 60
		c.Consumables = 100
		c.SpawnAttempts = 20
	})

	n := len(g.Snapshot().Consumables)
	assert.Greater(t, n, 0)
	assert.Less(t, n, 100)
}

func TestSameSeedSameWorld(t *testing.T) {
	mutate := func(c *Config) { c.Consumables = 30 }
	a := newTestGame(t, VariantAdvanced, mutate)
	b := newTestGame(t, VariantAdvanced, mutate)

	for range 50 {
		a.Step(PointAt(100, 100), frame)
		b.Step(PointAt(100, 100), frame)
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestConsumption(t *testing.T) {
	g := newTestGame(t, VariantBasic, nil)
	g.SpawnConsumable(Position{X: 105, Y: 100}, 5, testColor)

	g.Step(PointAt(100, 100), frame)

	snap := g.Snapshot()
	assert.Equal(t, StatusRunning, snap.Status)
	assert.Equal(t, Position{X: 100, Y: 100}, snap.Hole.Position)
	assert.InDelta(t, 20.5, snap.Hole.Radius, 1e-9)
	assert.Empty(t, snap.Consumables)
	assert.Equal(t, 1, snap.Eaten)
}

func TestDestruction(t *testing.T) {
	g := newTestGame(t, VariantBasic, func(c *Config) { c.HoleRadius = 10 })
	g.SpawnConsumable(Position{X: 105, Y: 100}, 20, testColor)

	g.Step(PointAt(100, 100), frame)

	snap := g.Snapshot()
	assert.Equal(t, StatusLost, snap.Status)
	assert.Equal(t, 1, snap.Losses)
	assert.Len(t, snap.Consumables, 1)
	assert.Equal(t, 10.0, snap.Hole.Radius)
}

func TestWinBySize(t *testing.T) {
	g := newTestGame(t, VariantBasic, nil)
	testHole(t, g).Body.Radius = 300

	g.Step(Input{}, frame)

	snap := g.Snapshot()
	assert.Equal(t, StatusWon, snap.Status)
	assert.Equal(t, 1, snap.Wins)
}

func TestGrowthIsCapped(t *testing.T) {
	g := newTestGame(t, VariantBasic, nil)
	testHole(t, g).Body.Radius = 299.8
	g.SpawnConsumable(Position{X: 400, Y: 300}, 10, testColor)

	g.Step(Input{}, frame)

	snap := g.Snapshot()
	assert.Equal(t, 300.0, snap.Hole.Radius)
	assert.Equal(t, StatusWon, snap.Status)
}

func TestWinByTimeout(t *testing.T) {
	g := newTestGame(t, VariantBasic, nil)

	g.Step(Input{}, 119*time.Second)
	assert.Equal(t, StatusRunning, g.Status())

	g.Step(Input{}, time.Second)
	snap := g.Snapshot()
	assert.Equal(t, StatusWon, snap.Status)
	assert.Equal(t, 120*time.Second, snap.Elapsed)
	assert.Equal(t, uint64(2), snap.Tick)
}

// The advanced variant keeps spawns clear of the hole's starting circle, so
// a fresh round cannot end on its first frame.
func TestAutomaticReset(t *testing.T) {
	g := newTestGame(t, VariantAdvanced, func(c *Config) { c.Consumables = 10 })
	g.Step(Input{}, 120*time.Second)
	require.Equal(t, StatusWon, g.Status())

	g.Step(Input{}, 2*time.Second)
	assert.Equal(t, StatusWon, g.Status(), "reset before the delay elapsed")

	g.Step(Input{}, time.Second)
	snap := g.Snapshot()
	assert.Equal(t, StatusRunning, snap.Status)
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, 1, snap.Wins)
	assert.Equal(t, 20.0, snap.Hole.Radius)
	assert.Equal(t, Position{X: 400, Y: 300}, snap.Hole.Position)
	assert.Len(t, snap.Consumables, 10)
	assert.Zero(t, snap.Eaten)
	assert.Equal(t, time.Second, snap.Elapsed)
}

func TestManualReset(t *testing.T) {
	g := newTestGame(t, VariantAdvanced, func(c *Config) { c.Consumables = 10 })
	g.Step(PointAt(100, 100), 10*time.Second)

	g.Step(Input{Reset: true}, frame)

	snap := g.Snapshot()
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, StatusRunning, snap.Status)
	assert.Equal(t, frame, snap.Elapsed)
	assert.Equal(t, Position{X: 400, Y: 300}, snap.Hole.Position)
	assert.Len(t, snap.Consumables, 10)

	g.Reset()
	assert.Equal(t, 3, g.Snapshot().Round)
	assert.Zero(t, g.Snapshot().Elapsed)
}

func TestPausedStepChangesNothing(t *testing.T) {
	g := newTestGame(t, VariantAdvanced, func(c *Config) { c.Consumables = 20 })

	g.Step(Input{TogglePause: true}, frame)
	require.Equal(t, StatusPaused, g.Status())
	before := g.Snapshot()

	for range 10 {
		g.Step(PointAt(700, 500), time.Second)
		g.Step(Input{Move: Position{X: 1}}, time.Second)
	}
	assert.Equal(t, before, g.Snapshot())

	g.Step(Input{TogglePause: true}, frame)
	assert.Equal(t, StatusRunning, g.Status())
}

func TestTogglePauseAfterRoundEnds(t *testing.T) {
	g := newTestGame(t, VariantBasic, nil)
	g.Step(Input{}, 120*time.Second)
	require.Equal(t, StatusWon, g.Status())

	assert.ErrorIs(t, g.TogglePause(), ErrIllegalTransition)

	g.Step(Input{TogglePause: true}, 0)
	assert.Equal(t, StatusWon, g.Status())
}

func TestKeyboardSteering(t *testing.T) {
	g := newTestGame(t, VariantBasic, nil)

	g.Step(Input{Move: Position{X: 1, Y: -1}}, frame)
	assert.Equal(t, Position{X: 405, Y: 295}, g.Snapshot().Hole.Position)

	// The target persists until new input arrives.
	g.Step(Input{}, frame)
	assert.Equal(t, Position{X: 405, Y: 295}, g.Snapshot().Hole.Position)
}

func TestHoleStaysInArena(t *testing.T) {
	g := newTestGame(t, VariantBasic, nil)

	g.Step(PointAt(-100, 5000), frame)
	assert.Equal(t, Position{X: 20, Y: 580}, g.Snapshot().Hole.Position)
}

func TestHoleDoesNotEnterWalls(t *testing.T) {
	wall := Rect{X: 200, Y: 0, W: 50, H: 600}
	g := newTestGame(t, VariantAdvanced, func(c *Config) { c.Walls = []Rect{wall} })

	g.Step(PointAt(210, 300), frame)
	assert.Equal(t, Position{X: 180, Y: 300}, g.Snapshot().Hole.Position)

	g.Step(PointAt(240, 300), frame)
	pos := g.Snapshot().Hole.Position
	assert.Equal(t, Position{X: 270, Y: 300}, pos)
	assert.False(t, CircleOverlapsRect(pos, 20, wall))
}

func TestGrowingAgainstWallPushesHoleOut(t *testing.T) {
	wall := Rect{X: 200, Y: 0, W: 50, H: 600}
	g := newTestGame(t, VariantAdvanced, func(c *Config) { c.Walls = []Rect{wall} })
	g.SpawnConsumable(Position{X: 178, Y: 300}, 10, testColor)

	g.Step(PointAt(210, 300), frame)

	snap := g.Snapshot()
	require.Equal(t, 1, snap.Eaten)
	assert.InDelta(t, 22.8, snap.Hole.Radius, 1e-9)
	assert.InDelta(t, 177.2, snap.Hole.Position.X, 1e-9)
	assert.False(t, CircleOverlapsRect(snap.Hole.Position, snap.Hole.Radius, wall))
}

func TestHoleKeepsPositionWhenGapTooNarrow(t *testing.T) {
	walls := []Rect{{X: 200, Y: 0, W: 50, H: 600}, {X: 270, Y: 0, W: 50, H: 600}}
	g := newTestGame(t, VariantAdvanced, func(c *Config) { c.Walls = walls })

	g.Step(PointAt(260, 300), frame)

	pos := g.Snapshot().Hole.Position
	assert.Equal(t, Position{X: 400, Y: 300}, pos)
	for _, w := range walls {
		assert.False(t, CircleOverlapsRect(pos, 20, w))
	}

	// A reachable target still moves the hole.
	g.Step(PointAt(500, 300), frame)
	assert.Equal(t, Position{X: 500, Y: 300}, g.Snapshot().Hole.Position)
}

func TestSpawnRandomConsumable(t *testing.T) {
	a := newTestGame(t, VariantBasic, nil)
	b := newTestGame(t, VariantBasic, nil)

	a.SpawnRandomConsumable()
	b.SpawnRandomConsumable()

	snap := a.Snapshot()
	require.Len(t, snap.Consumables, 1)
	c := snap.Consumables[0]
	assert.GreaterOrEqual(t, c.Radius, DefaultMinRadius)
	assert.Less(t, c.Radius, DefaultMaxRadius)
	assert.GreaterOrEqual(t, c.Position.X, c.Radius)
	assert.LessOrEqual(t, c.Position.X, 800-c.Radius)
	assert.Equal(t, snap.Consumables, b.Snapshot().Consumables, "same seed, same spawn")
}

func TestChaseAndFlee(t *testing.T) {
	g := newTestGame(t, VariantAdvanced, nil)
	g.SpawnConsumable(Position{X: 700, Y: 300}, 10, testColor)
	g.SpawnConsumable(Position{X: 100, Y: 300}, 25, testColor)

	g.Step(Input{}, frame)

	snap := g.Snapshot()
	require.Len(t, snap.Consumables, 2)
	assert.InDelta(t, 698.5, snap.Consumables[0].Position.X, 1e-9, "smaller consumables approach")
	assert.InDelta(t, 98.5, snap.Consumables[1].Position.X, 1e-9, "larger consumables flee")
	assert.InDelta(t, 300, snap.Consumables[1].Position.Y, 1e-9)
}

func TestFoodInflation(t *testing.T) {
	tests := []struct {
		name      string
		inflation bool
		want      float64
	}{
		{"enabled", true, 10 + 3*(1-20.0/300)*DefaultInflation},
		{"disabled", false, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, VariantAdvanced, func(c *Config) { c.FoodInflation = tt.inflation })
			g.SpawnConsumable(Position{X: 105, Y: 100}, 5, testColor)
			g.SpawnConsumable(Position{X: 700, Y: 500}, 10, testColor)

			g.Step(PointAt(100, 100), frame)

			snap := g.Snapshot()
			require.Len(t, snap.Consumables, 1)
			assert.InDelta(t, 20+3*(1-20.0/300), snap.Hole.Radius, 1e-9)
			assert.InDelta(t, tt.want, snap.Consumables[0].Radius, 1e-9)
		})
	}
}

func TestJitterIsBounded(t *testing.T) {
	for _, mode := range []JitterMode{JitterUniform, JitterPerlin} {
		t.Run(string(mode), func(t *testing.T) {
			g := newTestGame(t, VariantBasic, func(c *Config) { c.JitterMode = mode })
			for i := range 10 {
				g.SpawnConsumable(Position{X: 100 + 60*float64(i), Y: 100}, 10, testColor)
			}

			for range 20 {
				before := g.Snapshot().Consumables
				g.Step(Input{}, frame)
				after := g.Snapshot().Consumables
				require.Len(t, after, len(before))

				for i := range before {
					assert.LessOrEqual(t, math.Abs(after[i].Position.X-before[i].Position.X), DefaultJitter+1e-9)
					assert.LessOrEqual(t, math.Abs(after[i].Position.Y-before[i].Position.Y), DefaultJitter+1e-9)
				}
			}
		})
	}
}

func TestHoleRadiusStaysInBounds(t *testing.T) {
	for _, variant := range []Variant{VariantBasic, VariantAdvanced} {
		t.Run(variant.String(), func(t *testing.T) {
			g := newTestGame(t, variant, func(c *Config) {
				c.Consumables = 60
				c.Walls = DefaultWalls()[:1]
			})
			rng := rand.New(rand.NewPCG(1, 2))

			for range 2000 {
				g.Step(PointAt(rng.Float64()*800, rng.Float64()*600), frame)

				snap := g.Snapshot()
				assert.GreaterOrEqual(t, snap.Hole.Radius, 20.0)
				assert.LessOrEqual(t, snap.Hole.Radius, snap.MaxRadius)
				if snap.Status == StatusRunning {
					assert.Less(t, snap.Elapsed, 120*time.Second)
				}
			}
		})
	}
}

func TestSchedulerStatsCoverSimulation(t *testing.T) {
	g := newTestGame(t, VariantBasic, nil)
	g.Step(Input{}, frame)

	stats := g.Stats()
	require.Equal(t, 6, stats.SystemCount)
	assert.Equal(t, "ResetSystem", stats.Systems[0].Name)
	assert.Equal(t, "OutcomeSystem", stats.Systems[5].Name)
	assert.Equal(t, int64(6), stats.TotalExecutions)
}
