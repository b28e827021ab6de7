package hole

import (
	"image/color"
	"time"

	"github.com/plus3/holeio/ecs"
)

// Game owns the world state and the two schedules that act on it: the
// simulation, advanced by Step, and rendering, run by Draw.
type Game struct {
	storage  *ecs.Storage
	sim      *ecs.Scheduler
	draw     *ecs.Scheduler
	render   *RenderSystem
	session  *ecs.Singleton[Session]
	controls *ecs.Singleton[Controls]
	config   *ecs.Singleton[Config]
}

// CircleState is a read-only view of a hole or consumable.
type CircleState struct {
	Position Position
	Radius   float64
	Color    color.RGBA
}

// Snapshot is a copy of the session state at one point in time.
type Snapshot struct {
	Status      Status
	Elapsed     time.Duration
	Tick        uint64
	Round       int
	Eaten       int
	Wins        int
	Losses      int
	Hole        CircleState
	MaxRadius   float64
	Consumables []CircleState
	Walls       []Rect
}

// NewGame validates cfg, builds the world and starts the first round.
func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	storage := ecs.NewStorage()
	arena := Arena{Width: cfg.Width, Height: cfg.Height}

	g := &Game{
		storage:  storage,
		config:   ecs.NewSingleton[Config](storage, cfg),
		session:  ecs.NewSingleton[Session](storage),
		controls: ecs.NewSingleton[Controls](storage),
	}
	ecs.NewSingleton[Arena](storage, arena)
	ecs.NewSingleton[Entropy](storage, newEntropy(cfg.Seed))

	for _, w := range cfg.Walls {
		storage.Spawn(Wall{Rect: w})
	}

	center := arena.Center()
	storage.Spawn(
		center,
		Body{Radius: cfg.HoleRadius},
		Hole{InitialRadius: cfg.HoleRadius, MaxRadius: cfg.MaxHoleSize, Target: center},
	)

	resetRound(storage)

	g.sim = ecs.NewScheduler(storage)
	g.sim.Register(&ResetSystem{})
	g.sim.Register(&ControlSystem{})
	g.sim.Register(&SteeringSystem{})
	g.sim.Register(&CollisionSystem{})
	g.sim.Register(&DriftSystem{})
	g.sim.Register(&OutcomeSystem{})

	g.render = &RenderSystem{}
	g.draw = ecs.NewScheduler(storage)
	g.draw.Register(g.render)

	return g, nil
}

// Step advances the simulation by one frame of length dt using the given
// input snapshot.
func (g *Game) Step(in Input, dt time.Duration) {
	controls := g.controls.Get()
	controls.Input = in
	g.sim.Once(dt.Seconds())
	controls.Input = Input{}
}

// Draw paints the current state through r.
func (g *Game) Draw(r Renderer) {
	g.render.Renderer = r
	g.draw.Once(0)
	g.render.Renderer = nil
}

// Status returns the current round status.
func (g *Game) Status() Status {
	return g.session.Get().Status
}

// TogglePause pauses a running round or resumes a paused one.
func (g *Game) TogglePause() error {
	return g.session.Get().TogglePause()
}

// Reset abandons the current round and starts a new one.
func (g *Game) Reset() {
	resetRound(g.storage)
}

// Config returns the settings the game was built with.
func (g *Game) Config() Config {
	return *g.config.Get()
}

// Storage exposes the world for tooling such as the debug overlay.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Stats returns per-system timings of the simulation schedule.
func (g *Game) Stats() *ecs.SchedulerStats {
	return g.sim.GetStats()
}

// SpawnConsumable adds a consumable outside the regular spawn cycle.
func (g *Game) SpawnConsumable(pos Position, radius float64, c color.RGBA) ecs.EntityId {
	var entropy *Entropy
	g.storage.ReadSingleton(&entropy)
	return g.storage.Spawn(pos, Body{Radius: radius}, Consumable{Color: c, Phase: entropy.Rand.Float64() * 1000})
}

// SpawnRandomConsumable adds one consumable drawn from the world's random
// source, so seeded sessions stay reproducible.
func (g *Game) SpawnRandomConsumable() ecs.EntityId {
	var entropy *Entropy
	g.storage.ReadSingleton(&entropy)
	pos, body, item := randomConsumable(g.config.Get(), entropy.Rand)
	return g.storage.Spawn(pos, body, item)
}

// Snapshot copies the current session state.
func (g *Game) Snapshot() Snapshot {
	session := g.session.Get()
	snap := Snapshot{
		Status:  session.Status,
		Elapsed: session.Elapsed,
		Tick:    session.Tick,
		Round:   session.Round,
		Eaten:   session.Eaten,
		Wins:    session.Wins,
		Losses:  session.Losses,
	}

	if hole, ok := ecs.NewQuery[holeEntity](g.storage).First(); ok {
		snap.Hole = CircleState{Position: *hole.Position, Radius: hole.Body.Radius, Color: holeColor}
		snap.MaxRadius = hole.Hole.MaxRadius
	}

	for item := range ecs.NewQuery[consumableEntity](g.storage).Iter() {
		snap.Consumables = append(snap.Consumables, CircleState{
			Position: *item.Position,
			Radius:   item.Body.Radius,
			Color:    item.Consumable.Color,
		})
	}

	for w := range ecs.NewQuery[wallEntity](g.storage).Iter() {
		snap.Walls = append(snap.Walls, w.Wall.Rect)
	}
	return snap
}
