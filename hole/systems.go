package hole

import (
	"log"
	"math"
	"slices"
	"time"

	"github.com/plus3/holeio/ecs"
)

func seconds(dt float64) time.Duration {
	return time.Duration(math.Round(dt * float64(time.Second)))
}

// ControlSystem applies the discrete commands of the input snapshot and
// updates the hole's target. Nothing else in the frame runs unless the
// session is Running afterwards.
type ControlSystem struct {
	Holes    ecs.Query[holeEntity]
	Controls ecs.Singleton[Controls]
	Session  ecs.Singleton[Session]
	Config   ecs.Singleton[Config]
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Controls.Get().Input
	session := s.Session.Get()

	if in.Reset {
		resetRound(frame.Storage)
		return
	}

	if in.TogglePause {
		if err := session.TogglePause(); err != nil {
			return
		}
		log.Printf("hole: round %d %s", session.Round, session.Status)
	}

	if session.Status != StatusRunning {
		return
	}

	hole, ok := s.Holes.First()
	if !ok {
		return
	}

	switch {
	case in.HasTarget:
		hole.Hole.Target = in.Target
	case in.Move != (Position{}):
		hole.Hole.Target = hole.Position.Add(in.Move.Scale(s.Config.Get().KeySpeed))
	}
}

// SteeringSystem moves the hole to its target, keeping it inside the arena
// and outside every wall.
type SteeringSystem struct {
	Holes   ecs.Query[holeEntity]
	Walls   ecs.Query[wallEntity]
	Arena   ecs.Singleton[Arena]
	Session ecs.Singleton[Session]
}

func (s *SteeringSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Session.Get().Status != StatusRunning {
		return
	}

	arena := *s.Arena.Get()
	walls := wallRects(&s.Walls)

	for hole := range s.Holes.Iter() {
		if p, ok := ResolveCircle(hole.Hole.Target, hole.Body.Radius, arena, walls); ok {
			*hole.Position = p
		}
	}
}

func wallRects(q *ecs.Query[wallEntity]) []Rect {
	var rects []Rect
	for w := range q.Iter() {
		rects = append(rects, w.Wall.Rect)
	}
	return rects
}

// CollisionSystem lets the hole swallow consumables and detects fatal contact.
// A hole that grew is settled against the arena and walls again.
type CollisionSystem struct {
	Holes       ecs.Query[holeEntity]
	Consumables ecs.Query[consumableEntity]
	Walls       ecs.Query[wallEntity]
	Arena       ecs.Singleton[Arena]
	Session     ecs.Singleton[Session]
	Config      ecs.Singleton[Config]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Status != StatusRunning {
		return
	}

	hole, ok := s.Holes.First()
	if !ok {
		return
	}

	cfg := s.Config.Get()
	items := slices.Collect(s.Consumables.Iter())
	eaten := make([]bool, len(items))
	radius := hole.Body.Radius
	defer func() {
		if hole.Body.Radius != radius {
			s.settle(hole)
		}
	}()

	for i, item := range items {
		switch Collide(*hole.Position, hole.Body.Radius, *item.Position, item.Body.Radius) {
		case ContactConsumed:
			eaten[i] = true
			frame.Commands.Delete(item.EntityId)
			session.Eaten++

			growth := Growth(cfg.Variant, item.Body.Radius, hole.Body.Radius, hole.Hole.MaxRadius)
			hole.Body.Radius = math.Min(hole.Body.Radius+growth, hole.Hole.MaxRadius)

			if cfg.FoodInflation {
				for j := range items {
					if !eaten[j] {
						items[j].Body.Radius += growth * cfg.InflationFactor
					}
				}
			}

		case ContactFatal:
			if err := session.transition(StatusLost); err == nil {
				session.Losses++
				log.Printf("hole: round %d lost after %s at radius %.1f", session.Round, session.Elapsed, hole.Body.Radius)
			}
			return
		}
	}
}

// settle keeps a grown hole inside the arena and clear of walls. When the
// hole has outgrown the gap it sits in, it stays put until steered out.
func (s *CollisionSystem) settle(hole holeEntity) {
	if p, ok := ResolveCircle(*hole.Position, hole.Body.Radius, *s.Arena.Get(), wallRects(&s.Walls)); ok {
		*hole.Position = p
	}
}

// DriftSystem moves the surviving consumables.
type DriftSystem struct {
	Holes       ecs.Query[holeEntity]
	Consumables ecs.Query[consumableEntity]
	Arena       ecs.Singleton[Arena]
	Session     ecs.Singleton[Session]
	Config      ecs.Singleton[Config]
	Entropy     ecs.Singleton[Entropy]
}

func (s *DriftSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Status != StatusRunning {
		return
	}

	hole, ok := s.Holes.First()
	if !ok {
		return
	}

	cfg := s.Config.Get()
	arena := *s.Arena.Get()

	for item := range s.Consumables.Iter() {
		var next Position
		if cfg.Variant == VariantAdvanced {
			flee := item.Body.Radius >= hole.Body.Radius
			next = Chase(*item.Position, *hole.Position, cfg.ChaseSpeed, flee)
		} else {
			next = item.Position.Add(s.jitter(cfg, item.Consumable, session.Tick))
		}
		*item.Position = ClampCircle(next, item.Body.Radius, arena)
	}
}

func (s *DriftSystem) jitter(cfg *Config, c *Consumable, tick uint64) Position {
	entropy := s.Entropy.Get()
	if cfg.JitterMode == JitterPerlin {
		t := float64(tick) * perlinStep
		return Position{
			X: clamp(2*entropy.Noise.Noise2D(c.Phase, t), -1, 1) * cfg.Jitter,
			Y: clamp(2*entropy.Noise.Noise2D(c.Phase+perlinOffset, t), -1, 1) * cfg.Jitter,
		}
	}
	return Position{
		X: (entropy.Rand.Float64()*2 - 1) * cfg.Jitter,
		Y: (entropy.Rand.Float64()*2 - 1) * cfg.Jitter,
	}
}

// OutcomeSystem advances the session clock and declares a win when the hole
// reaches its maximum size or the time limit runs out.
type OutcomeSystem struct {
	Holes   ecs.Query[holeEntity]
	Session ecs.Singleton[Session]
	Config  ecs.Singleton[Config]
}

func (s *OutcomeSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Status != StatusRunning {
		return
	}

	session.Tick++
	session.Elapsed += seconds(frame.DeltaTime)

	hole, ok := s.Holes.First()
	if !ok {
		return
	}

	full := hole.Body.Radius >= hole.Hole.MaxRadius
	if !full && session.Elapsed < s.Config.Get().TimeLimit {
		return
	}

	if err := session.transition(StatusWon); err == nil {
		session.Wins++
		log.Printf("hole: round %d won after %s at radius %.1f", session.Round, session.Elapsed, hole.Body.Radius)
	}
}

// ResetSystem starts a new round once a finished one has been on screen for
// the configured delay.
type ResetSystem struct {
	Session ecs.Singleton[Session]
	Config  ecs.Singleton[Config]
}

func (s *ResetSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if !session.Status.Terminal() {
		return
	}

	session.Terminal += seconds(frame.DeltaTime)
	if session.Terminal >= s.Config.Get().ResetDelay {
		frame.Commands.Defer(func() { resetRound(frame.Storage) })
	}
}

// resetRound restores the hole, respawns every consumable and starts the
// next round. Walls are left untouched.
func resetRound(storage *ecs.Storage) {
	var (
		cfg     *Config
		arena   *Arena
		session *Session
		entropy *Entropy
	)
	storage.ReadSingleton(&cfg)
	storage.ReadSingleton(&arena)
	storage.ReadSingleton(&session)
	storage.ReadSingleton(&entropy)

	for item := range ecs.NewQuery[consumableEntity](storage).Iter() {
		storage.Delete(item.EntityId)
	}

	center := arena.Center()
	start := circle{pos: center, radius: cfg.HoleRadius}
	for hole := range ecs.NewQuery[holeEntity](storage).Iter() {
		*hole.Position = center
		hole.Body.Radius = hole.Hole.InitialRadius
		hole.Hole.Target = center
		start.radius = hole.Hole.InitialRadius
	}

	placed := spawnConsumables(storage, cfg, entropy.Rand, start)

	session.Status = StatusRunning
	session.Elapsed = 0
	session.Terminal = 0
	session.Eaten = 0
	session.Round++
	log.Printf("hole: round %d started with %d consumables", session.Round, placed)
}
