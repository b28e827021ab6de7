package ecs_test

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/plus3/holeio/ecs"
)

type Point struct {
	X, Y float64
}

type Size struct {
	R float64
}

type Glide struct {
	DX, DY float64
}

// Sink marks a circle that swallows smaller ones.
type Sink struct{}

type Tally struct {
	Left int
}

type GlideSystem struct {
	Movers ecs.Query[struct {
		*Point
		*Glide
	}]
}

func (s *GlideSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Movers.Iter() {
		m.Point.X += m.Glide.DX * frame.DeltaTime
		m.Point.Y += m.Glide.DY * frame.DeltaTime
	}
}

type SwallowSystem struct {
	Sinks ecs.Query[struct {
		ecs.EntityId
		*Point
		*Size
		*Sink
	}]
	Circles ecs.Query[struct {
		ecs.EntityId
		*Point
		*Size
	}]
}

func (s *SwallowSystem) Execute(frame *ecs.UpdateFrame) {
	for sink := range s.Sinks.Iter() {
		for c := range s.Circles.Iter() {
			if c.EntityId == sink.EntityId || c.Size.R >= sink.Size.R {
				continue
			}
			if math.Hypot(c.Point.X-sink.Point.X, c.Point.Y-sink.Point.Y) < sink.Size.R {
				sink.Size.R += c.Size.R / 2
				frame.Commands.Delete(c.EntityId)
			}
		}
	}
}

type TallySystem struct {
	Movers ecs.Query[struct{ *Glide }]
	Tally  ecs.Singleton[Tally]
}

func (s *TallySystem) Execute(frame *ecs.UpdateFrame) {
	s.Tally.Get().Left = s.Movers.Count()
}

// ExampleScheduler builds a small swallow loop. Systems run in registration
// order, and deletions queued by one system are applied before the next one
// runs, so the tally never counts a swallowed circle.
func ExampleScheduler() {
	storage := ecs.NewStorage()
	ecs.NewSingleton[Tally](storage)

	storage.Spawn(Point{}, Size{R: 20}, Sink{})
	storage.Spawn(Point{X: 30}, Size{R: 5}, Glide{DX: -15})
	storage.Spawn(Point{X: 100}, Size{R: 5}, Glide{DY: 10})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&GlideSystem{})
	scheduler.Register(&SwallowSystem{})
	scheduler.Register(&TallySystem{})

	scheduler.Once(1.0)

	var tally *Tally
	storage.ReadSingleton(&tally)
	sink, _ := ecs.NewQuery[struct {
		*Size
		*Sink
	}](storage).First()

	fmt.Printf("Sink radius: %.1f\n", sink.Size.R)
	fmt.Printf("Circles left: %d\n", tally.Left)
	for c := range ecs.NewQuery[struct {
		*Point
		*Glide
	}](storage).Iter() {
		fmt.Printf("At (%.0f, %.0f)\n", c.Point.X, c.Point.Y)
	}

	// Output:
	// Sink radius: 22.5
	// Circles left: 1
	// At (100, 10)
}

// ExampleScheduler_Run demonstrates running a continuous loop until the
// context is cancelled.
func ExampleScheduler_Run() {
	storage := ecs.NewStorage()
	storage.Spawn(Point{}, Glide{DX: 1, DY: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&GlideSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}

type RoundClock struct {
	Ticks   int
	Elapsed float64
	Limit   float64
}

func (c RoundClock) Expired() bool {
	return c.Elapsed >= c.Limit
}

type ClockSystem struct {
	Clock ecs.Singleton[RoundClock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	if clock.Expired() {
		return
	}
	clock.Ticks++
	clock.Elapsed += frame.DeltaTime
}

// ExampleScheduler_withSingletons shows singleton fields being bound by the
// scheduler, just like query fields.
func ExampleScheduler_withSingletons() {
	storage := ecs.NewStorage()
	ecs.NewSingleton(storage, RoundClock{Limit: 0.04})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ClockSystem{})

	for range 5 {
		scheduler.Once(0.016)
	}

	var clock *RoundClock
	storage.ReadSingleton(&clock)
	fmt.Printf("Ticks: %d, Elapsed: %.3f, Expired: %v\n", clock.Ticks, clock.Elapsed, clock.Expired())

	// Output:
	// Ticks: 3, Elapsed: 0.048, Expired: true
}
