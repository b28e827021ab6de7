package hole

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/plus3/holeio/ecs"
)

// Position is the centre of a circle, in arena units.
type Position struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Scale returns p multiplied by k.
func (p Position) Scale(k float64) Position {
	return Position{X: p.X * k, Y: p.Y * k}
}

// Body gives an entity its circular extent.
type Body struct {
	Radius float64
}

// Hole marks the player entity.
type Hole struct {
	InitialRadius float64
	MaxRadius     float64
	Target        Position
}

// Consumable marks an edible circle.
type Consumable struct {
	Color color.RGBA
	Phase float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Wall is a static obstacle the hole cannot enter.
type Wall struct {
	Rect
}

// Arena is the playing field. Its origin is the top-left corner.
type Arena struct {
	Width, Height float64
}

// Center returns the middle of the arena.
func (a Arena) Center() Position {
	return Position{X: a.Width / 2, Y: a.Height / 2}
}

// Session is the per-game state that is not attached to an entity.
type Session struct {
	Status   Status
	Elapsed  time.Duration // time spent Running in the current round
	Terminal time.Duration // time spent Won or Lost, drives the automatic reset
	Tick     uint64
	Round    int
	Eaten    int
	Wins     int
	Losses   int
}

// Controls holds the input snapshot of the frame being simulated.
type Controls struct {
	Input Input
}

// Entropy is the world's source of randomness.
type Entropy struct {
	Rand  *rand.Rand
	Noise *perlin.Perlin
}

func newEntropy(seed int64) Entropy {
	return Entropy{
		Rand:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		Noise: perlin.NewPerlin(2, 2, 3, seed),
	}
}

type holeEntity = struct {
	ecs.EntityId
	*Position
	*Body
	*Hole
}

type consumableEntity = struct {
	ecs.EntityId
	*Position
	*Body
	*Consumable
}

type wallEntity = struct {
	*Wall
}
