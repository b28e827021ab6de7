package ecs_test

import (
	"testing"

	"github.com/plus3/holeio/ecs"
	"github.com/stretchr/testify/assert"
)

type testSpawnSystem struct {
	executed bool
}

func (s *testSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	s.executed = true
	frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	frame.Commands.Spawn(Position{X: 3, Y: 4})
}

type testDeleteSystem struct {
	Entities ecs.Query[struct {
		ecs.EntityId
		*Position
	}]
}

func (s *testDeleteSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Iter() {
		frame.Commands.Delete(item.EntityId)
	}
}

type testCountSystem struct {
	Entities ecs.Query[struct{ *Position }]
	Seen     []int
}

func (s *testCountSystem) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Entities.Count())
}

func TestCommandsFlush(t *testing.T) {
	storage := ecs.NewStorage()
	doomed := storage.Spawn(Position{})

	var order []string
	cmds := &ecs.Commands{}
	cmds.Defer(func() { order = append(order, "defer") })
	cmds.Spawn(Health{Current: 1})
	cmds.Delete(doomed)

	assert.Equal(t, 3, cmds.Pending())
	assert.Equal(t, 1, storage.Len())

	cmds.Flush(storage)

	assert.Zero(t, cmds.Pending())
	assert.False(t, storage.Alive(doomed))
	assert.Equal(t, 1, storage.Len())
	assert.Equal(t, []string{"defer"}, order)

	cmds.Flush(storage)
	assert.Equal(t, []string{"defer"}, order, "flushed commands do not replay")
}

func TestCommandsVisibleToNextSystem(t *testing.T) {
	storage := ecs.NewStorage()
	scheduler := ecs.NewScheduler(storage)

	spawner := &testSpawnSystem{}
	counter := &testCountSystem{}
	deleter := &testDeleteSystem{}
	after := &testCountSystem{}

	scheduler.Register(spawner)
	scheduler.Register(counter)
	scheduler.Register(deleter)
	scheduler.Register(after)

	scheduler.Once(1.0)

	assert.True(t, spawner.executed)
	assert.Equal(t, []int{2}, counter.Seen)
	assert.Equal(t, []int{0}, after.Seen)
	assert.Zero(t, storage.Len())
}
