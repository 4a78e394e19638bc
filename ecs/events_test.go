package ecs_test

import (
	"testing"

	"github.com/plus3/gallery/ecs"
	"github.com/stretchr/testify/assert"
)

type ping struct{ n int }
type pong struct{ n int }

func TestEventsDispatchInOrder(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	var got []int
	ecs.On(scheduler.Events(), func(frame *ecs.UpdateFrame, ev ping) {
		got = append(got, ev.n)
	})
	ecs.On(scheduler.Events(), func(frame *ecs.UpdateFrame, ev ping) {
		got = append(got, -ev.n)
	})

	scheduler.Signal(ping{1})
	scheduler.Signal(ping{2})
	assert.Equal(t, 2, scheduler.Events().Pending())

	scheduler.Drain()

	assert.Equal(t, []int{1, -1, 2, -2}, got)
	assert.Equal(t, int64(2), scheduler.Events().Dispatched())
}

func TestEventsChainWithinOneDrain(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	var pongs []int
	ecs.On(scheduler.Events(), func(frame *ecs.UpdateFrame, ev ping) {
		frame.Commands.Signal(pong{ev.n * 10})
	})
	ecs.On(scheduler.Events(), func(frame *ecs.UpdateFrame, ev pong) {
		pongs = append(pongs, ev.n)
	})

	scheduler.Signal(ping{4})
	scheduler.Drain()

	assert.Equal(t, []int{40}, pongs)
	assert.Equal(t, 0, scheduler.Events().Pending())
}

func TestEventsWithoutHandlerAreDropped(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	scheduler.Signal(pong{1})
	scheduler.Signal(nil)
	scheduler.Drain()

	assert.Equal(t, int64(1), scheduler.Events().Dropped())
	assert.Equal(t, int64(0), scheduler.Events().Dispatched())
}

func TestEventsDrainIsBounded(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	handled := 0
	ecs.On(scheduler.Events(), func(frame *ecs.UpdateFrame, ev ping) {
		handled++
		frame.Commands.Signal(ping{ev.n + 1})
	})

	scheduler.Signal(ping{0})
	scheduler.Drain()

	assert.Greater(t, handled, 1)
	assert.Equal(t, 1, scheduler.Events().Pending(), "runaway chain is left for the next drain")

	before := handled
	scheduler.Drain()
	assert.Greater(t, handled, before)
}
