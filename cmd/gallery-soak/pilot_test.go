package main

import (
	"testing"

	"github.com/plus3/gallery/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPilotClearsRound(t *testing.T) {
	store := gallery.NewMemoryStore(gallery.Scores{})
	world, err := gallery.NewWorld(gallery.DefaultConfig(), store)
	require.NoError(t, err)

	p := newPilot(world, 20)
	for frame := 0; frame < 60*30 && p.restarts == 0; frame++ {
		p.step()
		world.Scheduler.Once(1.0 / 60.0)
		world.Scheduler.PreRender()
	}

	require.Equal(t, 1, p.restarts, "pilot should clear the row within thirty seconds")
	world.Scheduler.Once(1.0 / 60.0)

	board := world.Board()
	assert.Equal(t, 50, board.Top)
	assert.Equal(t, 50, board.Last)
	assert.Equal(t, 0, board.Current)
	assert.GreaterOrEqual(t, p.shots, 5)
	assert.Equal(t, 1, store.Saves())
}
