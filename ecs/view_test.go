package ecs_test

import (
	"testing"

	"github.com/plus3/gallery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mover struct {
	ecs.EntityId
	*Position
	*Velocity
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[mover](storage)

	id := storage.Spawn(Position{X: 10, Y: 20}, Velocity{DX: 1.5, DY: 2.5}, Name{Value: "Test Entity"})

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, id, item.EntityId)
	assert.Equal(t, float32(10), item.Position.X)
	assert.Equal(t, float32(2.5), item.Velocity.DY)

	still := storage.Spawn(Position{})
	assert.Nil(t, view.Get(still), "missing required component")
	assert.Nil(t, view.Get(ecs.EntityId(999)))
}

func TestViewOptional(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	withHealth := storage.Spawn(Position{X: 3}, Health{Current: 50})
	without := storage.Spawn(Position{X: 4})

	result := view.Get(withHealth)
	require.NotNil(t, result)
	require.NotNil(t, result.Health)
	assert.Equal(t, 50, result.Health.Current)

	result = view.Get(without)
	require.NotNil(t, result)
	assert.Nil(t, result.Health)
	assert.Equal(t, 2, view.Count())
}

func TestViewIterAcrossArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[mover](storage)

	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 1}, Health{})
	storage.Spawn(Position{X: 3})
	storage.Spawn(Velocity{DX: 1}, Name{})

	sum := float32(0)
	seen := map[ecs.EntityId]bool{}
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		seen[id] = true
		sum += item.Position.X
	}
	assert.Len(t, seen, 2)
	assert.Equal(t, float32(3), sum)
}

func TestViewMutatesStorage(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[mover](storage)

	id := storage.Spawn(Position{}, Velocity{DX: 2, DY: -1})
	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}

	pos := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, Position{X: 2, Y: -1}, *pos)
}

func TestViewIterStopsEarly(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct{ *Position }](storage)

	for range 5 {
		storage.Spawn(Position{})
	}

	n := 0
	for range view.Values() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Name *Name `ecs:"optional"`
	}{Position: &Position{X: 5}})

	assert.True(t, storage.Alive(id))
	assert.Nil(t, ecs.ReadComponent[Name](storage, id))
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, id).X)

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			Name *Name `ecs:"optional"`
		}{})
	})
}

func TestViewShapeValidation(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"maybe"`
		}](storage)
	})
}

func TestQueryPicksUpNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	storage.Spawn(Position{X: 1})
	assert.Equal(t, 1, query.Count())

	storage.Spawn(Position{X: 2}, Tag("new archetype"))
	assert.Equal(t, 2, query.Count())

	first, ok := query.First()
	require.True(t, ok)
	assert.NotNil(t, first.Position)
}

func TestQueryGetAndEmpty(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[mover](storage)

	_, ok := query.First()
	assert.False(t, ok)

	id := storage.Spawn(Position{}, Velocity{DX: 1})
	item := query.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, float32(1), item.Velocity.DX)

	var unbound ecs.Query[mover]
	assert.Panics(t, func() { unbound.Count() })
}
