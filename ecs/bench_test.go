package ecs_test

import (
	"testing"

	"github.com/plus3/gallery/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkDelete(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Delete(ids[i])
	}
}

func BenchmarkQueryIter(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1})
		storage.Spawn(Position{X: float32(i)})
	}
	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for item := range query.Values() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkSignalDrain(b *testing.B) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))
	total := 0
	ecs.On(scheduler.Events(), func(frame *ecs.UpdateFrame, ev Bumped) {
		total += ev.By
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Signal(Bumped{By: 1})
		scheduler.Drain()
	}
}
