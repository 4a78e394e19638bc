package ecs_test

import (
	"fmt"

	"github.com/plus3/gallery/ecs"
)

type GameScore struct {
	Points int
	Level  int
}

// ExampleNewSingleton demonstrates creating and sharing a singleton component.
// Every accessor for the same type points at the same value.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	score := ecs.NewSingleton[GameScore](storage, GameScore{Points: 0, Level: 1})
	score.Get().Points += 10

	same := ecs.NewSingleton[GameScore](storage, GameScore{Points: 999})
	fmt.Printf("points=%d level=%d\n", same.Get().Points, same.Get().Level)

	// Output:
	// points=10 level=1
}
