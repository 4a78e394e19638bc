package ecs_test

import (
	"fmt"
	"sort"

	"github.com/plus3/gallery/ecs"
)

// ExampleView demonstrates querying entities by the components they carry.
// Views need no Scheduler and iterate on demand, which makes them handy for
// one-off queries such as a renderer walking every drawable entity.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0}, Name{Value: "a"})
	storage.Spawn(Position{X: 10, Y: 10}, Name{Value: "b"})
	storage.Spawn(Position{X: 20, Y: 20}, Velocity{DX: 0, DY: 1}, Name{Value: "c"})

	view := ecs.NewView[struct {
		*Name
		Velocity *Velocity `ecs:"optional"`
	}](storage)

	var lines []string
	for item := range view.Values() {
		moving := item.Velocity != nil
		lines = append(lines, fmt.Sprintf("%s moving=%v", item.Name.Value, moving))
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Println(line)
	}

	// Output:
	// a moving=true
	// b moving=false
	// c moving=true
}
