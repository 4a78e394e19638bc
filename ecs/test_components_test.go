package ecs_test

import "github.com/plus3/gallery/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Bullet struct {
	Owner ecs.EntityId
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type Inventory struct {
	Items []string
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Inventory](registry)
	return registry
}
