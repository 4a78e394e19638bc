package ecs

import (
	"reflect"
	"unsafe"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage owns one registry, so independent worlds (a running game and a
// headless soak run, for example) never share column factories.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	checkComponentKind(t)
	r.factories[t] = func() column {
		return &typedColumn[T]{}
	}
}

// Registered reports whether the component type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// column is the type-erased, densely packed storage of one component type
// inside an archetype. Rows line up across all columns of an archetype.
type column interface {
	push(value any)
	swapRemove(row int)
	pointer(row int) unsafe.Pointer
	get(row int) any
	len() int
}

type typedColumn[T any] struct {
	values []T
}

func (c *typedColumn[T]) push(value any) {
	switch v := value.(type) {
	case T:
		c.values = append(c.values, v)
	case *T:
		c.values = append(c.values, *v)
	default:
		panic("component value does not match column type " + reflect.TypeFor[T]().String())
	}
}

// swapRemove moves the last row into row and shrinks the column by one.
func (c *typedColumn[T]) swapRemove(row int) {
	last := len(c.values) - 1
	c.values[row] = c.values[last]
	var zero T
	c.values[last] = zero
	c.values = c.values[:last]
}

func (c *typedColumn[T]) pointer(row int) unsafe.Pointer {
	return unsafe.Pointer(&c.values[row])
}

func (c *typedColumn[T]) get(row int) any {
	if row < 0 || row >= len(c.values) {
		return nil
	}
	return &c.values[row]
}

func (c *typedColumn[T]) len() int {
	return len(c.values)
}

// checkComponentKind rejects kinds that cannot be stored by value.
func checkComponentKind(t reflect.Type) {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		panic("components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}
}
