package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/kamstrup/intmap"
)

// signature is the canonical key of a sorted component type set.
func signature(types []reflect.Type) string {
	var b strings.Builder
	for i, t := range types {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(t.PkgPath())
		b.WriteByte('.')
		b.WriteString(t.String())
	}
	return b.String()
}

// Archetype holds every entity that has exactly one particular set of
// component types. Components are stored column-wise and densely packed:
// deleting an entity moves the archetype's last row into the freed slot.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	columns  []column
	entities []EntityId
	rows     *intmap.Map[EntityId, int]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		rows:    intmap.New[EntityId, int](64),
	}
	for idx, typ := range types {
		a.columns[idx] = registry.newColumn(typ)
	}
	return a
}

// push appends an entity. components must be sorted like a.types.
func (a *Archetype) push(id EntityId, components []any) {
	for idx, comp := range components {
		a.columns[idx].push(comp)
	}
	a.rows.Put(id, len(a.entities))
	a.entities = append(a.entities, id)
}

// remove deletes the entity's row, returning false if it is not stored here.
func (a *Archetype) remove(id EntityId) bool {
	row, ok := a.rows.Get(id)
	if !ok {
		return false
	}

	last := len(a.entities) - 1
	for _, col := range a.columns {
		col.swapRemove(row)
	}
	if row != last {
		moved := a.entities[last]
		a.entities[row] = moved
		a.rows.Put(moved, row)
	}
	a.entities = a.entities[:last]
	a.rows.Del(id)
	return true
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// component returns a pointer to the entity's component of type t, or nil.
func (a *Archetype) component(id EntityId, t reflect.Type) any {
	row, ok := a.rows.Get(id)
	if !ok {
		return nil
	}
	idx := a.columnIndex(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].get(row)
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.columnIndex(compType) >= 0
}

// ID returns the archetype's identifier, unique within its Storage.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Iter yields the archetype's entities in row order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, id := range a.entities {
			if !yield(id) {
				return
			}
		}
	}
}
