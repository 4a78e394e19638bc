package ecs

import (
	"iter"
	"reflect"
	"sort"

	"github.com/kamstrup/intmap"
)

// Storage is the scene container: it owns every entity, its components and
// the singleton components that are not attached to any entity.
type Storage struct {
	registry   *ComponentRegistry
	archetypes []*Archetype
	bySig      map[string]*Archetype
	locations  *intmap.Map[EntityId, uint32]
	singletons map[reflect.Type]*singletonEntry
	nextId     EntityId
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		bySig:      make(map[string]*Archetype),
		locations:  intmap.New[EntityId, uint32](256),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; they are always stored by value.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types, sorted := sortComponents(components)
	archetype := s.archetypeFor(types)

	s.nextId++
	id := s.nextId
	archetype.push(id, sorted)
	s.locations.Put(id, archetype.id)
	return id
}

// Delete removes the entity and all of its components. Deleting an entity
// that does not exist (or no longer exists) reports false.
func (s *Storage) Delete(id EntityId) bool {
	archetypeId, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	s.archetypes[archetypeId].remove(id)
	s.locations.Del(id)
	return true
}

// Clear deletes every entity. Singletons and archetypes are kept.
func (s *Storage) Clear() {
	for _, a := range s.archetypes {
		for _, col := range a.columns {
			for col.len() > 0 {
				col.swapRemove(col.len() - 1)
			}
		}
		a.entities = a.entities[:0]
		a.rows.Clear()
	}
	s.locations.Clear()
}

// Alive reports whether id refers to an entity that has not been deleted.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.locations.Get(id)
	return ok
}

// Count returns the number of live entities.
func (s *Storage) Count() int {
	return s.locations.Len()
}

// GetComponent returns a pointer to the component of the given type, or nil
// if the entity does not exist or lacks the component.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetypeId, ok := s.locations.Get(id)
	if !ok {
		return nil
	}
	return s.archetypes[archetypeId].component(id, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetypeId, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	return s.archetypes[archetypeId].HasComponent(compType)
}

// Archetypes yields every archetype created so far, including empty ones.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.archetypes {
			if !yield(a) {
				return
			}
		}
	}
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	sig := signature(types)
	if a, ok := s.bySig[sig]; ok {
		return a
	}
	a := newArchetype(uint32(len(s.archetypes)), types, s.registry)
	s.archetypes = append(s.archetypes, a)
	s.bySig[sig] = a
	return a
}

// sortComponents returns the component types sorted by name along with the
// components in the same order.
func sortComponents(components []any) ([]reflect.Type, []any) {
	types := make([]reflect.Type, len(components))
	order := make([]int, len(components))
	for i, comp := range components {
		if comp == nil {
			panic("cannot spawn a nil component")
		}
		t := reflect.TypeOf(comp)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		checkComponentKind(t)
		types[i] = t
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return types[order[i]].String() < types[order[j]].String()
	})

	sortedTypes := make([]reflect.Type, len(types))
	sorted := make([]any, len(components))
	for i, idx := range order {
		sortedTypes[i] = types[idx]
		sorted[i] = components[idx]
		if i > 0 && sortedTypes[i] == sortedTypes[i-1] {
			panic("duplicate component type " + sortedTypes[i].String())
		}
	}
	return sortedTypes, sorted
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to the entity's component, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
