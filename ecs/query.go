package ecs

import "iter"

// Query is a View that remembers which archetypes match it. Systems declare
// Query fields and the Scheduler binds them on registration; the archetype
// list is rebuilt only when new archetypes appear.
type Query[T any] struct {
	view           *View[T]
	storage        *Storage
	archetypes     []*Archetype
	archetypeCount int
}

// NewQuery creates a new Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds (or rebinds) the Query to a storage.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypeCount = -1
}

func (q *Query[T]) refresh() {
	if q.storage == nil {
		panic("Query used before Init")
	}
	if len(q.storage.archetypes) == q.archetypeCount {
		return
	}
	for _, a := range q.storage.archetypes[max(q.archetypeCount, 0):] {
		if q.view.matchesArchetype(a) {
			q.archetypes = append(q.archetypes, a)
		}
	}
	q.archetypeCount = len(q.storage.archetypes)
}

// Iter returns an iterator over entity IDs and component data.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.refresh()
	return func(yield func(EntityId, T) bool) {
		for _, a := range q.archetypes {
			if !q.view.iterArchetype(a, yield) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range q.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Get returns the view struct for a single entity, or nil.
func (q *Query[T]) Get(id EntityId) *T {
	if q.view == nil {
		panic("Query used before Init")
	}
	return q.view.Get(id)
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	q.refresh()
	n := 0
	for _, a := range q.archetypes {
		n += a.Len()
	}
	return n
}

// First returns the first matching entity, if any.
func (q *Query[T]) First() (T, bool) {
	for _, value := range q.Iter() {
		return value, true
	}
	var zero T
	return zero, false
}
