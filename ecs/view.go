package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	offset   uintptr
	typ      reflect.Type
	optional bool
}

// View projects entities onto a struct of component pointers.
//
// T must be a struct. Each pointer field names a component type: embedded
// pointer fields are required, named pointer fields tagged `ecs:"optional"`
// are set to nil when the entity lacks the component. A field of type
// EntityId, embedded or named, receives the entity's id.
//
// Pointers handed out by a View stay valid until the next structural change
// to the storage (spawn or delete). Systems should therefore use Commands
// rather than mutate the storage while iterating.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			if v.hasId {
				panic("View struct may contain only one EntityId field")
			}
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId, got " + field.Type.String())
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = !field.Anonymous
		}

		v.fields = append(v.fields, viewField{
			offset:   field.Offset,
			typ:      field.Type.Elem(),
			optional: optional,
		})
	}
	return v
}

// matchesArchetype checks if an archetype contains all the required component types for this view
func (v *View[T]) matchesArchetype(a *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !a.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnsFor maps each view field to the archetype column holding it (-1 if absent).
func (v *View[T]) columnsFor(a *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = a.columnIndex(f.typ)
	}
	return cols
}

func (v *View[T]) fill(dst unsafe.Pointer, a *Archetype, row int, cols []int) {
	if v.hasId {
		*(*EntityId)(unsafe.Add(dst, v.idOffset)) = a.entities[row]
	}
	for i, f := range v.fields {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(dst, f.offset))
		if cols[i] < 0 {
			*fieldPtr = nil
			continue
		}
		*fieldPtr = a.columns[cols[i]].pointer(row)
	}
}

// iterArchetype yields every row of a matching archetype.
func (v *View[T]) iterArchetype(a *Archetype, yield func(EntityId, T) bool) bool {
	if a.Len() == 0 {
		return true
	}
	cols := v.columnsFor(a)

	var result T
	dst := unsafe.Pointer(&result)
	for row := 0; row < len(a.entities); row++ {
		v.fill(dst, a, row, cols)
		if !yield(a.entities[row], result) {
			return false
		}
	}
	return true
}

// Get returns a populated view struct for the given entity, or nil if the
// entity does not exist or lacks a required component.
func (v *View[T]) Get(id EntityId) *T {
	archetypeId, ok := v.storage.locations.Get(id)
	if !ok {
		return nil
	}
	a := v.storage.archetypes[archetypeId]
	if !v.matchesArchetype(a) {
		return nil
	}
	row, ok := a.rows.Get(id)
	if !ok {
		return nil
	}

	var result T
	v.fill(unsafe.Pointer(&result), a, row, v.columnsFor(a))
	return &result
}

// Iter returns an iterator over all entities that have the view's required components.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, a := range v.storage.archetypes {
			if !v.matchesArchetype(a) {
				continue
			}
			if !v.iterArchetype(a, yield) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities the view matches.
func (v *View[T]) Count() int {
	n := 0
	for _, a := range v.storage.archetypes {
		if v.matchesArchetype(a) {
			n += a.Len()
		}
	}
	return n
}

// Spawn creates a new entity from the non-nil component pointers of data.
func (v *View[T]) Spawn(data T) EntityId {
	src := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		ptr := *(*unsafe.Pointer)(unsafe.Add(src, f.offset))
		if ptr == nil {
			if !f.optional {
				panic("required component " + f.typ.String() + " is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, ptr).Elem().Interface())
	}
	return v.storage.Spawn(components...)
}
