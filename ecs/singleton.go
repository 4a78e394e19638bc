package ecs

import (
	"reflect"
	"unsafe"
)

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous value. Singleton types do not need to be registered.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t == nil {
		panic("cannot add a nil singleton")
	}
	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}
	v := reflect.New(t)
	v.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{
		value:   v,
		dataPtr: v.UnsafePointer(),
	}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// Singleton provides access to a single component instance that is not
// associated with any entity: the camera, the score board, tuning values.
// The pointer returned by Get stays valid for the lifetime of the Storage.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for the singleton of type T. If the
// singleton does not exist yet it is created from initializer, or from the
// zero value when no initializer is given.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to a storage.
// The Scheduler calls this for Singleton fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.resolve()
}

func (s *Singleton[T]) resolve() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = (*T)(entry.dataPtr)
	}
}

// Get returns a pointer to the singleton, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.resolve()
	}
	return s.ptr
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
