package ecs

import "reflect"

// Singleton provides typed access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If the singleton doesn't exist yet it is created from initializer, or the
// zero value when no initializer is given.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if _, ok := storage.singleton(reflect.TypeFor[T]()); !ok {
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

// Init binds the Singleton to a storage.
// Called by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.ptr != nil {
		return s.ptr
	}
	if s.storage == nil {
		return nil
	}

	value, ok := s.storage.singleton(reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	s.ptr = value.Interface().(*T)
	return s.ptr
}

// Exists returns true if the singleton component has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
