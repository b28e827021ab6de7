package ecs

import (
	"iter"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/kamstrup/intmap"
)

type entityRow struct {
	id         EntityId
	components map[reflect.Type]reflect.Value
}

// Storage is the main ECS storage. It owns every entity, the components
// attached to them and the singleton components of one world.
//
// Components are heap allocated individually, so pointers handed out by
// queries stay valid until their own entity is deleted.
type Storage struct {
	index      *intmap.Map[EntityId, int]
	rows       []entityRow
	lastId     EntityId
	version    uint64
	singletons map[reflect.Type]reflect.Value
}

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	EntityCount     int
	SingletonCount  int
	SingletonTypes  []string
	ComponentCounts map[string]int
}

// NewStorage creates an empty storage.
func NewStorage() *Storage {
	return &Storage{
		index:      intmap.New[EntityId, int](256),
		singletons: make(map[reflect.Type]reflect.Value),
	}
}

// Spawn creates a new entity with the provided components and returns its id.
// Components may be passed by value or by pointer; they are always copied.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	row := entityRow{components: make(map[reflect.Type]reflect.Value, len(components))}
	for _, comp := range components {
		value := componentValue(comp)
		compType := value.Type().Elem()
		if _, dup := row.components[compType]; dup {
			panic("duplicate component " + compType.String() + " in spawn")
		}
		row.components[compType] = value
	}

	s.lastId++
	s.version++
	row.id = s.lastId
	s.index.Put(row.id, len(s.rows))
	s.rows = append(s.rows, row)
	return row.id
}

// Delete removes the entity and all of its components.
// Iteration order of the remaining entities is preserved.
func (s *Storage) Delete(id EntityId) bool {
	pos, ok := s.index.Get(id)
	if !ok {
		return false
	}

	s.rows = slices.Delete(s.rows, pos, pos+1)
	s.index.Del(id)
	s.version++
	for i := pos; i < len(s.rows); i++ {
		s.index.Put(s.rows[i].id, i)
	}
	return true
}

// Alive reports whether the entity exists.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.index.Get(id)
	return ok
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.index.Len()
}

// Version changes whenever an entity is spawned or deleted. Tools use it to
// invalidate cached views of the entity list.
func (s *Storage) Version() uint64 {
	return s.version
}

// Entities yields every live entity id in spawn order.
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, row := range slices.Clone(s.rows) {
			if !yield(row.id) {
				return
			}
		}
	}
}

// ComponentTypes returns the component types of an entity sorted by name.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	pos, ok := s.index.Get(id)
	if !ok {
		return nil
	}

	types := make([]reflect.Type, 0, len(s.rows[pos].components))
	for t := range s.rows[pos].components {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// GetComponent returns a pointer to the component of the given type, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	pos, ok := s.index.Get(id)
	if !ok {
		return nil
	}
	value, ok := s.rows[pos].components[compType]
	if !ok {
		return nil
	}
	return value.Interface()
}

// HasComponent checks if an entity has a specific component type.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	pos, ok := s.index.Get(id)
	if !ok {
		return false
	}
	_, ok = s.rows[pos].components[compType]
	return ok
}

// AddSingleton stores value as the singleton of its type. An existing
// singleton of the same type is overwritten in place so cached accessors
// observe the new value.
func (s *Storage) AddSingleton(value any) {
	v := componentValue(value)
	t := v.Type().Elem()
	if existing, ok := s.singletons[t]; ok {
		existing.Elem().Set(v.Elem())
		return
	}
	s.singletons[t] = v
}

// ReadSingleton points *out at the singleton of the matching type.
// out must be a pointer to a pointer, e.g. `var cfg *Config; storage.ReadSingleton(&cfg)`.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton requires a pointer to a pointer")
	}

	value, ok := s.singletons[target.Elem().Type().Elem()]
	if !ok {
		return false
	}
	target.Elem().Set(value)
	return true
}

func (s *Storage) singleton(t reflect.Type) (reflect.Value, bool) {
	v, ok := s.singletons[t]
	return v, ok
}

// CollectStats summarises the storage contents.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		EntityCount:     len(s.rows),
		SingletonCount:  len(s.singletons),
		ComponentCounts: make(map[string]int),
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	for _, row := range s.rows {
		for t := range row.components {
			stats.ComponentCounts[t.String()]++
		}
	}
	return stats
}

// componentValue copies comp into a freshly allocated value and returns the pointer.
func componentValue(comp any) reflect.Value {
	v := reflect.ValueOf(comp)
	if !v.IsValid() {
		panic("components cannot be nil")
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			panic("components cannot be nil")
		}
		v = v.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	return ptr
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the typed component of an entity, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
