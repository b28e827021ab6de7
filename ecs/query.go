package ecs

import (
	"iter"
	"reflect"
)

var entityIdType = reflect.TypeFor[EntityId]()

type queryField struct {
	index    int
	compType reflect.Type
	optional bool
	entityId bool
}

// Query selects entities by component shape.
//
// The type T must be a struct whose exported fields are either an EntityId or
// pointers to component types. Embedded pointer fields are always required;
// named pointer fields can be marked optional with the `ecs:"optional"` tag
// and are left nil when the entity lacks the component.
type Query[T any] struct {
	storage *Storage
	fields  []queryField
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	q.fields = parseQueryFields(reflect.TypeFor[T]())
}

func parseQueryFields(structType reflect.Type) []queryField {
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	fields := make([]queryField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			panic("Query struct field " + field.Name + " must be exported")
		}

		if field.Type == entityIdType {
			fields = append(fields, queryField{index: i, entityId: true})
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("Query struct fields must be EntityId or pointer types")
		}

		fields = append(fields, queryField{
			index:    i,
			compType: field.Type.Elem(),
			optional: !field.Anonymous && field.Tag.Get("ecs") == "optional",
		})
	}
	return fields
}

func (q *Query[T]) populate(dst reflect.Value, row *entityRow) bool {
	for _, f := range q.fields {
		if f.entityId {
			dst.Field(f.index).SetUint(uint64(row.id))
			continue
		}

		ptr, ok := row.components[f.compType]
		if !ok {
			if f.optional {
				continue
			}
			return false
		}
		dst.Field(f.index).Set(ptr)
	}
	return true
}

func (q *Query[T]) collect() []T {
	if q.storage == nil {
		panic("Query used before Init")
	}

	matches := make([]T, 0)
	for i := range q.storage.rows {
		var result T
		if q.populate(reflect.ValueOf(&result).Elem(), &q.storage.rows[i]) {
			matches = append(matches, result)
		}
	}
	return matches
}

// Iter returns an iterator over every matching entity, in spawn order.
// The match set is captured when Iter is called, so entities may be spawned
// or deleted while iterating.
func (q *Query[T]) Iter() iter.Seq[T] {
	matches := q.collect()
	return func(yield func(T) bool) {
		for _, m := range matches {
			if !yield(m) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	return len(q.collect())
}

// First returns the earliest spawned matching entity.
func (q *Query[T]) First() (T, bool) {
	for m := range q.Iter() {
		return m, true
	}
	var zero T
	return zero, false
}
