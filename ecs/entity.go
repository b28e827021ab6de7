package ecs

// EntityId identifies an entity within a Storage.
// Ids are issued in increasing order starting at 1 and are never reused.
type EntityId uint64

// Valid reports whether the id could have been issued by a Storage.
func (e EntityId) Valid() bool {
	return e != 0
}
