package ecs

// EntityId identifies an entity for the lifetime of its Storage.
// Ids are handed out sequentially and never reused, so a stale id simply
// stops resolving once the entity is deleted.
type EntityId uint64

// InvalidEntity is the zero id. Spawn never returns it.
const InvalidEntity EntityId = 0

// Valid reports whether the id could refer to an entity.
func (e EntityId) Valid() bool {
	return e != InvalidEntity
}
