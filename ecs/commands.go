package ecs

// Commands buffers structural changes and signals issued while systems or
// handlers run. They are applied when the frame flushes, so iteration over
// queries is never invalidated mid-stage.
type Commands struct {
	events  *Events
	spawns  [][]any
	deletes []EntityId
	defers  []func()
	signals []any
}

func newCommands(events *Events) *Commands {
	return &Commands{events: events}
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion. Deleting the same entity more than once
// in a frame is harmless.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after deletes and spawns have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Signal queues an event for dispatch after the flush. Handlers see the
// storage with this frame's commands already applied.
func (c *Commands) Signal(event any) {
	c.signals = append(c.signals, event)
}

// Pending returns the number of queued operations, signals included.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers) + len(c.signals)
}

// Flush applies all queued operations to storage and forwards signals to
// the event queue, resetting the buffer. Order: deletes, spawns, defers, signals.
// It returns the number of entities actually deleted.
func (c *Commands) Flush(storage *Storage) int {
	deleted := 0
	for _, id := range c.deletes {
		if storage.Delete(id) {
			deleted++
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	if c.events != nil {
		for _, ev := range c.signals {
			c.events.Signal(ev)
		}
	}

	clear(c.spawns)
	clear(c.defers)
	clear(c.signals)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
	c.signals = c.signals[:0]
	return deleted
}
