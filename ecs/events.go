package ecs

import "reflect"

// maxDispatchRounds bounds how many times a drain re-dispatches events that
// handlers signalled while it was running.
const maxDispatchRounds = 16

type handler func(frame *UpdateFrame, event any)

// Events routes signalled events to typed handlers. Events are queued and
// dispatched in FIFO order whenever the Scheduler drains the queue; an
// event with no handler is dropped.
type Events struct {
	handlers   map[reflect.Type][]handler
	queue      []any
	dispatched int64
	dropped    int64
}

// NewEvents creates an empty event router.
func NewEvents() *Events {
	return &Events{
		handlers: make(map[reflect.Type][]handler),
	}
}

// On subscribes fn to events of type E. Handlers run in subscription order.
func On[E any](events *Events, fn func(frame *UpdateFrame, event E)) {
	t := reflect.TypeFor[E]()
	events.handlers[t] = append(events.handlers[t], func(frame *UpdateFrame, event any) {
		fn(frame, event.(E))
	})
}

// Subscriber is implemented by systems that react to events. The Scheduler
// calls Subscribe once, after the system's Query and Singleton fields are bound.
type Subscriber interface {
	Subscribe(events *Events)
}

// Signal queues event for the next drain.
func (e *Events) Signal(event any) {
	if event == nil {
		return
	}
	e.queue = append(e.queue, event)
}

// Pending returns the number of queued events.
func (e *Events) Pending() int {
	return len(e.queue)
}

// Dispatched returns the total number of events delivered to at least one handler.
func (e *Events) Dispatched() int64 {
	return e.dispatched
}

// Dropped returns the total number of events that had no handler.
func (e *Events) Dropped() int64 {
	return e.dropped
}

// take removes and returns the current queue.
func (e *Events) take() []any {
	batch := e.queue
	e.queue = nil
	return batch
}

func (e *Events) dispatch(frame *UpdateFrame, event any) {
	hs := e.handlers[reflect.TypeOf(event)]
	if len(hs) == 0 {
		e.dropped++
		return
	}
	e.dispatched++
	for _, h := range hs {
		h(frame, event)
	}
}
