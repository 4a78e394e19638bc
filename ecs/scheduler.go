package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	EventsHandled   int64
	EventsDropped   int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          Stage
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type registeredSystem struct {
	system         System
	name           string
	stage          Stage
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (r *registeredSystem) record(d time.Duration) {
	r.executionCount++
	r.lastDuration = d
	r.totalDuration += d
	r.minDuration = min(r.minDuration, d)
	r.maxDuration = max(r.maxDuration, d)
}

// storageBinder is implemented by *Query[T] and *Singleton[T].
type storageBinder interface {
	Init(storage *Storage)
}

// Scheduler owns the frame loop: it drains the event queue, runs the systems
// of a stage in registration order and applies their commands.
type Scheduler struct {
	storage   *Storage
	events    *Events
	stages    [stageCount][]*registeredSystem
	order     []*registeredSystem
	lastDelta float64
	frames    int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		events:  NewEvents(),
	}
}

// Storage returns the storage the scheduler drives.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Events returns the scheduler's event router.
func (s *Scheduler) Events() *Events {
	return s.events
}

// Register adds a system to the update stage.
func (s *Scheduler) Register(system System) {
	s.RegisterStage(StageUpdate, system)
}

// RegisterStage adds a system to the given stage, binds its Query and
// Singleton fields and subscribes it to events if it is a Subscriber.
func (s *Scheduler) RegisterStage(stage Stage, system System) {
	if stage < 0 || stage >= stageCount {
		panic("invalid scheduler stage " + stage.String())
	}
	s.bindFields(system)
	if sub, ok := system.(Subscriber); ok {
		sub.Subscribe(s.events)
	}

	rs := &registeredSystem{
		system:      system,
		name:        systemName(system),
		stage:       stage,
		minDuration: time.Duration(1<<63 - 1),
	}
	s.stages[stage] = append(s.stages[stage], rs)
	s.order = append(s.order, rs)
}

// RegisterHandler binds the fields of an event-only handler and subscribes it.
// Use this for types that react to events but have no per-frame work.
func (s *Scheduler) RegisterHandler(sub Subscriber) {
	s.bindFields(sub)
	sub.Subscribe(s.events)
}

func systemName(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(v any) {
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Ptr {
		return
	}
	value = value.Elem()
	if value.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if binder, ok := field.Addr().Interface().(storageBinder); ok {
			binder.Init(s.storage)
		}
	}
}

// Signal queues an event from outside the frame loop, typically input from
// a frontend. It is dispatched at the start of the next Once.
func (s *Scheduler) Signal(event any) {
	s.events.Signal(event)
}

// Drain dispatches queued events until the queue is empty or the round limit
// is hit. Commands issued by handlers are flushed after every round.
func (s *Scheduler) Drain() {
	for round := 0; round < maxDispatchRounds && s.events.Pending() > 0; round++ {
		batch := s.events.take()
		frame := newUpdateFrame(s.lastDelta, StageUpdate, s.storage, s.events)
		for _, ev := range batch {
			s.events.dispatch(frame, ev)
		}
		frame.Commands.Flush(s.storage)
	}
}

func (s *Scheduler) runStage(stage Stage, dt float64) {
	frame := newUpdateFrame(dt, stage, s.storage, s.events)
	for _, rs := range s.stages[stage] {
		start := time.Now()
		rs.system.Execute(frame)
		rs.record(time.Since(start))
	}
	frame.Commands.Flush(s.storage)
}

// Once runs one simulation tick of dt seconds: pending events, the update
// stage, then any events the update stage signalled.
func (s *Scheduler) Once(dt float64) {
	s.lastDelta = dt
	s.frames++
	s.Drain()
	s.runStage(StageUpdate, dt)
	s.Drain()
}

// PreRender runs the pre-render stage and dispatches what it signalled.
func (s *Scheduler) PreRender() {
	s.runStage(StagePreRender, s.lastDelta)
	s.Drain()
}

// Run ticks the scheduler at the given interval until the context is
// cancelled. Each tick runs Once followed by PreRender.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
			s.PreRender()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:   len(s.order),
		Frames:        s.frames,
		EventsHandled: s.events.Dispatched(),
		EventsDropped: s.events.Dropped(),
		Systems:       make([]SystemStats, len(s.order)),
	}

	for i, rs := range s.order {
		var avg, minDuration time.Duration
		if rs.executionCount > 0 {
			avg = rs.totalDuration / time.Duration(rs.executionCount)
			minDuration = rs.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           rs.name,
			Stage:          rs.stage,
			ExecutionCount: rs.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    rs.maxDuration,
			AvgDuration:    avg,
			LastDuration:   rs.lastDuration,
			TotalDuration:  rs.totalDuration,
		}
		stats.TotalExecutions += rs.executionCount
	}

	return stats
}
