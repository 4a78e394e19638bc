package ecs

// System represents a behavior that operates on entities with specific components.
// Systems can declare exported Query and Singleton fields, which the Scheduler
// binds on registration, and may also implement Subscriber to handle events.
type System interface {
	Execute(frame *UpdateFrame)
}

// Stage selects when a registered system runs.
type Stage int

const (
	// StageUpdate systems run from Scheduler.Once, once per simulation tick.
	StageUpdate Stage = iota
	// StagePreRender systems run from Scheduler.PreRender, right before drawing.
	StagePreRender

	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageUpdate:
		return "update"
	case StagePreRender:
		return "pre-render"
	default:
		return "unknown"
	}
}
