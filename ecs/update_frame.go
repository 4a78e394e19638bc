package ecs

// UpdateFrame is handed to every system and event handler. Structural
// changes and signals go through Commands and take effect after the current
// stage (or dispatch round) completes.
type UpdateFrame struct {
	DeltaTime float64
	Stage     Stage
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, stage Stage, storage *Storage, events *Events) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Stage:     stage,
		Commands:  newCommands(events),
		Storage:   storage,
	}
}
