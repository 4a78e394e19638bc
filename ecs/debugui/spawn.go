package debugui

import "github.com/plus3/gallery/ecs"

// RegisterDebugUIComponents registers the component types Install spawns.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Install registers the ImguiSystem and spawns the performance and scheduler
// windows. The storage's registry must have the debug UI components registered.
func Install(scheduler *ecs.Scheduler) {
	storage := scheduler.Storage()
	ecs.NewSingleton[ImguiInputState](storage)

	perf := NewPerformanceStats(120)
	timer := NewFrameTimer()

	storage.Spawn(ImguiItem{Render: func() {
		perf.Render(storage, timer.GetDeltaTime())
	}})
	storage.Spawn(ImguiItem{Render: func() {
		RenderSchedulerStats(scheduler)
	}})

	scheduler.Register(&ImguiSystem{})
}
