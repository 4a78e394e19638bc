package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/ecs/debugui"
	debugui_ebiten "github.com/plus3/gallery/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	scheduler *ecs.Scheduler
	imgui     *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	g.imgui.BeginFrame()
	g.scheduler.Once(1.0 / 60.0)
	g.imgui.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.PreRender()
	// draw the scene here, then the overlay on top
	g.imgui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Example shows the order of calls needed to host the debug windows in an
// Ebiten game: create the backend window first, then install the debug UI
// into the scheduler.
func Example() {
	backend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	scheduler := ecs.NewScheduler(storage)
	debugui.Install(scheduler)

	if err := ebiten.RunGame(&Game{scheduler: scheduler, imgui: backend}); err != nil {
		panic(err)
	}
}
