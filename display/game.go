// Package display runs the gallery in a window using Ebiten.
package display

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/ecs/debugui"
	debugui_ebiten "github.com/plus3/gallery/ecs/debugui/ebiten"
	"github.com/plus3/gallery/gallery"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 38, A: 255}
	bannerColor     = color.RGBA{R: 255, G: 220, B: 120, A: 255}
)

type spriteView struct {
	*gallery.Transform
	*gallery.Sprite
	Body    *gallery.Body         `ecs:"optional"`
	Display *gallery.ScoreDisplay `ecs:"optional"`
}

type targetView struct {
	*gallery.Target
}

// Options configures the window frontend.
type Options struct {
	// Debug shows the Dear ImGui overlay with storage and scheduler statistics.
	Debug bool
}

// Game implements ebiten.Game for a gallery World.
type Game struct {
	world   *gallery.World
	keys    keyPoller
	face    *text.GoTextFace
	small   *text.GoTextFace
	sprites *ecs.Query[spriteView]
	targets *ecs.Query[targetView]
	order   []spriteView

	imgui    *debugui_ebiten.ImguiBackend
	capture  *ecs.Singleton[debugui.ImguiInputState]
	captured bool
}

// NewGame prepares the window and fonts. With Debug set it also creates the
// ImGui backend window and installs the debug windows into the scheduler.
func NewGame(world *gallery.World, opts Options) (*Game, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load score font: %w", err)
	}

	cfg := world.Config
	g := &Game{
		world:   world,
		face:    &text.GoTextFace{Source: source, Size: cfg.Score.FontSize},
		small:   &text.GoTextFace{Source: source, Size: cfg.Score.FontSize * 0.6},
		sprites: ecs.NewQuery[spriteView](world.Storage),
		targets: ecs.NewQuery[targetView](world.Storage),
	}

	if opts.Debug {
		g.imgui = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		debugui.RegisterDebugUIComponents(world.Storage.Registry())
		debugui.Install(world.Scheduler)
		g.capture = ecs.NewSingleton[debugui.ImguiInputState](world.Storage)
		world.Storage.Spawn(debugui.ImguiItem{Render: func() {
			renderScoreBoard(world)
		}})
		log.Printf("[Display] Debug overlay enabled")
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}

	return g, nil
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(world *gallery.World, opts Options) error {
	g, err := NewGame(world, opts)
	if err != nil {
		return err
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
	}

	if g.keyboardCaptured() {
		if !g.captured {
			g.keys.releaseHeld(g.world.Scheduler.Signal)
			g.captured = true
		}
	} else {
		g.captured = false
		if g.keys.poll(g.world.Scheduler.Signal) {
			return ebiten.Termination
		}
	}

	g.world.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) keyboardCaptured() bool {
	if g.capture == nil {
		return false
	}
	state := g.capture.Get()
	return state != nil && state.WantCaptureKeyboard
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Scheduler.PreRender()

	screen.Fill(backgroundColor)
	bounds := screen.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	cam := *g.world.Camera()
	scale := cam.Scale(w)

	g.order = g.order[:0]
	for s := range g.sprites.Values() {
		g.order = append(g.order, s)
	}
	sort.SliceStable(g.order, func(i, j int) bool {
		return g.order[i].Sprite.Layer < g.order[j].Sprite.Layer
	})

	for _, s := range g.order {
		x, y := cam.WorldToScreen(s.Transform.Position, w, h)
		size := 1.0
		if s.Body != nil {
			size = s.Body.Size
		}

		switch s.Sprite.Shape {
		case gallery.ShapeSquare:
			side := float32(size * scale)
			vector.DrawFilledRect(screen, float32(x)-side/2, float32(y)-side/2, side, side, s.Sprite.Color, true)
		case gallery.ShapeCircle:
			vector.DrawFilledCircle(screen, float32(x), float32(y), float32(size*scale/2), s.Sprite.Color, true)
		case gallery.ShapeText:
			if s.Display != nil {
				g.drawText(screen, s.Display.Text(), g.face, x, y, s.Sprite.Color)
				g.drawText(screen, s.Display.BestText(), g.small, x, y+g.face.Size*1.2, s.Sprite.Color)
			}
		}
	}

	if g.targets.Count() == 0 {
		msg := fmt.Sprintf("Round clear! Press %s to play again", g.world.Config.Keys.Restart)
		tw, _ := text.Measure(msg, g.face, 0)
		g.drawText(screen, msg, g.face, (w-tw)/2, h/2, bannerColor)
	}

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func renderScoreBoard(world *gallery.World) {
	if !imgui.BeginV("Gallery", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	board := world.Board()
	imgui.Text(fmt.Sprintf("Current: %d", board.Current))
	imgui.Text(fmt.Sprintf("Top: %d  Last: %d", board.Top, board.Last))
	imgui.Text(fmt.Sprintf("Rounds: %d  Recorded: %v", board.Rounds, board.Recorded))
	imgui.Separator()

	cam := world.Camera()
	imgui.Text(fmt.Sprintf("Camera: %s  width %g", cam.Position, cam.Width))
	imgui.Text(fmt.Sprintf("Entities: %d", world.Storage.Count()))

	imgui.End()
}
