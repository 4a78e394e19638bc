package terminal

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/gallery"
	"github.com/plus3/gallery/vec"
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

// cellOf projects a world position onto the terminal grid. Cells are about
// twice as tall as they are wide, so each row covers two units of screen
// height.
func cellOf(cam gallery.Camera, p vec.Vector, cols, rows int) (x, y int) {
	sx, sy := cam.WorldToScreen(p, float64(cols), float64(rows*2))
	return int(math.Floor(sx)), int(math.Floor(sy / 2))
}

func styleFor(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Renderer draws the scene onto a tcell screen.
type Renderer struct {
	screen  tcell.Screen
	world   *gallery.World
	sprites *ecs.Query[spriteView]
	targets *ecs.Query[targetView]
	order   []spriteView
}

func NewRenderer(screen tcell.Screen, world *gallery.World) *Renderer {
	return &Renderer{
		screen:  screen,
		world:   world,
		sprites: ecs.NewQuery[spriteView](world.Storage),
		targets: ecs.NewQuery[targetView](world.Storage),
	}
}

// Draw renders one frame. The caller runs PreRender first.
func (r *Renderer) Draw() {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	cam := *r.world.Camera()
	unit := float64(cols) / cam.Width

	r.order = r.order[:0]
	for s := range r.sprites.Values() {
		r.order = append(r.order, s)
	}
	sort.SliceStable(r.order, func(i, j int) bool {
		return r.order[i].Sprite.Layer < r.order[j].Sprite.Layer
	})

	for _, s := range r.order {
		x, y := cellOf(cam, s.Transform.Position, cols, rows)
		style := styleFor(s.Sprite.Color)

		switch s.Sprite.Shape {
		case gallery.ShapeSquare:
			width := 1
			if s.Body != nil {
				width = max(1, int(s.Body.Size*unit/2))
			}
			for dx := -width / 2; dx < width-width/2; dx++ {
				r.screen.SetContent(x+dx, y, '█', nil, style)
			}
		case gallery.ShapeCircle:
			glyph := 'O'
			if s.Body != nil && s.Body.Size < 0.5 {
				glyph = '•'
			}
			r.screen.SetContent(x, y, glyph, nil, style)
		case gallery.ShapeText:
			if s.Display != nil {
				x, y = max(x, 0), max(y, 0)
				r.print(x, y, s.Display.Text(), style)
				r.print(x, y+1, s.Display.BestText(), style)
			}
		}
	}

	help := fmt.Sprintf("%s/%s move  %s fire  %s restart  Esc quit",
		r.world.Config.Keys.Left, r.world.Config.Keys.Right, r.world.Config.Keys.Fire, r.world.Config.Keys.Restart)
	r.print(0, rows-1, help, tcell.StyleDefault.Dim(true))

	if r.targets.Count() == 0 {
		msg := fmt.Sprintf("Round clear! Press %s to play again", r.world.Config.Keys.Restart)
		r.print((cols-len(msg))/2, rows/2, msg, tcell.StyleDefault.Bold(true))
	}

	r.screen.Show()
}

func (r *Renderer) print(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
