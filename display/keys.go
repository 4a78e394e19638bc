package display

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/gallery/ecs"
)

var keyMap = map[ebiten.Key]ecs.Key{
	ebiten.KeyArrowLeft:  ecs.KeyLeft,
	ebiten.KeyArrowRight: ecs.KeyRight,
	ebiten.KeyArrowUp:    ecs.KeyUp,
	ebiten.KeyArrowDown:  ecs.KeyDown,
	ebiten.KeySpace:      ecs.KeySpace,
	ebiten.KeyEnter:      ecs.KeyEnter,
	ebiten.KeyEscape:     ecs.KeyEscape,
	ebiten.KeyR:          ecs.KeyR,
	ebiten.KeyA:          ecs.KeyA,
	ebiten.KeyD:          ecs.KeyD,
	ebiten.KeyW:          ecs.KeyW,
}

// keyPoller turns ebiten's per-tick key state into press and release events.
type keyPoller struct {
	pressed  []ebiten.Key
	released []ebiten.Key
}

// poll signals every mapped key that went down or up this tick and reports
// whether Escape was pressed.
func (p *keyPoller) poll(signal func(event any)) (quit bool) {
	p.pressed = inpututil.AppendJustPressedKeys(p.pressed[:0])
	p.released = inpututil.AppendJustReleasedKeys(p.released[:0])

	for _, k := range p.pressed {
		key, ok := keyMap[k]
		if !ok {
			continue
		}
		if key == ecs.KeyEscape {
			quit = true
		}
		signal(ecs.KeyPressed{Key: key})
	}
	for _, k := range p.released {
		if key, ok := keyMap[k]; ok {
			signal(ecs.KeyReleased{Key: key})
		}
	}
	return quit
}

// releaseHeld signals a release for every mapped key still down, used when
// the debug overlay takes the keyboard away from the game.
func (p *keyPoller) releaseHeld(signal func(event any)) {
	for k, key := range keyMap {
		if ebiten.IsKeyPressed(k) {
			signal(ecs.KeyReleased{Key: key})
		}
	}
}
