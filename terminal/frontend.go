// Package terminal runs the gallery in a terminal using tcell.
package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/gallery"
)

// Options configures the terminal frontend.
type Options struct {
	Tick        time.Duration
	InitialHold time.Duration
	RepeatHold  time.Duration
	TapGap      time.Duration
	Sound       *Sound
}

func (o Options) withDefaults() Options {
	if o.Tick <= 0 {
		o.Tick = time.Second / 60
	}
	if o.InitialHold <= 0 {
		o.InitialHold = DefaultInitialHold
	}
	if o.RepeatHold <= 0 {
		o.RepeatHold = DefaultRepeatHold
	}
	if o.TapGap <= 0 {
		o.TapGap = DefaultTapGap
	}
	return o
}

// Frontend drives a World from terminal input and draws it every tick.
type Frontend struct {
	screen   tcell.Screen
	world    *gallery.World
	keys     *KeyTracker
	renderer *Renderer
	opts     Options
}

func NewFrontend(screen tcell.Screen, world *gallery.World, opts Options) *Frontend {
	opts = opts.withDefaults()
	if opts.Sound != nil {
		world.Scheduler.RegisterHandler(opts.Sound)
	}
	keys := NewKeyTracker(opts.InitialHold, opts.RepeatHold)
	keys.SetTapKey(world.Config.Keys.Fire, opts.TapGap)
	return &Frontend{
		screen:   screen,
		world:    world,
		keys:     keys,
		renderer: NewRenderer(screen, world),
		opts:     opts,
	}
}

// translate maps a tcell key to a game key.
func translate(key tcell.Key, ch rune) (ecs.Key, bool) {
	switch key {
	case tcell.KeyLeft:
		return ecs.KeyLeft, true
	case tcell.KeyRight:
		return ecs.KeyRight, true
	case tcell.KeyUp:
		return ecs.KeyUp, true
	case tcell.KeyDown:
		return ecs.KeyDown, true
	case tcell.KeyEnter:
		return ecs.KeyEnter, true
	case tcell.KeyEscape:
		return ecs.KeyEscape, true
	case tcell.KeyRune:
		switch ch {
		case ' ':
			return ecs.KeySpace, true
		case 'r', 'R':
			return ecs.KeyR, true
		case 'a', 'A':
			return ecs.KeyA, true
		case 'd', 'D':
			return ecs.KeyD, true
		case 'w', 'W':
			return ecs.KeyW, true
		}
	}
	return ecs.KeyUnknown, false
}

// handle processes one terminal event and reports whether to keep running.
func (f *Frontend) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		key, ok := translate(ev.Key(), ev.Rune())
		if !ok {
			return true
		}
		if key == ecs.KeyEscape {
			return false
		}
		if pressed := f.keys.Press(key, now); pressed != nil {
			f.world.Scheduler.Signal(pressed)
		}
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

// step advances the game by dt and redraws.
func (f *Frontend) step(now time.Time, dt float64) {
	for _, ev := range f.keys.Expire(now) {
		f.world.Scheduler.Signal(ev)
	}
	f.world.Scheduler.Once(dt)
	f.world.Scheduler.PreRender()
	f.renderer.Draw()
}

// Run polls input and ticks the game until Escape, Ctrl-C or ctx is done.
// The screen must already be initialised; Run does not finalise it.
func (f *Frontend) Run(ctx context.Context) error {
	if f.screen == nil {
		return fmt.Errorf("terminal frontend has no screen")
	}

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(f.opts.Tick)
	defer ticker.Stop()

	log.Printf("[Terminal] Running at %v per tick", f.opts.Tick)
	last := time.Now()
	f.step(last, 0)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !f.handle(ev, time.Now()) {
				for _, rel := range f.keys.ReleaseAll() {
					f.world.Scheduler.Signal(rel)
				}
				return nil
			}
		case now := <-ticker.C:
			f.step(now, now.Sub(last).Seconds())
			last = now
		}
	}
}
