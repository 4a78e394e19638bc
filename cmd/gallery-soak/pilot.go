package main

import (
	"math"

	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/gallery"
)

type pilotPlayer struct {
	*gallery.Player
	*gallery.Transform
}

type pilotTarget struct {
	*gallery.Target
	*gallery.Transform
}

// pilot plays the game through key events: it walks under the nearest
// target, fires, and restarts once the row is cleared.
type pilot struct {
	world     *gallery.World
	players   *ecs.Query[pilotPlayer]
	targets   *ecs.Query[pilotTarget]
	held      ecs.Key
	cooldown  int
	fireEvery int
	shots     int
	restarts  int
}

func newPilot(world *gallery.World, fireEvery int) *pilot {
	return &pilot{
		world:     world,
		players:   ecs.NewQuery[pilotPlayer](world.Storage),
		targets:   ecs.NewQuery[pilotTarget](world.Storage),
		fireEvery: max(fireEvery, 1),
	}
}

func (p *pilot) hold(key ecs.Key) {
	if p.held == key {
		return
	}
	if p.held != ecs.KeyUnknown {
		p.world.Scheduler.Signal(ecs.KeyReleased{Key: p.held})
	}
	if key != ecs.KeyUnknown {
		p.world.Scheduler.Signal(ecs.KeyPressed{Key: key})
	}
	p.held = key
}

func (p *pilot) tap(key ecs.Key) {
	p.world.Scheduler.Signal(ecs.KeyPressed{Key: key})
	p.world.Scheduler.Signal(ecs.KeyReleased{Key: key})
}

// step queues this frame's input.
func (p *pilot) step() {
	keys := p.world.Config.Keys

	player, ok := p.players.First()
	if !ok {
		return
	}
	x := player.Transform.Position.X

	best, found := math.Inf(1), false
	var aim float64
	for t := range p.targets.Values() {
		if d := math.Abs(t.Transform.Position.X - x); d < best {
			best, aim, found = d, t.Transform.Position.X, true
		}
	}

	if !found {
		p.hold(ecs.KeyUnknown)
		p.tap(keys.Restart)
		p.restarts++
		return
	}

	const tolerance = 0.1
	switch {
	case aim < x-tolerance:
		p.hold(keys.Left)
	case aim > x+tolerance:
		p.hold(keys.Right)
	default:
		p.hold(ecs.KeyUnknown)
		if p.cooldown <= 0 {
			p.tap(keys.Fire)
			p.shots++
			p.cooldown = p.fireEvery
		}
	}
	p.cooldown--
}
