package gallery

import (
	"fmt"
	"log"

	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/vec"
)

// PlayerControlSystem turns key events into player movement and shots.
type PlayerControlSystem struct {
	Players ecs.Query[struct {
		ecs.EntityId
		*Player
		*Transform
		*Motion
	}]
	Tuning ecs.Singleton[Config]
}

func (s *PlayerControlSystem) Subscribe(events *ecs.Events) {
	ecs.On(events, s.onKeyPressed)
	ecs.On(events, s.onKeyReleased)
}

func (s *PlayerControlSystem) onKeyPressed(frame *ecs.UpdateFrame, ev ecs.KeyPressed) {
	for p := range s.Players.Values() {
		switch ev.Key {
		case p.Player.Left:
			if !p.Player.leftHeld {
				p.Player.leftHeld = true
				p.Motion.Direction = p.Motion.Direction.Add(vec.New(-1, 0))
			}
		case p.Player.Right:
			if !p.Player.rightHeld {
				p.Player.rightHeld = true
				p.Motion.Direction = p.Motion.Direction.Add(vec.New(1, 0))
			}
		case p.Player.Fire:
			at := p.Transform.Position.Add(p.Player.Muzzle)
			spawnProjectile(frame.Commands, s.Tuning.Get().Projectile, p.EntityId, at)
			frame.Commands.Signal(ProjectileFired{Player: p.EntityId, Position: at})
		}
	}
}

// onKeyReleased undoes the matching press. A release without a press (the
// key was already down when the scene started) is ignored.
func (s *PlayerControlSystem) onKeyReleased(frame *ecs.UpdateFrame, ev ecs.KeyReleased) {
	for p := range s.Players.Values() {
		switch ev.Key {
		case p.Player.Left:
			if p.Player.leftHeld {
				p.Player.leftHeld = false
				p.Motion.Direction = p.Motion.Direction.Add(vec.New(1, 0))
			}
		case p.Player.Right:
			if p.Player.rightHeld {
				p.Player.rightHeld = false
				p.Motion.Direction = p.Motion.Direction.Add(vec.New(-1, 0))
			}
		}
	}
}

// MovementSystem integrates Motion into Transform.
type MovementSystem struct {
	Movers ecs.Query[struct {
		*Transform
		*Motion
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Movers.Values() {
		dir := m.Motion.Direction
		if m.Motion.Normalized {
			dir = dir.Normalize()
		}
		m.Transform.Position = m.Transform.Position.Add(dir.Scale(m.Motion.Speed * frame.DeltaTime))
	}
}

// TargetSystem resolves projectile hits. Each target checks the projectiles
// in turn and is destroyed by the first one within its size; a projectile
// can take out at most one target.
type TargetSystem struct {
	Targets ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Body
		*Target
	}]
	Projectiles ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Projectile
	}]

	spent map[ecs.EntityId]struct{}
}

func (s *TargetSystem) Execute(frame *ecs.UpdateFrame) {
	if s.spent == nil {
		s.spent = make(map[ecs.EntityId]struct{})
	}
	clear(s.spent)

	destroyed, remaining := 0, 0
	for t := range s.Targets.Values() {
		hit := false
		for p := range s.Projectiles.Values() {
			if _, ok := s.spent[p.EntityId]; ok {
				continue
			}
			if p.Transform.Position.Sub(t.Transform.Position).Length() > t.Body.Size {
				continue
			}

			s.spent[p.EntityId] = struct{}{}
			frame.Commands.Delete(t.EntityId)
			frame.Commands.Delete(p.EntityId)
			frame.Commands.Signal(TargetDestroyed{
				Target:     t.EntityId,
				Projectile: p.EntityId,
				Points:     t.Target.Points,
				Position:   t.Transform.Position,
			})
			hit = true
			break
		}

		if hit {
			destroyed++
		} else {
			remaining++
		}
	}

	if destroyed > 0 && remaining == 0 {
		frame.Commands.Signal(RoundOver{Cleared: true})
	}
}

// CullSystem removes projectiles that have left the arena.
type CullSystem struct {
	Projectiles ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Projectile
	}]
	Tuning ecs.Singleton[Config]
}

func (s *CullSystem) Execute(frame *ecs.UpdateFrame) {
	arena := s.Tuning.Get().Arena
	maxX := arena.HalfWidth + arena.Margin
	maxY := arena.HalfHeight + arena.Margin

	for p := range s.Projectiles.Values() {
		pos := p.Transform.Position
		if pos.X < -maxX || pos.X > maxX || pos.Y < -maxY || pos.Y > maxY {
			frame.Commands.Delete(p.EntityId)
		}
	}
}

// ScoreSystem keeps the ScoreBoard: it adds points for destroyed targets,
// loads and saves high scores, and pushes the score to every display
// before rendering.
type ScoreSystem struct {
	Board    ecs.Singleton[ScoreBoard]
	Displays ecs.Query[struct {
		*ScoreDisplay
	}]

	store   ScoreStore
	loaded  bool
	started bool
	loadErr error
}

// NewScoreSystem returns a score system backed by store, or by an empty
// in-memory store when store is nil.
func NewScoreSystem(store ScoreStore) *ScoreSystem {
	if store == nil {
		store = NewMemoryStore(Scores{})
	}
	return &ScoreSystem{store: store}
}

func (s *ScoreSystem) Subscribe(events *ecs.Events) {
	ecs.On(events, func(frame *ecs.UpdateFrame, ev TargetDestroyed) {
		s.Board.Get().Current += ev.Points
	})
	ecs.On(events, func(frame *ecs.UpdateFrame, ev ecs.SceneStarted) {
		s.start()
	})
	ecs.On(events, func(frame *ecs.UpdateFrame, ev RoundOver) {
		if err := s.Record(); err != nil {
			log.Printf("[ScoreSystem] Warning: %v", err)
		}
	})
}

// start publishes the stored top and last scores and begins a new round.
func (s *ScoreSystem) start() {
	board := s.Board.Get()
	if !s.loaded {
		scores, err := s.store.Load()
		if err != nil {
			log.Printf("[ScoreSystem] Warning: failed to load high scores: %v (scores will not be saved)", err)
			s.loadErr = err
			scores = Scores{}
		}
		board.Top = scores.Top
		board.Last = scores.Last
		board.Rounds = scores.Rounds
		s.loaded = true
	}
	s.started = true
	board.Current = 0
	board.Recorded = false
}

// Record folds the current round into the top and last scores and saves
// them. Recording the same round twice is a no-op, as is recording before
// any round has started. When the stored scores could not be loaded the
// board is still updated but nothing is saved, so the stored file is kept.
func (s *ScoreSystem) Record() error {
	board := s.Board.Get()
	if !s.started || board.Recorded {
		return nil
	}
	board.Recorded = true
	board.Last = board.Current
	board.Top = max(board.Top, board.Current)
	board.Rounds++

	if s.loadErr != nil {
		return fmt.Errorf("not saving scores, stored scores could not be loaded: %w", s.loadErr)
	}
	return s.store.Save(Scores{Top: board.Top, Last: board.Last, Rounds: board.Rounds})
}

// Execute runs in the pre-render stage.
func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Board.Get()
	for d := range s.Displays.Values() {
		d.ScoreDisplay.Score = board.Current
		d.ScoreDisplay.Best = max(board.Top, board.Current)
	}
}

// ScoreDisplaySystem pins score displays to the camera before rendering.
type ScoreDisplaySystem struct {
	Displays ecs.Query[struct {
		*Transform
		*ScoreDisplay
	}]
	Camera ecs.Singleton[Camera]
}

func (s *ScoreDisplaySystem) Execute(frame *ecs.UpdateFrame) {
	cam := s.Camera.Get()
	for d := range s.Displays.Values() {
		d.Transform.Position = cam.Position.Add(d.ScoreDisplay.Offset)
	}
}

// RestartSystem ends the round and rebuilds the scene when the restart key
// is pressed. Only scene entities (those with a Transform) are replaced;
// anything else in the storage, such as debug windows, survives.
type RestartSystem struct {
	Scene ecs.Query[struct {
		ecs.EntityId
		*Transform
	}]
	Tuning ecs.Singleton[Config]
}

func (s *RestartSystem) Subscribe(events *ecs.Events) {
	ecs.On(events, func(frame *ecs.UpdateFrame, ev ecs.KeyPressed) {
		cfg := s.Tuning.Get()
		if ev.Key != cfg.Keys.Restart {
			return
		}

		frame.Commands.Signal(RoundOver{Cleared: false})
		storage := frame.Storage
		// Deleting at flush time also catches entities spawned by handlers
		// that ran earlier in the same batch.
		frame.Commands.Defer(func() {
			var scene []ecs.EntityId
			for id := range s.Scene.Iter() {
				scene = append(scene, id)
			}
			for _, id := range scene {
				storage.Delete(id)
			}
			Populate(storage, *cfg)
		})
		frame.Commands.Signal(ecs.SceneStarted{})
	})
}
