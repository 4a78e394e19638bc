package gallery

import (
	"fmt"
	"log"

	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/vec"
)

// Populate spawns the player, the score display and the row of targets.
func Populate(storage *ecs.Storage, cfg Config) {
	storage.Spawn(
		Transform{Position: cfg.Player.Position},
		Motion{Speed: cfg.Player.Speed},
		Body{Size: cfg.Player.Size},
		Player{
			Left:   cfg.Keys.Left,
			Right:  cfg.Keys.Right,
			Fire:   cfg.Keys.Fire,
			Muzzle: cfg.Projectile.Muzzle,
		},
		Sprite{Shape: ShapeSquare, Color: playerColor},
	)

	storage.Spawn(
		Transform{Position: cfg.Camera.Position.Add(cfg.Score.Offset)},
		ScoreDisplay{Offset: cfg.Score.Offset},
		Sprite{Shape: ShapeText, Color: textColor, Layer: cfg.Score.Layer},
	)

	for _, x := range cfg.Target.Row {
		storage.Spawn(
			Transform{Position: vec.New(x, cfg.Target.Y)},
			Body{Size: cfg.Target.Size},
			Target{Points: cfg.Target.Points},
			Sprite{Shape: ShapeCircle, Color: targetColor},
		)
	}
}

func spawnProjectile(commands *ecs.Commands, cfg ProjectileConfig, firedBy ecs.EntityId, at vec.Vector) {
	commands.Spawn(
		Transform{Position: at},
		Motion{Direction: cfg.Direction, Speed: cfg.Speed, Normalized: true},
		Body{Size: cfg.Size},
		Projectile{FiredBy: firedBy},
		Sprite{Shape: ShapeCircle, Color: projectileColor},
	)
}

// World is a ready-to-run gallery: storage, scheduler and score keeping.
// Frontends feed it key events and call Scheduler.Once / PreRender.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Scores    *ScoreSystem
	Config    Config
}

// NewWorld builds the scene described by cfg. The SceneStarted event is
// queued and handled by the first tick.
func NewWorld(cfg Config, store ScoreStore) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	storage.AddSingleton(cfg)
	storage.AddSingleton(Camera{Position: cfg.Camera.Position, Width: cfg.Camera.Width})
	storage.AddSingleton(ScoreBoard{})

	scheduler := ecs.NewScheduler(storage)
	scores := NewScoreSystem(store)

	scheduler.RegisterHandler(&PlayerControlSystem{})
	scheduler.RegisterHandler(&RestartSystem{})
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&TargetSystem{})
	scheduler.Register(&CullSystem{})
	scheduler.RegisterStage(ecs.StagePreRender, scores)
	scheduler.RegisterStage(ecs.StagePreRender, &ScoreDisplaySystem{})

	Populate(storage, cfg)
	scheduler.Signal(ecs.SceneStarted{})

	log.Printf("[World] Scene ready: %d entities, %d targets", storage.Count(), len(cfg.Target.Row))
	return &World{
		Storage:   storage,
		Scheduler: scheduler,
		Scores:    scores,
		Config:    cfg,
	}, nil
}

// Board returns the live score board.
func (w *World) Board() *ScoreBoard {
	return ecs.NewSingleton[ScoreBoard](w.Storage).Get()
}

// Camera returns the live camera.
func (w *World) Camera() *Camera {
	return ecs.NewSingleton[Camera](w.Storage).Get()
}

// Close records the round in progress.
func (w *World) Close() error {
	if err := w.Scores.Record(); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}
	return nil
}
