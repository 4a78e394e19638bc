package gallery

import (
	"errors"
	"fmt"
	"os"

	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/vec"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the game. Zero-config runs use DefaultConfig;
// a YAML file may override any subset of it.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Arena      ArenaConfig      `yaml:"arena"`
	Keys       KeyConfig        `yaml:"keys"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Target     TargetConfig     `yaml:"target"`
	Score      ScoreConfig      `yaml:"score"`
	Storage    StorageConfig    `yaml:"storage"`
}

// WindowConfig sizes and titles the graphical window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CameraConfig places the camera and sets how many world units it spans.
type CameraConfig struct {
	Position vec.Vector `yaml:"position"`
	Width    float64    `yaml:"width"`
}

// ArenaConfig bounds the playfield around the origin. Projectiles further
// than Margin outside it are removed.
type ArenaConfig struct {
	HalfWidth  float64 `yaml:"halfWidth"`
	HalfHeight float64 `yaml:"halfHeight"`
	Margin     float64 `yaml:"margin"`
}

// KeyConfig binds the game actions to keys.
type KeyConfig struct {
	Left    ecs.Key `yaml:"left"`
	Right   ecs.Key `yaml:"right"`
	Fire    ecs.Key `yaml:"fire"`
	Restart ecs.Key `yaml:"restart"`
}

// PlayerConfig sets where the player starts and how fast it moves.
type PlayerConfig struct {
	Position vec.Vector `yaml:"position"`
	Speed    float64    `yaml:"speed"`
	Size     float64    `yaml:"size"`
}

// ProjectileConfig describes the shots the player fires.
type ProjectileConfig struct {
	Direction vec.Vector `yaml:"direction"`
	Muzzle    vec.Vector `yaml:"muzzle"` // spawn offset from the player
	Speed     float64    `yaml:"speed"`
	Size      float64    `yaml:"size"`
}

// TargetConfig lays out the row of targets and what each is worth.
type TargetConfig struct {
	Row    []float64 `yaml:"row"` // x positions
	Y      float64   `yaml:"y"`
	Size   float64   `yaml:"size"`
	Points int       `yaml:"points"`
}

// ScoreConfig positions the score overlay.
type ScoreConfig struct {
	Offset   vec.Vector `yaml:"offset"` // from the camera position
	Layer    int        `yaml:"layer"`
	FontSize float64    `yaml:"fontSize"`
}

// StorageConfig controls high-score persistence.
type StorageConfig struct {
	AppName  string `yaml:"appName"`
	Disabled bool   `yaml:"disabled"`
}

// DefaultConfig returns the stock gallery: five targets in a row above a
// player at the bottom of a 16×12 unit view.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Shooting Gallery",
		},
		Camera: CameraConfig{
			Width: 16,
		},
		Arena: ArenaConfig{
			HalfWidth:  8,
			HalfHeight: 6,
			Margin:     1,
		},
		Keys: KeyConfig{
			Left:    ecs.KeyLeft,
			Right:   ecs.KeyRight,
			Fire:    ecs.KeySpace,
			Restart: ecs.KeyR,
		},
		Player: PlayerConfig{
			Position: vec.New(0, -3),
			Speed:    4,
			Size:     1,
		},
		Projectile: ProjectileConfig{
			Direction: vec.New(0, 1),
			Muzzle:    vec.New(0, 0.5),
			Speed:     6,
			Size:      0.25,
		},
		Target: TargetConfig{
			Row:    []float64{-4, -2, 0, 2, 4},
			Y:      3,
			Size:   1,
			Points: 10,
		},
		Score: ScoreConfig{
			Offset:   vec.New(-4, 5),
			Layer:    100,
			FontSize: 24,
		},
		Storage: StorageConfig{
			AppName: "shooting_gallery",
		},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. An empty path yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", name, v))
		}
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	positive("camera.width", c.Camera.Width)
	positive("arena.halfWidth", c.Arena.HalfWidth)
	positive("arena.halfHeight", c.Arena.HalfHeight)
	if c.Arena.Margin < 0 {
		errs = append(errs, fmt.Errorf("arena.margin must not be negative, got %g", c.Arena.Margin))
	}
	positive("player.speed", c.Player.Speed)
	positive("player.size", c.Player.Size)
	positive("projectile.speed", c.Projectile.Speed)
	positive("projectile.size", c.Projectile.Size)
	positive("target.size", c.Target.Size)

	if c.Projectile.Direction.IsZero() {
		errs = append(errs, errors.New("projectile.direction must not be zero"))
	}
	if len(c.Target.Row) == 0 {
		errs = append(errs, errors.New("target.row must list at least one target"))
	}
	if c.Target.Points < 0 {
		errs = append(errs, fmt.Errorf("target.points must not be negative, got %d", c.Target.Points))
	}

	keys := map[ecs.Key]string{}
	for name, k := range map[string]ecs.Key{
		"left": c.Keys.Left, "right": c.Keys.Right, "fire": c.Keys.Fire, "restart": c.Keys.Restart,
	} {
		if k == ecs.KeyUnknown {
			errs = append(errs, fmt.Errorf("keys.%s is not set", name))
			continue
		}
		if other, dup := keys[k]; dup {
			errs = append(errs, fmt.Errorf("keys.%s and keys.%s are both bound to %s", name, other, k))
		}
		keys[k] = name
	}

	return errors.Join(errs...)
}
