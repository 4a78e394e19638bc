// Package gallery is a shooting gallery: a player at the bottom of the
// screen moves left and right and shoots at a row of targets for points.
package gallery

import (
	"fmt"
	"image/color"

	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/vec"
)

// Transform places an entity in the world, in game units.
type Transform struct {
	Position vec.Vector
}

// Motion moves an entity every tick by Direction × Speed × dt. Normalized
// movers use the unit vector of Direction, so only its heading matters.
type Motion struct {
	Direction  vec.Vector
	Speed      float64
	Normalized bool
}

// Body is the entity's size in game units. For targets it is also the hit radius.
type Body struct {
	Size float64
}

// Player is the keyboard-controlled shooter.
type Player struct {
	Left, Right, Fire ecs.Key
	Muzzle            vec.Vector

	leftHeld, rightHeld bool
}

// Projectile is fired by a player and travels until it hits a target or
// leaves the arena.
type Projectile struct {
	FiredBy ecs.EntityId
}

// Target is a stationary sprite worth Points when hit.
type Target struct {
	Points int
}

// ScoreDisplay is the score overlay. Its position follows the camera.
type ScoreDisplay struct {
	Score  int
	Best   int
	Offset vec.Vector
}

// Text is the current score line.
func (d ScoreDisplay) Text() string {
	return fmt.Sprintf("Score: %d", d.Score)
}

// BestText is the best score line.
func (d ScoreDisplay) BestText() string {
	return fmt.Sprintf("Best: %d", d.Best)
}

// Shape selects how a Sprite is drawn.
type Shape int

// Sprite shapes. ShapeText draws the entity's ScoreDisplay lines.
const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeText
)

// Sprite tells frontends how to draw an entity. Higher layers draw on top.
type Sprite struct {
	Shape Shape
	Color color.RGBA
	Layer int
}

// ScoreBoard is the score-tracking singleton.
type ScoreBoard struct {
	Top     int
	Last    int
	Current int
	Rounds  int

	// Recorded is set once the current round has been folded into Top/Last.
	Recorded bool
}

var (
	playerColor     = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	projectileColor = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	targetColor     = color.RGBA{R: 240, G: 80, B: 80, A: 255}
	textColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// RegisterComponents registers every gallery component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Motion](registry)
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Projectile](registry)
	ecs.RegisterComponent[Target](registry)
	ecs.RegisterComponent[ScoreDisplay](registry)
	ecs.RegisterComponent[Sprite](registry)
}
