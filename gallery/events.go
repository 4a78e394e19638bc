package gallery

import (
	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/vec"
)

// TargetDestroyed is signalled when a projectile hits a target. Both
// entities have already been deleted when handlers see it.
type TargetDestroyed struct {
	Target     ecs.EntityId
	Projectile ecs.EntityId
	Points     int
	Position   vec.Vector
}

// ProjectileFired is signalled when a player shoots.
type ProjectileFired struct {
	Player   ecs.EntityId
	Position vec.Vector
}

// RoundOver ends the current round. Cleared is true when the last target
// was destroyed, false when the player restarted early.
type RoundOver struct {
	Cleared bool
}
