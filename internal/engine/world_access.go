package engine

import (
	"charmove3d/internal/kinematic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// WorldAccess provides components with access to world-level operations
// without creating circular import dependencies.
type WorldAccess interface {
	// Raycast returns the closest hit on the segment from..to, skipping
	// objects whose UID is listed in exclude.
	Raycast(from, to rl.Vector3, exclude ...uint64) (RaycastResult, bool)
	// SpaceFor returns the collision view of the world as seen by g.
	SpaceFor(g *GameObject) kinematic.Space
	Gravity() rl.Vector3
}
