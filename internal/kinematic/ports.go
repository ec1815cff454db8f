package kinematic

import rl "github.com/gen2brain/raylib-go/raylib"

// Body is the transform the controller moves.
type Body interface {
	Position() rl.Vector3
	SetPosition(p rl.Vector3)
}

// Space answers collision queries on behalf of one body. Implementations
// exclude the body itself from every query.
type Space interface {
	// Sweep tests moving the body's shape from origin by motion without
	// moving it, and reports the first surface in the way.
	Sweep(origin, motion rl.Vector3) (Contact, bool)
	// Raycast returns the closest surface between from and to.
	Raycast(from, to rl.Vector3) (RayHit, bool)
}

// Collider is something a contact can refer to.
type Collider interface {
	ID() uint64
	Velocity() rl.Vector3
}

// Pushable is a dynamic obstacle the controller may shove.
type Pushable interface {
	Collider
	Mass() float32
	Position() rl.Vector3
	// ApplyImpulse applies impulse at offset from the obstacle's origin.
	ApplyImpulse(offset, impulse rl.Vector3)
}
