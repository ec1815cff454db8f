package physics

import (
	"charmove3d/internal/components"
	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// bodySpace is the world as seen by one character: queries run with the
// character's own volumes and never report the character itself.
type bodySpace struct {
	world *World
	obj   *engine.GameObject
}

// SpaceFor returns a kinematic.Space that sweeps g's colliders.
func (p *World) SpaceFor(g *engine.GameObject) kinematic.Space {
	return &bodySpace{world: p, obj: g}
}

// Sweep translates the body's volumes to origin before sweeping, since the
// controller probes from positions the body is not at yet.
func (s *bodySpace) Sweep(origin, motion rl.Vector3) (kinematic.Contact, bool) {
	offset := rl.Vector3Subtract(origin, s.obj.WorldPosition())
	volumes := VolumesOf(s.obj)
	for i := range volumes {
		volumes[i] = volumes[i].Translate(offset)
	}

	hit, ok := s.world.Sweep(volumes, motion, s.obj.UID)
	if !ok {
		return kinematic.Contact{}, false
	}

	travel := rl.Vector3Scale(motion, hit.Fraction)
	return kinematic.Contact{
		Collider:         colliderFor(hit.Object),
		ColliderID:       hit.Object.UID,
		ColliderVelocity: velocityOf(hit.Object),
		ColliderShape:    hit.Shape,
		LocalShape:       hit.Local,
		Normal:           hit.Normal,
		Position:         hit.Point,
		Travel:           travel,
		Remainder:        rl.Vector3Subtract(motion, travel),
	}, true
}

func (s *bodySpace) Raycast(from, to rl.Vector3) (kinematic.RayHit, bool) {
	hit, ok := s.world.Raycast(from, to, s.obj.UID)
	if !ok {
		return kinematic.RayHit{}, false
	}
	return kinematic.RayHit{
		Position:   hit.Point,
		Normal:     hit.Normal,
		ColliderID: hit.GameObject.UID,
	}, true
}

// solidBody is an obstacle the controller cannot push.
type solidBody struct {
	obj *engine.GameObject
}

func (b solidBody) ID() uint64           { return b.obj.UID }
func (b solidBody) Velocity() rl.Vector3 { return velocityOf(b.obj) }

// rigidBody exposes a dynamic Rigidbody to the controller's push.
type rigidBody struct {
	obj *engine.GameObject
	rb  *components.Rigidbody
}

func (b rigidBody) ID() uint64           { return b.obj.UID }
func (b rigidBody) Velocity() rl.Vector3 { return b.rb.Velocity }
func (b rigidBody) Mass() float32        { return b.rb.Mass }
func (b rigidBody) Position() rl.Vector3 { return b.obj.WorldPosition() }

// ApplyImpulse changes linear velocity only; bodies carry no angular state
// so the offset is not used.
func (b rigidBody) ApplyImpulse(offset, impulse rl.Vector3) {
	b.rb.ApplyImpulse(impulse)
}

func colliderFor(g *engine.GameObject) kinematic.Collider {
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil && !rb.IsKinematic {
		return rigidBody{obj: g, rb: rb}
	}
	return solidBody{obj: g}
}

func velocityOf(g *engine.GameObject) rl.Vector3 {
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		return rb.Velocity
	}
	if cc := engine.GetComponent[*components.CharacterController](g); cc != nil {
		return cc.Velocity()
	}
	return rl.Vector3Zero()
}
