package kinematic

import rl "github.com/gen2brain/raylib-go/raylib"

// PushImpulse splits the body's velocity against an obstacle the way a 1D
// elastic collision would, then keeps only the part of the resulting
// contact velocity that is not along the contact surface. ok is false when
// the combined mass is not positive.
//
// TODO: the surface correction is hand tuned; check it against a
// momentum-conserving model before relying on pushed body speeds.
func PushImpulse(bodyMass, obstacleMass float32, velocity, colliderVelocity, normal rl.Vector3) (impulse rl.Vector3, ok bool) {
	total := bodyMass + obstacleMass
	if !(total > 0) {
		return zero, false
	}

	contactVelocity := rl.Vector3Add(
		rl.Vector3Scale(velocity, 2*bodyMass/total),
		rl.Vector3Scale(colliderVelocity, (obstacleMass-bodyMass)/total),
	)

	surface := rl.Vector3Normalize(slide(contactVelocity, normal))
	return slide(contactVelocity, surface), true
}
