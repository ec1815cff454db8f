package kinematic

import rl "github.com/gen2brain/raylib-go/raylib"

// Contact is the result of one sweep that hit something.
type Contact struct {
	Collider         Collider // nil when the host has no object to hand out
	ColliderID       uint64
	ColliderVelocity rl.Vector3
	ColliderShape    Shape
	LocalShape       Shape
	Normal           rl.Vector3
	Position         rl.Vector3
	Remainder        rl.Vector3
	Travel           rl.Vector3
}

// RayHit is the closest surface a ray query reached.
type RayHit struct {
	Position   rl.Vector3
	Normal     rl.Vector3
	ColliderID uint64
}

func (c Contact) same(o Contact) bool {
	return c.ColliderID == o.ColliderID &&
		c.LocalShape == o.LocalShape &&
		c.ColliderShape == o.ColliderShape &&
		c.Normal == o.Normal &&
		c.Position == o.Position &&
		c.Remainder == o.Remainder &&
		c.Travel == o.Travel
}

// appendContact adds c unless an identical contact is already present.
func appendContact(contacts []Contact, c Contact) []Contact {
	for _, existing := range contacts {
		if existing.same(c) {
			return contacts
		}
	}
	return append(contacts, c)
}
