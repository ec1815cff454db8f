package components

import (
	"charmove3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Rigidbody", func() engine.Serializable {
		return NewRigidbody()
	})
}

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity      rl.Vector3
	Mass          float32
	Bounciness    float32 // 0 = no bounce, 1 = perfect bounce
	Friction      float32 // 0 = ice, 1 = stops immediately
	LinearDamping float32 // fraction of velocity lost per second
	UseGravity    bool
	IsKinematic   bool // moves by its velocity but doesn't get pushed by physics

	// Sleep state - sleeping objects skip physics simulation
	IsSleeping bool
	sleepTimer float32 // time spent below velocity threshold
	CanSleep   bool    // whether this object can sleep (default true)
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:          1.0,
		Bounciness:    0.2,
		Friction:      0.1,
		LinearDamping: 0.05,
		UseGravity:    true,
		CanSleep:      true,
	}
}

// InverseMass is zero for kinematic or massless bodies.
func (r *Rigidbody) InverseMass() float32 {
	if r.IsKinematic || r.Mass <= 0 {
		return 0
	}
	return 1 / r.Mass
}

// ApplyImpulse changes the velocity by impulse/mass and wakes the body.
// Kinematic bodies ignore impulses.
func (r *Rigidbody) ApplyImpulse(impulse rl.Vector3) {
	inv := r.InverseMass()
	if inv == 0 {
		return
	}
	r.Velocity = rl.Vector3Add(r.Velocity, rl.Vector3Scale(impulse, inv))
	r.Wake()
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	if rl.Vector3Length(r.Velocity) >= SleepVelocityThreshold {
		r.sleepTimer = 0
		return
	}

	r.sleepTimer += deltaTime

	// Apply extra damping when nearly at rest to reduce jitter
	r.Velocity = rl.Vector3Scale(r.Velocity, 0.9)

	if r.sleepTimer >= SleepTimeThreshold {
		r.IsSleeping = true
		r.Velocity = rl.Vector3{}
	}
}

// TypeName implements engine.Serializable
func (r *Rigidbody) TypeName() string {
	return "Rigidbody"
}

// Serialize implements engine.Serializable
func (r *Rigidbody) Serialize() map[string]any {
	return map[string]any{
		"mass":          r.Mass,
		"bounciness":    r.Bounciness,
		"friction":      r.Friction,
		"linearDamping": r.LinearDamping,
		"useGravity":    r.UseGravity,
		"isKinematic":   r.IsKinematic,
		"canSleep":      r.CanSleep,
		"velocity":      engine.Vec3Prop(r.Velocity),
	}
}

// Deserialize implements engine.Serializable
func (r *Rigidbody) Deserialize(data map[string]any) error {
	return deserializeAll(
		engine.PropFloat(data, "mass", &r.Mass),
		engine.PropFloat(data, "bounciness", &r.Bounciness),
		engine.PropFloat(data, "friction", &r.Friction),
		engine.PropFloat(data, "linearDamping", &r.LinearDamping),
		engine.PropBool(data, "useGravity", &r.UseGravity),
		engine.PropBool(data, "isKinematic", &r.IsKinematic),
		engine.PropBool(data, "canSleep", &r.CanSleep),
		engine.PropVec3(data, "velocity", &r.Velocity),
	)
}
