package components

import (
	"charmove3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Mover", func() engine.Serializable {
		return NewMover()
	})
}

// Mover drives a kinematic Rigidbody back and forth between its start
// position and Start+Travel. Characters standing on it inherit its velocity.
type Mover struct {
	engine.BaseComponent
	Travel rl.Vector3
	Speed  float32

	origin  rl.Vector3
	forward bool
}

func NewMover() *Mover {
	return &Mover{Speed: 2}
}

func (m *Mover) Start() {
	m.origin = m.GetGameObject().Transform.Position
	m.forward = true
	if rb := engine.GetComponent[*Rigidbody](m.GetGameObject()); rb != nil {
		rb.IsKinematic = true
		rb.UseGravity = false
		rb.CanSleep = false
	}
}

// FixedUpdate aims the rigidbody at the current end point, turning around
// once the next step would overshoot it.
func (m *Mover) FixedUpdate(deltaTime float32) {
	g := m.GetGameObject()
	rb := engine.GetComponent[*Rigidbody](g)
	if rb == nil || m.Speed <= 0 || deltaTime <= 0 {
		return
	}

	target := m.origin
	if m.forward {
		target = rl.Vector3Add(m.origin, m.Travel)
	}

	toTarget := rl.Vector3Subtract(target, g.Transform.Position)
	dist := rl.Vector3Length(toTarget)
	if dist <= m.Speed*deltaTime {
		m.forward = !m.forward
		rb.Velocity = rl.Vector3Scale(toTarget, 1/deltaTime)
		return
	}
	rb.Velocity = rl.Vector3Scale(toTarget, m.Speed/dist)
}

// TypeName implements engine.Serializable
func (m *Mover) TypeName() string {
	return "Mover"
}

// Serialize implements engine.Serializable
func (m *Mover) Serialize() map[string]any {
	return map[string]any{
		"travel": engine.Vec3Prop(m.Travel),
		"speed":  m.Speed,
	}
}

// Deserialize implements engine.Serializable
func (m *Mover) Deserialize(data map[string]any) error {
	return deserializeAll(
		engine.PropVec3(data, "travel", &m.Travel),
		engine.PropFloat(data, "speed", &m.Speed),
	)
}
