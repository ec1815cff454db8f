package components

import (
	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("BoxCollider", func() engine.Serializable {
		return NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
	})
}

type BoxCollider struct {
	engine.BaseComponent
	Name   string
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{Size: size}
}

func (b *BoxCollider) Shape() kinematic.Shape {
	return kinematic.Shape{Name: b.Name, Kind: kinematic.ShapeBox}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), worldOffset(g, b.Offset))
}

// GetWorldSize returns the full extents with the object's scale applied.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return rl.Vector3{
		X: absf(b.Size.X * s.X),
		Y: absf(b.Size.Y * s.Y),
		Z: absf(b.Size.Z * s.Z),
	}
}

// TypeName implements engine.Serializable
func (b *BoxCollider) TypeName() string {
	return "BoxCollider"
}

// Serialize implements engine.Serializable
func (b *BoxCollider) Serialize() map[string]any {
	data := map[string]any{
		"size":   engine.Vec3Prop(b.Size),
		"offset": engine.Vec3Prop(b.Offset),
	}
	if b.Name != "" {
		data["name"] = b.Name
	}
	return data
}

// Deserialize implements engine.Serializable
func (b *BoxCollider) Deserialize(data map[string]any) error {
	return deserializeAll(
		engine.PropString(data, "name", &b.Name),
		engine.PropVec3(data, "size", &b.Size),
		engine.PropVec3(data, "offset", &b.Offset),
	)
}
