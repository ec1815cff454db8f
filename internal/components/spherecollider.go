package components

import (
	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("SphereCollider", func() engine.Serializable {
		return NewSphereCollider(0.5)
	})
}

type SphereCollider struct {
	engine.BaseComponent
	Name   string
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius}
}

func (s *SphereCollider) Shape() kinematic.Shape {
	return kinematic.Shape{Name: s.Name, Kind: kinematic.ShapeSphere}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), worldOffset(g, s.Offset))
}

// GetWorldRadius scales the radius by the largest scale axis.
func (s *SphereCollider) GetWorldRadius() float32 {
	return s.Radius * maxAbs(s.GetGameObject().WorldScale())
}

// TypeName implements engine.Serializable
func (s *SphereCollider) TypeName() string {
	return "SphereCollider"
}

// Serialize implements engine.Serializable
func (s *SphereCollider) Serialize() map[string]any {
	data := map[string]any{
		"radius": s.Radius,
		"offset": engine.Vec3Prop(s.Offset),
	}
	if s.Name != "" {
		data["name"] = s.Name
	}
	return data
}

// Deserialize implements engine.Serializable
func (s *SphereCollider) Deserialize(data map[string]any) error {
	return deserializeAll(
		engine.PropString(data, "name", &s.Name),
		engine.PropFloat(data, "radius", &s.Radius),
		engine.PropVec3(data, "offset", &s.Offset),
	)
}
