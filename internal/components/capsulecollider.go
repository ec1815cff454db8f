package components

import (
	"fmt"

	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("CapsuleCollider", func() engine.Serializable {
		return NewCapsuleCollider(0.4, 1.8)
	})
}

// CapsuleCollider is a capsule standing along the object's local Y axis.
// Height includes both hemispherical caps.
type CapsuleCollider struct {
	engine.BaseComponent
	Name   string
	Radius float32
	Height float32
	Offset rl.Vector3
}

func NewCapsuleCollider(radius, height float32) *CapsuleCollider {
	return &CapsuleCollider{Radius: radius, Height: height}
}

func (c *CapsuleCollider) Shape() kinematic.Shape {
	return kinematic.Shape{Name: c.Name, Kind: kinematic.ShapeCapsule}
}

// GetCenter returns the world-space center of this collider
func (c *CapsuleCollider) GetCenter() rl.Vector3 {
	g := c.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), worldOffset(g, c.Offset))
}

// GetWorldRadius scales the radius by the larger horizontal scale axis.
func (c *CapsuleCollider) GetWorldRadius() float32 {
	s := c.GetGameObject().WorldScale()
	return c.Radius * max(absf(s.X), absf(s.Z))
}

// Segment returns the world-space end points of the capsule's inner line.
func (c *CapsuleCollider) Segment() (a, b rl.Vector3) {
	g := c.GetGameObject()
	center := c.GetCenter()

	half := c.Height/2*absf(g.WorldScale().Y) - c.GetWorldRadius()
	if half < 0 {
		half = 0
	}
	axis := rl.Vector3Transform(rl.Vector3{Y: 1}, g.WorldMatrix())
	axis = rl.Vector3Scale(rl.Vector3Normalize(axis), half)
	return rl.Vector3Subtract(center, axis), rl.Vector3Add(center, axis)
}

// TypeName implements engine.Serializable
func (c *CapsuleCollider) TypeName() string {
	return "CapsuleCollider"
}

// Serialize implements engine.Serializable
func (c *CapsuleCollider) Serialize() map[string]any {
	data := map[string]any{
		"radius": c.Radius,
		"height": c.Height,
		"offset": engine.Vec3Prop(c.Offset),
	}
	if c.Name != "" {
		data["name"] = c.Name
	}
	return data
}

// Deserialize implements engine.Serializable
func (c *CapsuleCollider) Deserialize(data map[string]any) error {
	err := deserializeAll(
		engine.PropString(data, "name", &c.Name),
		engine.PropFloat(data, "radius", &c.Radius),
		engine.PropFloat(data, "height", &c.Height),
		engine.PropVec3(data, "offset", &c.Offset),
	)
	if err != nil {
		return err
	}
	if c.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %g", c.Radius)
	}
	return nil
}
