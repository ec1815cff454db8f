package components

import (
	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collider is a collision shape attached to a GameObject. The physics world
// builds its volumes from every Collider on an object.
type Collider interface {
	engine.Component
	Shape() kinematic.Shape
}

// worldOffset rotates and scales a collider offset into world space.
func worldOffset(g *engine.GameObject, offset rl.Vector3) rl.Vector3 {
	s := g.WorldScale()
	scaled := rl.Vector3{X: offset.X * s.X, Y: offset.Y * s.Y, Z: offset.Z * s.Z}
	return rl.Vector3Transform(scaled, g.WorldMatrix())
}

func maxAbs(v rl.Vector3) float32 {
	m := absf(v.X)
	if y := absf(v.Y); y > m {
		m = y
	}
	if z := absf(v.Z); z > m {
		m = z
	}
	return m
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func deserializeAll(steps ...error) error {
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}
