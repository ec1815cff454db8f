package physics

import (
	"testing"

	"charmove3d/internal/components"
	"charmove3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-3

func vec(x, y, z float32) rl.Vector3 { return rl.Vector3{X: x, Y: y, Z: z} }

func assertVec(t *testing.T, want, got rl.Vector3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

func newBox(name string, pos, size rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(size))
	return g
}

func newSphere(name string, pos rl.Vector3, radius float32) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewSphereCollider(radius))
	return g
}

func newCapsule(name string, pos rl.Vector3, radius, height float32) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewCapsuleCollider(radius, height))
	return g
}

func withRigidbody(g *engine.GameObject, configure func(rb *components.Rigidbody)) *engine.GameObject {
	rb := components.NewRigidbody()
	if configure != nil {
		configure(rb)
	}
	g.AddComponent(rb)
	return g
}

// newFloor is a 40x1x40 slab whose top face is y=0.
func newFloor() *engine.GameObject {
	return newBox("Floor", vec(0, -0.5, 0), vec(40, 1, 40))
}
