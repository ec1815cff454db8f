package components

import (
	"testing"

	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

const (
	dt  = float32(1.0 / 60.0)
	tol = 1e-3
)

func vec(x, y, z float32) rl.Vector3 { return rl.Vector3{X: x, Y: y, Z: z} }

func assertVec(t *testing.T, want, got rl.Vector3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

// flatWorld is an endless floor at y=0 that point bodies stand on.
type flatWorld struct {
	gravity rl.Vector3
	rays    int
	hitRay  bool
}

func newFlatWorld() *flatWorld {
	return &flatWorld{gravity: vec(0, -9.8, 0)}
}

func (w *flatWorld) Gravity() rl.Vector3 { return w.gravity }

func (w *flatWorld) SpaceFor(g *engine.GameObject) kinematic.Space { return floorSpace{} }

func (w *flatWorld) Raycast(from, to rl.Vector3, exclude ...uint64) (engine.RaycastResult, bool) {
	w.rays++
	if !w.hitRay {
		return engine.RaycastResult{}, false
	}
	mid := rl.Vector3Lerp(from, to, 0.5)
	return engine.RaycastResult{Point: mid, Distance: rl.Vector3Distance(from, mid)}, true
}

type floorSpace struct{}

type floorCollider struct{}

func (floorCollider) ID() uint64           { return 1 }
func (floorCollider) Velocity() rl.Vector3 { return rl.Vector3{} }

func (floorSpace) Sweep(origin, motion rl.Vector3) (kinematic.Contact, bool) {
	if motion.Y >= 0 || origin.Y+motion.Y > 0 {
		return kinematic.Contact{}, false
	}
	t := max(0, origin.Y/-motion.Y)
	travel := rl.Vector3Scale(motion, t)
	return kinematic.Contact{
		Collider:   floorCollider{},
		ColliderID: 1,
		Normal:     vec(0, 1, 0),
		Position:   rl.Vector3Add(origin, travel),
		Travel:     travel,
		Remainder:  rl.Vector3Subtract(motion, travel),
	}, true
}

func (floorSpace) Raycast(from, to rl.Vector3) (kinematic.RayHit, bool) {
	if from.Y < 0 || to.Y > 0 || from.Y == to.Y {
		return kinematic.RayHit{}, false
	}
	t := from.Y / (from.Y - to.Y)
	return kinematic.RayHit{
		Position:   rl.Vector3Lerp(from, to, t),
		Normal:     vec(0, 1, 0),
		ColliderID: 1,
	}, true
}

// spawn adds g to a scene, hands it the world and starts it.
func spawn(w engine.WorldAccess, objects ...*engine.GameObject) *engine.Scene {
	scene := engine.NewScene("Test")
	for _, g := range objects {
		scene.AddGameObject(g)
		for _, aware := range engine.GetComponents[engine.WorldAware](g) {
			aware.SetWorld(w)
		}
	}
	scene.Start()
	return scene
}
