package world

import (
	"testing"

	"charmove3d/internal/components"
	"charmove3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickCounter struct {
	engine.BaseComponent
	frames, fixed int
	lastFixed     float32
}

func (c *tickCounter) Update(float32) { c.frames++ }
func (c *tickCounter) FixedUpdate(dt float32) {
	c.fixed++
	c.lastFixed = dt
}

func newCounted(w *World) *tickCounter {
	g := engine.NewGameObject("Counter")
	c := &tickCounter{}
	g.AddComponent(c)
	w.Add(g)
	w.Start()
	return c
}

func TestTickAccumulates(t *testing.T) {
	w := New()
	w.FixedDelta = 0.01
	c := newCounted(w)

	assert.Equal(t, 0, w.Tick(0.004))
	assert.Equal(t, 0, w.Tick(0.004))
	assert.Equal(t, 1, w.Tick(0.004))
	assert.Equal(t, 3, w.Tick(0.03))

	assert.Equal(t, 4, c.fixed)
	assert.Equal(t, 4, c.frames)
	assert.Equal(t, float32(0.01), c.lastFixed)
	assert.Equal(t, uint64(4), w.Ticks())
}

func TestTickCapsSubsteps(t *testing.T) {
	w := New()
	w.FixedDelta = 0.01
	w.MaxSubsteps = 3
	c := newCounted(w)

	assert.Equal(t, 3, w.Tick(1))
	// The backlog is dropped rather than replayed.
	assert.Equal(t, 0, w.Tick(0.005))
	assert.Equal(t, 3, c.fixed)
}

func TestTickIgnoresBadDelta(t *testing.T) {
	w := New()
	c := newCounted(w)

	assert.Equal(t, 0, w.Tick(0))
	assert.Equal(t, 0, w.Tick(-1))
	assert.Zero(t, c.frames)

	w.FixedDelta = 0
	assert.Equal(t, 0, w.Tick(1))
	assert.Zero(t, c.fixed)
}

func TestStepMovesCharacterBeforeBodies(t *testing.T) {
	w := New()

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 40, Y: 1, Z: 40}))

	hero := engine.NewGameObject("Hero")
	hero.Transform.Position = rl.Vector3{Y: 1.5}
	hero.AddComponent(components.NewBoxCollider(rl.Vector3{X: 0.6, Y: 1.8, Z: 0.6}))
	cc := components.NewCharacterController()
	hero.AddComponent(cc)

	w.Add(floor)
	w.Add(hero)
	w.Start()
	require.NotNil(t, cc.Controller(), "Add hands the world to the controller before Start")

	for i := 0; i < 240; i++ {
		w.Step(DefaultFixedDelta)
	}
	assert.True(t, cc.Controller().IsOnFloor())
	assert.InDelta(t, 0.9, hero.Transform.Position.Y, 0.02)
	assert.Len(t, w.Physics.Characters, 1)
	assert.Len(t, w.Physics.Statics, 1)
}

func TestAddAndRemoveChildren(t *testing.T) {
	w := New()

	parent := engine.NewGameObject("Parent")
	parent.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	child := engine.NewGameObject("Child")
	child.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	parent.AddChild(child)

	w.Add(parent)
	w.SetColor(child, rl.Red)
	assert.Len(t, w.Scene.GameObjects, 2)
	assert.Len(t, w.Physics.Statics, 2)
	assert.Equal(t, rl.Red, w.ColorOf(child))
	assert.Equal(t, rl.LightGray, w.ColorOf(parent))

	w.Remove(parent)
	assert.Empty(t, w.Scene.GameObjects)
	assert.Empty(t, w.Physics.Statics)
	assert.Equal(t, rl.LightGray, w.ColorOf(child))
}

func TestResetKeepsGravity(t *testing.T) {
	w := New()
	w.Physics.SetGravity(rl.Vector3{Z: -3})
	newCounted(w)
	w.Step(w.FixedDelta)

	w.Reset()
	assert.Empty(t, w.Scene.GameObjects)
	assert.Zero(t, w.Ticks())
	assert.Equal(t, rl.Vector3{Z: -3}, w.Physics.Gravity())
}
