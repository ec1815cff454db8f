package physics

import (
	"testing"

	"charmove3d/internal/components"
	"charmove3d/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1.0 / 60.0)

type collisionRecorder struct {
	engine.BaseComponent
	entered []*engine.GameObject
	exited  []*engine.GameObject
}

func (r *collisionRecorder) OnCollisionEnter(other *engine.GameObject) {
	r.entered = append(r.entered, other)
}

func (r *collisionRecorder) OnCollisionExit(other *engine.GameObject) {
	r.exited = append(r.exited, other)
}

func TestAddObjectSortsByComponents(t *testing.T) {
	p := NewWorld()

	floor := newFloor()
	crate := withRigidbody(newBox("Crate", vec(0, 1, 0), vec(1, 1, 1)), nil)
	lift := withRigidbody(newBox("Lift", vec(0, 1, 0), vec(1, 1, 1)), func(rb *components.Rigidbody) {
		rb.IsKinematic = true
	})
	hero := newCapsule("Hero", vec(0, 1, 0), 0.4, 1.8)
	hero.AddComponent(components.NewCharacterController())
	ghost := engine.NewGameObject("Ghost")

	for _, g := range []*engine.GameObject{floor, crate, lift, hero, ghost} {
		p.AddObject(g)
	}

	assert.Equal(t, []*engine.GameObject{floor}, p.Statics)
	assert.Equal(t, []*engine.GameObject{crate}, p.Objects)
	assert.Equal(t, []*engine.GameObject{lift}, p.Kinematics)
	assert.Equal(t, []*engine.GameObject{hero}, p.Characters)
	assert.Equal(t, 1, p.DynamicObjectCount())

	p.RemoveObject(crate)
	p.RemoveObject(hero)
	assert.Empty(t, p.Objects)
	assert.Empty(t, p.Characters)
	assert.Len(t, p.Statics, 1)
}

func TestUpdateIgnoresBadDelta(t *testing.T) {
	p := NewWorld()
	ball := withRigidbody(newSphere("Ball", vec(0, 5, 0), 0.5), nil)
	p.AddObject(ball)

	p.Update(0)
	p.Update(-1)
	assert.Equal(t, vec(0, 5, 0), ball.Transform.Position)
}

func TestDynamicBodyFallsAndSleeps(t *testing.T) {
	p := NewWorld()
	p.AddObject(newFloor())
	ball := withRigidbody(newSphere("Ball", vec(0, 3, 0), 0.5), nil)
	p.AddObject(ball)
	rb := engine.GetComponent[*components.Rigidbody](ball)

	p.Update(dt)
	assert.Less(t, rb.Velocity.Y, float32(0))
	assert.Less(t, ball.Transform.Position.Y, float32(3))

	for i := 0; i < 600; i++ {
		p.Update(dt)
	}
	assert.InDelta(t, 0.5, ball.Transform.Position.Y, 0.05)
	assert.True(t, rb.IsSleeping)
	assert.Equal(t, vec(0, 0, 0), rb.Velocity)
}

func TestCustomGravity(t *testing.T) {
	p := NewWorld()
	p.SetGravity(vec(2, 0, 0))
	assert.Equal(t, vec(2, 0, 0), p.Gravity())

	ball := withRigidbody(newSphere("Ball", vec(0, 0, 0), 0.5), func(rb *components.Rigidbody) {
		rb.LinearDamping = 0
	})
	p.AddObject(ball)
	p.Update(0.5)

	rb := engine.GetComponent[*components.Rigidbody](ball)
	assertVec(t, vec(1, 0, 0), rb.Velocity, tol)
	assertVec(t, vec(0.5, 0, 0), ball.Transform.Position, tol)
}

func TestDynamicBodiesSeparateByMass(t *testing.T) {
	p := NewWorld()
	light := withRigidbody(newSphere("Light", vec(0, 5, 0), 0.5), func(rb *components.Rigidbody) {
		rb.UseGravity = false
	})
	heavy := withRigidbody(newSphere("Heavy", vec(0.8, 5, 0), 0.5), func(rb *components.Rigidbody) {
		rb.UseGravity = false
		rb.Mass = 3
	})
	p.AddObject(light)
	p.AddObject(heavy)

	p.Update(dt)

	// The light ball takes three quarters of the 0.2 overlap.
	assert.InDelta(t, -0.15, light.Transform.Position.X, tol)
	assert.InDelta(t, 0.85, heavy.Transform.Position.X, tol)
}

func TestKinematicBodyFollowsVelocity(t *testing.T) {
	p := NewWorld()
	lift := withRigidbody(newBox("Lift", vec(0, 0, 0), vec(2, 0.2, 2)), func(rb *components.Rigidbody) {
		rb.IsKinematic = true
		rb.Velocity = vec(0, 1, 0)
	})
	p.AddObject(lift)

	for i := 0; i < 60; i++ {
		p.Update(dt)
	}
	assert.InDelta(t, 1, lift.Transform.Position.Y, tol)
}

func TestPlatformPushesCharacterOut(t *testing.T) {
	p := NewWorld()
	lift := withRigidbody(newBox("Lift", vec(0, -0.1, 0), vec(2, 0.2, 2)), func(rb *components.Rigidbody) {
		rb.IsKinematic = true
		rb.Velocity = vec(0, 6, 0)
	})
	hero := newBox("Hero", vec(0, 0.9, 0), vec(0.6, 1.8, 0.6))
	hero.AddComponent(components.NewCharacterController())
	p.AddObject(lift)
	p.AddObject(hero)

	p.Update(dt)

	// The lift rose 0.1 into the hero's feet.
	assert.InDelta(t, 1.0+SafeMargin, hero.Transform.Position.Y, tol)
}

func TestDynamicBodyRestsOnCharacter(t *testing.T) {
	p := NewWorld()
	hero := newBox("Hero", vec(0, 0.9, 0), vec(0.6, 1.8, 0.6))
	hero.AddComponent(components.NewCharacterController())
	crate := withRigidbody(newBox("Crate", vec(0, 2.25, 0), vec(0.6, 1, 0.6)), func(rb *components.Rigidbody) {
		rb.UseGravity = false
		rb.Velocity = vec(0, -1, 0)
	})
	p.AddObject(hero)
	p.AddObject(crate)

	p.Update(dt)

	assert.InDelta(t, 0.9, hero.Transform.Position.Y, tol, "characters do not yield")
	assert.GreaterOrEqual(t, crate.Transform.Position.Y, float32(2.3-tol))
	rb := engine.GetComponent[*components.Rigidbody](crate)
	assert.GreaterOrEqual(t, rb.Velocity.Y, float32(0))
}

func TestCollisionCallbacks(t *testing.T) {
	p := NewWorld()
	floor := newFloor()
	p.AddObject(floor)

	ball := withRigidbody(newSphere("Ball", vec(0, 0.45, 0), 0.5), func(rb *components.Rigidbody) {
		rb.UseGravity = false
	})
	rec := &collisionRecorder{}
	ball.AddComponent(rec)
	p.AddObject(ball)

	p.Update(dt)
	require.Len(t, rec.entered, 1)
	assert.Same(t, floor, rec.entered[0])
	assert.Empty(t, rec.exited)
	assert.InDelta(t, 0.5, ball.Transform.Position.Y, tol)

	ball.Transform.Position.Y = 2
	p.Update(dt)
	require.Len(t, rec.exited, 1)
	assert.Same(t, floor, rec.exited[0])
	assert.Len(t, rec.entered, 1)
}

func TestRemoveObjectDropsContactsSilently(t *testing.T) {
	p := NewWorld()
	floor := newFloor()
	p.AddObject(floor)

	ball := withRigidbody(newSphere("Ball", vec(0, 0.45, 0), 0.5), func(rb *components.Rigidbody) {
		rb.UseGravity = false
	})
	rec := &collisionRecorder{}
	ball.AddComponent(rec)
	p.AddObject(ball)

	p.Update(dt)
	require.Len(t, rec.entered, 1)

	p.RemoveObject(ball)
	p.Update(dt)
	assert.Empty(t, rec.exited)
}
