package physics

import (
	"testing"

	"charmove3d/internal/kinematic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ballVolume(center rl.Vector3) []Volume {
	return []Volume{SphereVolume(center, 0.5, kinematic.Shape{Name: "ball", Kind: kinematic.ShapeSphere})}
}

func TestSweepStopsAtFloor(t *testing.T) {
	p := NewWorld()
	floor := newFloor()
	p.AddObject(floor)

	hit, ok := p.Sweep(ballVolume(vec(0, 2, 0)), vec(0, -3, 0))
	require.True(t, ok)

	assert.Same(t, floor, hit.Object)
	assert.InDelta(t, 0.5, hit.Fraction, 2e-3)
	assert.LessOrEqual(t, hit.Fraction, float32(0.5))
	assertVec(t, vec(0, 1, 0), hit.Normal, 1e-2)
	assertVec(t, vec(0, 0, 0), hit.Point, 1e-2)
	assert.Equal(t, kinematic.ShapeBox, hit.Shape.Kind)
	assert.Equal(t, "ball", hit.Local.Name)
}

func TestSweepMisses(t *testing.T) {
	p := NewWorld()
	floor := newFloor()
	p.AddObject(floor)

	_, ok := p.Sweep(ballVolume(vec(0, 2, 0)), vec(5, 0, 0))
	assert.False(t, ok, "parallel to the floor")

	_, ok = p.Sweep(ballVolume(vec(0, 2, 0)), vec(0, -1, 0))
	assert.False(t, ok, "stops short of the floor")

	_, ok = p.Sweep(ballVolume(vec(0, 2, 0)), vec(0, -3, 0), floor.UID)
	assert.False(t, ok, "floor excluded")

	_, ok = p.Sweep(ballVolume(vec(0, 2, 0)), vec(0, 0, 0))
	assert.False(t, ok, "no motion")

	_, ok = p.Sweep(nil, vec(0, -3, 0))
	assert.False(t, ok, "no volumes")
}

func TestSweepStartingInPenetration(t *testing.T) {
	p := NewWorld()
	p.AddObject(newFloor())

	sunk := ballVolume(vec(0, 0.3, 0))

	_, ok := p.Sweep(sunk, vec(0, 1, 0))
	assert.False(t, ok, "moving out of the floor is free")

	_, ok = p.Sweep(sunk, vec(1, 0, 0))
	assert.False(t, ok, "moving along the floor is free")

	hit, ok := p.Sweep(sunk, vec(0, -1, 0))
	require.True(t, ok, "moving further in is blocked")
	assert.Equal(t, float32(0), hit.Fraction)
	assertVec(t, vec(0, 1, 0), hit.Normal, 1e-2)
}

func TestSweepFindsNearestObstacle(t *testing.T) {
	p := NewWorld()
	near := newBox("Near", vec(3, 0.5, 0), vec(1, 1, 1))
	far := newBox("Far", vec(6, 0.5, 0), vec(1, 1, 1))
	p.AddObject(far)
	p.AddObject(near)

	hit, ok := p.Sweep(ballVolume(vec(0, 0.5, 0)), vec(10, 0, 0))
	require.True(t, ok)
	assert.Same(t, near, hit.Object)
	// Ball surface meets the box face at x=2.5 after moving 2.
	assert.InDelta(t, 0.2, hit.Fraction, 2e-3)
	assertVec(t, vec(-1, 0, 0), hit.Normal, 1e-2)
}

func TestSweepThinObstacleIsNotTunnelled(t *testing.T) {
	p := NewWorld()
	wall := newBox("Wall", vec(5, 0.5, 0), vec(0.05, 2, 4))
	p.AddObject(wall)

	hit, ok := p.Sweep(ballVolume(vec(0, 0.5, 0)), vec(10, 0, 0))
	require.True(t, ok)
	assert.Same(t, wall, hit.Object)
	assert.InDelta(t, 0.4475, hit.Fraction, 2e-3)
}

func TestSweepGravityStepReportsFloorNormal(t *testing.T) {
	p := NewWorld()
	p.AddObject(newFloor())

	// Resting a sweep margin above the floor, one tick of gravity lands a
	// hair inside it.
	body := []Volume{BoxVolume(NewAABBasOBB(vec(0, 0.9+SafeMargin, 0), vec(0.6, 1.8, 0.6)), kinematic.Shape{Kind: kinematic.ShapeBox})}
	hit, ok := p.Sweep(body, vec(0.0333, -0.0027, 0))
	require.True(t, ok)
	assertVec(t, vec(0, 1, 0), hit.Normal, 1e-3)
	assert.Less(t, hit.Fraction, float32(0.37))
}
