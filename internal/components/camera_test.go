package components

import (
	"testing"

	"charmove3d/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCameraRig(w *flatWorld) (*engine.GameObject, *Camera, *Player) {
	hero, _ := newCharacter("Hero", 0)
	player := NewPlayer()
	hero.AddComponent(player)

	camObj := engine.NewGameObject("Camera")
	camObj.Transform.Position = vec(0, 0, 10)
	cam := NewCamera()
	cam.Target = "Hero"
	camObj.AddComponent(cam)

	spawn(w, hero, camObj)
	return camObj, cam, player
}

func TestCameraDrivesPlayerView(t *testing.T) {
	w := newFlatWorld()
	camObj, cam, player := newCameraRig(w)

	require.NotNil(t, cam.Orbit())
	assert.Same(t, cam.Orbit(), player.View)

	for i := 0; i < 120; i++ {
		cam.FixedUpdate(dt)
	}
	assert.Greater(t, w.rays, 0)
	assertVec(t, vec(0, 0, 10), camObj.Transform.Position, 0.01)
	assertVec(t, vec(0, 0, -1), player.View.Forward(), tol)

	rc := cam.GetRaylibCamera()
	assert.Equal(t, float32(45), rc.Fovy)
	assertVec(t, vec(0, 0, 0), rc.Target, tol)
}

func TestCameraPullsInFrontOfOccluder(t *testing.T) {
	w := newFlatWorld()
	w.hitRay = true
	camObj, cam, _ := newCameraRig(w)

	for i := 0; i < 60; i++ {
		cam.FixedUpdate(dt)
	}
	// The fake world reports a hit halfway along the 10 unit ray.
	assertVec(t, vec(0, 0, 4.5), camObj.Transform.Position, 0.01)
}

func TestCameraWithoutTarget(t *testing.T) {
	g := engine.NewGameObject("Camera")
	cam := NewCamera()
	cam.Target = "Nobody"
	g.AddComponent(cam)

	assert.Equal(t, float32(0), cam.GetRaylibCamera().Fovy)
	spawn(newFlatWorld(), g)

	cam.FixedUpdate(dt)
	cam.ApplyLook(10, 10)
	assert.Equal(t, vec(0, 0, 0), g.Transform.Position)
	assert.Equal(t, float32(45), cam.GetRaylibCamera().Fovy)
}

func TestCameraDeserialize(t *testing.T) {
	c, err := engine.CreateComponent("Camera", map[string]any{
		"fov":      60,
		"distance": 6,
		"follow":   false,
		"target":   "Hero",
		"isMain":   true,
	})
	require.NoError(t, err)
	cam := c.(*Camera)
	assert.Equal(t, float32(60), cam.FOV)
	assert.Equal(t, float32(6), cam.Distance)
	assert.False(t, cam.Follow)
	assert.Equal(t, "Hero", cam.Target)
	assert.True(t, cam.IsMain)
	assert.Equal(t, float32(0.25), cam.Sensitivity)
}
