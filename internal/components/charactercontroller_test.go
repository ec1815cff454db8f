package components

import (
	"testing"

	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactRecorder struct {
	engine.BaseComponent
	contacts []kinematic.Contact
}

func (r *contactRecorder) OnContact(c kinematic.Contact) {
	r.contacts = append(r.contacts, c)
}

func newCharacter(name string, y float32) (*engine.GameObject, *CharacterController) {
	g := engine.NewGameObject(name)
	g.Transform.Position = vec(0, y, 0)
	cc := NewCharacterController()
	g.AddComponent(cc)
	return g, cc
}

func TestCharacterControllerFallsToFloor(t *testing.T) {
	g, cc := newCharacter("Hero", 1)
	rec := &contactRecorder{}
	g.AddComponent(rec)

	var events int
	cc.OnContact.AddListener(func(kinematic.Contact) { events++ })

	spawn(newFlatWorld(), g)
	require.NotNil(t, cc.Controller())

	for i := 0; i < 60 && !cc.Controller().IsOnFloor(); i++ {
		g.FixedUpdate(dt)
	}

	assert.True(t, cc.Controller().IsOnFloor())
	assert.Equal(t, kinematic.Bottom, cc.State())
	assert.InDelta(t, 0, g.Transform.Position.Y, tol)
	assert.InDelta(t, 0, cc.Velocity().Y, tol)
	require.NotEmpty(t, cc.Contacts())
	assert.Equal(t, uint64(1), cc.Contacts()[0].ColliderID)
	assert.Equal(t, len(rec.contacts), events)
	assert.NotZero(t, events)
}

func TestCharacterControllerUsesWorldGravity(t *testing.T) {
	g, cc := newCharacter("Hero", 1)
	w := newFlatWorld()
	w.gravity = vec(0, -20, 0)
	spawn(w, g)

	ctrl := cc.Controller()
	require.NotNil(t, ctrl)
	assertVec(t, vec(0, -1, 0), ctrl.Gravity(), tol)
	assert.InDelta(t, 20, ctrl.Config().GravityForce, tol)
	assert.InDelta(t, 20, ctrl.Weight(), tol)

	data := cc.Serialize()
	assert.NotContains(t, data, "gravity")
	assert.NotContains(t, data, "gravityForce")
}

func TestCharacterControllerOwnGravity(t *testing.T) {
	g, cc := newCharacter("Hero", 1)
	require.NoError(t, cc.Deserialize(map[string]any{
		"gravity":      map[string]any{"x": 0, "y": 0, "z": -2},
		"gravityForce": 5,
	}))
	spawn(newFlatWorld(), g)

	ctrl := cc.Controller()
	require.NotNil(t, ctrl)
	assertVec(t, vec(0, 0, -1), ctrl.Gravity(), tol)
	assert.InDelta(t, 5, ctrl.Config().GravityForce, tol)

	data := cc.Serialize()
	assert.Contains(t, data, "gravity")
	assert.EqualValues(t, 5, data["gravityForce"])
}

func TestCharacterControllerManual(t *testing.T) {
	g, cc := newCharacter("Hero", 1)
	spawn(newFlatWorld(), g)
	cc.SetManual(true)

	g.FixedUpdate(dt)
	assert.Equal(t, float32(1), g.Transform.Position.Y, "manual controllers wait for MoveAndSlide")

	cc.SetVelocity(vec(3, 0, 0))
	cc.MoveAndSlide(dt)
	assert.InDelta(t, 3*dt, g.Transform.Position.X, tol)
	assert.Less(t, g.Transform.Position.Y, float32(1))
}

func TestCharacterControllerWithoutWorld(t *testing.T) {
	g, cc := newCharacter("Hero", 1)
	g.Start()

	assert.Nil(t, cc.Controller())
	assert.Nil(t, cc.MoveAndSlide(dt))
	assert.Equal(t, kinematic.None, cc.State())
	assert.Equal(t, vec(0, 0, 0), cc.Velocity())
	cc.SetVelocity(vec(1, 0, 0))
	g.FixedUpdate(dt)
	assert.Equal(t, vec(0, 1, 0), g.Transform.Position)
}

func TestCharacterControllerDeserialize(t *testing.T) {
	c, err := engine.CreateComponent("CharacterController", map[string]any{
		"maxSlopeAngle": 30,
		"detectionMode": "offset",
		"snap":          true,
		"stepOffset":    0.25,
	})
	require.NoError(t, err)
	cc := c.(*CharacterController)

	assert.Equal(t, float32(30), cc.Config.MaxSlopeAngle)
	assert.Equal(t, kinematic.DetectOffset, cc.Config.DetectionMode)
	assert.True(t, cc.Config.Snap)
	assert.Equal(t, float32(0.25), cc.Config.StepOffset)
	assert.Equal(t, kinematic.DefaultConfig().WallAngle, cc.Config.WallAngle, "absent keys keep defaults")

	data := cc.Serialize()
	assert.Equal(t, "offset", data["detectionMode"])

	again, err := engine.CreateComponent("CharacterController", data)
	require.NoError(t, err)
	assert.Equal(t, cc.Config, again.(*CharacterController).Config)
}

func TestCharacterControllerRejectsBadConfig(t *testing.T) {
	_, err := engine.CreateComponent("CharacterController", map[string]any{"maxSlides": 0})
	assert.ErrorIs(t, err, kinematic.ErrInvalidConfig)

	_, err = engine.CreateComponent("CharacterController", map[string]any{"detectionMode": "sideways"})
	assert.Error(t, err)

	cc := NewCharacterController()
	cfg := kinematic.DefaultConfig()
	cfg.WallAngle = 120
	assert.ErrorIs(t, cc.SetConfig(cfg), kinematic.ErrInvalidConfig)
}

func TestCharacterControllerSetConfigLive(t *testing.T) {
	g, cc := newCharacter("Hero", 1)
	spawn(newFlatWorld(), g)

	cfg := cc.Config
	cfg.MaxSlopeAngle = 20
	require.NoError(t, cc.SetConfig(cfg))
	assert.Equal(t, float32(20), cc.Controller().Config().MaxSlopeAngle)
	assert.Contains(t, cc.Serialize(), "gravity", "an explicit config keeps its gravity")
}
