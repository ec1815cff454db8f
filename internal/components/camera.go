package components

import (
	"charmove3d/internal/camera"
	"charmove3d/internal/engine"
	"charmove3d/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

func init() {
	engine.RegisterComponent("Camera", func() engine.Serializable {
		return NewCamera()
	})
}

// Camera orbits the object named Target. When that object has a Player,
// the player walks relative to this camera and the orbit axis follows the
// floor under the player.
type Camera struct {
	engine.BaseComponent
	FOV         float32
	Distance    float32
	Sensitivity float32
	Follow      bool
	Target      string
	IsMain      bool // If true, this is the active game camera

	orbit  *camera.Orbit
	target *engine.GameObject
	world  engine.WorldAccess
}

func NewCamera() *Camera {
	return &Camera{
		FOV:         45.0,
		Distance:    10,
		Sensitivity: 0.25,
		Follow:      true,
	}
}

// SetWorld implements engine.WorldAware
func (c *Camera) SetWorld(w engine.WorldAccess) {
	c.world = w
}

func (c *Camera) Start() {
	g := c.GetGameObject()

	c.orbit = camera.NewOrbit()
	c.orbit.Fovy = c.FOV
	c.orbit.Distance = c.Distance
	c.orbit.Sensitivity = c.Sensitivity
	c.orbit.Follow = c.Follow
	c.orbit.Position = g.WorldPosition()

	if g.Scene != nil && c.Target != "" {
		c.target = g.Scene.FindByName(c.Target)
	}
	if c.target == nil {
		logger.Log.Warn("camera target not found",
			zap.String("object", g.Name),
			zap.String("target", c.Target))
		return
	}

	if c.world != nil {
		exclude := []uint64{g.UID, c.target.UID}
		c.orbit.Occlusion = func(from, to rl.Vector3) (rl.Vector3, bool) {
			hit, ok := c.world.Raycast(from, to, exclude...)
			return hit.Point, ok
		}
	}

	if player := engine.GetComponent[*Player](c.target); player != nil {
		player.View = c.orbit
	}
}

func (c *Camera) FixedUpdate(deltaTime float32) {
	if c.orbit == nil || c.target == nil {
		return
	}
	if player := engine.GetComponent[*Player](c.target); player != nil {
		c.orbit.SetUp(player.Up())
	}
	c.orbit.Update(c.target.WorldPosition())
	c.GetGameObject().SetWorldPosition(c.orbit.Position)
}

// ApplyLook forwards a mouse delta to the orbit.
func (c *Camera) ApplyLook(dx, dy float32) {
	if c.orbit != nil {
		c.orbit.ApplyLook(dx, dy)
	}
}

// Orbit returns the camera rig, or nil before Start.
func (c *Camera) Orbit() *camera.Orbit {
	return c.orbit
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	if c.orbit == nil {
		return rl.Camera3D{}
	}
	return c.orbit.Camera3D()
}

// TypeName implements engine.Serializable
func (c *Camera) TypeName() string {
	return "Camera"
}

// Serialize implements engine.Serializable
func (c *Camera) Serialize() map[string]any {
	return map[string]any{
		"fov":         c.FOV,
		"distance":    c.Distance,
		"sensitivity": c.Sensitivity,
		"follow":      c.Follow,
		"target":      c.Target,
		"isMain":      c.IsMain,
	}
}

// Deserialize implements engine.Serializable
func (c *Camera) Deserialize(data map[string]any) error {
	return deserializeAll(
		engine.PropFloat(data, "fov", &c.FOV),
		engine.PropFloat(data, "distance", &c.Distance),
		engine.PropFloat(data, "sensitivity", &c.Sensitivity),
		engine.PropBool(data, "follow", &c.Follow),
		engine.PropString(data, "target", &c.Target),
		engine.PropBool(data, "isMain", &c.IsMain),
	)
}
