package components

import (
	"fmt"

	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"
	"charmove3d/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func init() {
	engine.RegisterComponent("CharacterController", func() engine.Serializable {
		return NewCharacterController()
	})
}

// CharacterController moves its GameObject with a kinematic.Controller,
// sliding along the colliders of the world it is attached to.
//
// By default it moves once per fixed tick with whatever velocity it has.
// A component that computes the velocity itself (Player) calls SetManual
// and drives MoveAndSlide on its own.
type CharacterController struct {
	engine.BaseComponent
	Config kinematic.Config

	// OnContact fires for every contact of the last move.
	OnContact engine.EventWithArg[kinematic.Contact]

	world      engine.WorldAccess
	controller *kinematic.Controller
	contacts   []kinematic.Contact
	manual     bool
	// worldGravity is set when the config came without a gravity of its
	// own, in which case the world's gravity is used.
	worldGravity bool
	log          *zap.Logger
}

// NewCharacterController creates a new character controller with defaults
func NewCharacterController() *CharacterController {
	return &CharacterController{
		Config:       kinematic.DefaultConfig(),
		worldGravity: true,
		log:          logger.Log,
	}
}

// transformBody lets the solver move a GameObject in world space.
type transformBody struct {
	obj *engine.GameObject
}

func (b transformBody) Position() rl.Vector3     { return b.obj.WorldPosition() }
func (b transformBody) SetPosition(p rl.Vector3) { b.obj.SetWorldPosition(p) }

// SetWorld implements engine.WorldAware
func (c *CharacterController) SetWorld(w engine.WorldAccess) {
	c.world = w
}

func (c *CharacterController) Start() {
	g := c.GetGameObject()
	c.log = logger.Log.With(zap.String("object", g.Name))

	if c.world == nil {
		c.log.Warn("character controller has no world, it will not move")
		return
	}

	cfg := c.Config
	if c.worldGravity {
		if gravity := c.world.Gravity(); rl.Vector3Length(gravity) > 0 {
			cfg.Gravity = rl.Vector3Normalize(gravity)
			cfg.GravityForce = rl.Vector3Length(gravity)
		}
	}

	controller, err := kinematic.New(transformBody{obj: g}, c.world.SpaceFor(g), cfg,
		kinematic.WithLogger(c.log.Named("kinematic")))
	if err != nil {
		c.log.Error("character controller disabled", zap.Error(err))
		return
	}
	c.controller = controller
	c.Config = controller.Config()
}

// SetManual stops FixedUpdate from moving the body.
func (c *CharacterController) SetManual(manual bool) {
	c.manual = manual
}

func (c *CharacterController) FixedUpdate(deltaTime float32) {
	if c.manual {
		return
	}
	c.MoveAndSlide(deltaTime)
}

// MoveAndSlide runs one solver step and notifies contact listeners.
func (c *CharacterController) MoveAndSlide(deltaTime float32) []kinematic.Contact {
	if c.controller == nil {
		return nil
	}

	c.contacts = c.controller.MoveAndSlide(deltaTime)

	handlers := engine.GetComponents[engine.ContactHandler](c.GetGameObject())
	for _, contact := range c.contacts {
		c.OnContact.Invoke(contact)
		for _, h := range handlers {
			h.OnContact(contact)
		}
	}
	return c.contacts
}

// Controller returns the solver, or nil before Start or when the config
// was rejected.
func (c *CharacterController) Controller() *kinematic.Controller {
	return c.controller
}

// Contacts returns the contacts of the last move.
func (c *CharacterController) Contacts() []kinematic.Contact {
	return c.contacts
}

func (c *CharacterController) Velocity() rl.Vector3 {
	if c.controller == nil {
		return rl.Vector3Zero()
	}
	return c.controller.LinearVelocity
}

func (c *CharacterController) SetVelocity(v rl.Vector3) {
	if c.controller != nil {
		c.controller.LinearVelocity = v
	}
}

func (c *CharacterController) State() kinematic.CollisionState {
	if c.controller == nil {
		return kinematic.None
	}
	return c.controller.State()
}

// SetConfig validates and applies a new tuning, live if already started.
func (c *CharacterController) SetConfig(cfg kinematic.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.controller != nil {
		if err := c.controller.SetConfig(cfg); err != nil {
			return err
		}
		cfg = c.controller.Config()
	}
	c.Config = cfg
	c.worldGravity = false
	return nil
}

// TypeName implements engine.Serializable
func (c *CharacterController) TypeName() string {
	return "CharacterController"
}

// Serialize implements engine.Serializable
func (c *CharacterController) Serialize() map[string]any {
	data := map[string]any{}
	raw, err := yaml.Marshal(c.Config)
	if err == nil {
		err = yaml.Unmarshal(raw, &data)
	}
	if err != nil {
		c.log.Error("serialize controller config", zap.Error(err))
		return map[string]any{}
	}
	if c.worldGravity {
		delete(data, "gravity")
		delete(data, "gravityForce")
	}
	return data
}

// Deserialize implements engine.Serializable. Keys that are absent keep
// their current value.
func (c *CharacterController) Deserialize(data map[string]any) error {
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode controller config: %w", err)
	}
	cfg := c.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("decode controller config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg

	_, hasGravity := data["gravity"]
	_, hasForce := data["gravityForce"]
	c.worldGravity = !hasGravity && !hasForce
	return nil
}
