package kinematic

import (
	"fmt"

	"charmove3d/internal/logger"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Controller moves a kinematic body through a Space, sliding along what it
// touches. It is driven once per fixed physics tick and is not safe for
// concurrent use.
type Controller struct {
	// LinearVelocity is read and rewritten by every MoveAndSlide call.
	LinearVelocity rl.Vector3
	// Snap keeps the body glued to a floor it just left. Hosts usually turn
	// it off for the tick a jump starts.
	Snap bool

	body  Body
	space Space
	cfg   Config
	log   *zap.Logger

	gravity   rl.Vector3
	maxSlope  float32
	wallAngle float32
	mass      float32
	weight    float32

	state         CollisionState
	floorNormal   rl.Vector3
	floorVelocity rl.Vector3
}

// Option customises a Controller at construction.
type Option func(*Controller)

// WithLogger routes solver traces to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New validates cfg and binds a controller to body and space.
func New(body Body, space Space, cfg Config, opts ...Option) (*Controller, error) {
	if body == nil || space == nil {
		return nil, fmt.Errorf("%w: body and space are required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		body:  body,
		space: space,
		log:   logger.Named("kinematic"),
		Snap:  cfg.Snap,
	}
	c.applyConfig(cfg)
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetConfig replaces the tuning without touching runtime state.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.applyConfig(cfg)
	return nil
}

func (c *Controller) applyConfig(cfg Config) {
	c.cfg = cfg
	c.gravity = rl.Vector3Normalize(cfg.Gravity)
	c.cfg.Gravity = c.gravity
	c.maxSlope = cfg.MaxSlopeAngle * rl.Deg2rad
	c.wallAngle = cfg.WallAngle * rl.Deg2rad
	c.SetMass(cfg.Mass)
}

// Config returns the active tuning with gravity normalised.
func (c *Controller) Config() Config {
	return c.cfg
}

// Read-only views of the last MoveAndSlide result and of the tuning
// derived from Config.
func (c *Controller) State() CollisionState     { return c.state }
func (c *Controller) FloorNormal() rl.Vector3   { return c.floorNormal }
func (c *Controller) FloorVelocity() rl.Vector3 { return c.floorVelocity }
func (c *Controller) IsOnFloor() bool           { return c.state.Has(Bottom) }
func (c *Controller) IsOnWall() bool            { return c.state.Has(Sides) }
func (c *Controller) IsOnCeiling() bool         { return c.state.Has(Top) }
func (c *Controller) IsSliding() bool           { return c.state.Has(Sliding) }
func (c *Controller) Gravity() rl.Vector3       { return c.gravity }
func (c *Controller) Position() rl.Vector3      { return c.body.Position() }
func (c *Controller) Mass() float32             { return c.mass }
func (c *Controller) Weight() float32           { return c.weight }
func (c *Controller) MaxSlopeRadians() float32  { return c.maxSlope }
func (c *Controller) WallAngleRadians() float32 { return c.wallAngle }

// SetGravity changes the gravity direction. A zero vector is ignored.
func (c *Controller) SetGravity(dir rl.Vector3) {
	if isZero(dir) {
		return
	}
	c.gravity = rl.Vector3Normalize(dir)
	c.cfg.Gravity = c.gravity
}

// SetMass sets the mass and derives weight from the gravity force.
func (c *Controller) SetMass(mass float32) {
	c.mass = mass
	c.cfg.Mass = mass
	c.weight = mass * c.cfg.GravityForce
}

// SetWeight sets the weight and derives mass from the gravity force. With
// no gravity force the mass is left unchanged.
func (c *Controller) SetWeight(weight float32) {
	c.weight = weight
	if c.cfg.GravityForce > 0 {
		c.mass = weight / c.cfg.GravityForce
		c.cfg.Mass = c.mass
	}
}

// Classify labels a contact measured from origin using this controller's tuning.
func (c *Controller) Classify(contact Contact, origin rl.Vector3) CollisionState {
	return Classify(ClassifyInput{
		Mode:        c.cfg.DetectionMode,
		Contact:     contact,
		Origin:      origin,
		Gravity:     c.gravity,
		WallAngle:   c.wallAngle,
		BodySize:    c.cfg.BodySize,
		TopShape:    c.cfg.TopShape,
		BottomShape: c.cfg.BottomShape,
	})
}

// IsValidSlope reports whether a surface with this normal is walkable.
func (c *Controller) IsValidSlope(normal rl.Vector3) bool {
	return angleTo(rl.Vector3Negate(c.gravity), normal) <= c.maxSlope+angleThreshold
}

// isValidSlopeContact re-tests a steep contact with a short ray into the
// surface, since edge contacts report blended normals.
func (c *Controller) isValidSlopeContact(contact Contact) bool {
	if c.IsValidSlope(contact.Normal) {
		return true
	}

	origin := rl.Vector3Add(contact.Position, rl.Vector3Scale(c.gravity, -slopeRayLift))
	hit, ok := c.space.Raycast(origin, rl.Vector3Subtract(origin, contact.Normal))
	if !ok {
		return false
	}
	return c.IsValidSlope(hit.Normal)
}

// pass is the mutable state of one resolver iteration.
type pass struct {
	position     rl.Vector3
	displacement rl.Vector3
	motion       rl.Vector3
	velocity     rl.Vector3
}

func (p *pass) halt() {
	p.displacement = zero
	p.motion = zero
	p.velocity = zero
}

// MoveAndSlide integrates gravity, moves the body by LinearVelocity*delta,
// slides along every surface hit and returns the contacts made. A
// non-positive delta is a no-op.
func (c *Controller) MoveAndSlide(delta float32) []Contact {
	if !(delta > 0) || math32.IsInf(delta, 1) {
		return nil
	}

	up := rl.Vector3Negate(c.gravity)

	c.LinearVelocity = rl.Vector3Add(c.LinearVelocity, rl.Vector3Scale(c.gravity, c.cfg.GravityForce*delta))

	p := pass{
		position: c.body.Position(),
		velocity: c.LinearVelocity,
		// Floor velocity from the previous tick carries the body along with
		// moving platforms.
		motion: rl.Vector3Scale(rl.Vector3Add(c.LinearVelocity, c.floorVelocity), delta),
	}
	horizontal := rl.Vector3Subtract(p.velocity, project(p.velocity, up))
	wasOnFloor := c.state.Has(Bottom)

	c.state = None
	c.floorNormal = zero
	c.floorVelocity = zero

	var contacts []Contact

	for slides := c.cfg.MaxSlides; slides > 0 && !isZero(p.motion); {
		contact, hit := c.space.Sweep(p.position, p.motion)
		if hit && isZero(contact.Normal) {
			// Nothing to slide along: keep the free travel and stop.
			c.log.Debug("contact without normal",
				zap.Uint64("collider", contact.ColliderID),
				logger.Vec("remaining", contact.Remainder))
			p.position = rl.Vector3Add(p.position, contact.Travel)
			c.body.SetPosition(p.position)
			break
		}

		p.displacement = p.motion
		p.motion = zero

		if hit {
			p.displacement = contact.Travel
			p.motion = contact.Remainder

			horizontalMotion := rl.Vector3Subtract(p.motion, project(p.motion, up))
			contacts = appendContact(contacts, contact)

			kind := c.Classify(contact, p.position)
			pushed := c.push(contact, p.velocity)

			undeflected := p.velocity
			p.motion = slide(p.motion, contact.Normal)
			p.velocity = slide(p.velocity, contact.Normal)

			switch kind {
			case Bottom:
				c.onFloor(&p, contact, floorHit{
					pushed:           pushed,
					horizontal:       horizontal,
					horizontalMotion: horizontalMotion,
					undeflected:      undeflected,
					delta:            delta,
				})
			case Sides:
				if !pushed && (wasOnFloor || c.state.Has(Bottom)) {
					c.stepOverWall(&p, contact, horizontalMotion, undeflected)
				}
			}

			c.state |= kind
		}

		p.position = rl.Vector3Add(p.position, p.displacement)
		c.body.SetPosition(p.position)

		if isZero(p.motion) {
			break
		}

		slides--
		if slides == 0 {
			c.log.Debug("slide budget exhausted",
				zap.Int("maxSlides", c.cfg.MaxSlides),
				logger.Vec("remaining", p.motion),
				logger.Vec("discardedVelocity", p.velocity))
			p.velocity = zero
		}
	}

	if c.Snap && wasOnFloor && !c.state.Has(Bottom) {
		contacts = c.snapToFloor(&p, contacts)
	}

	c.LinearVelocity = p.velocity
	return contacts
}

// push shoves a pushable obstacle and reports whether it did.
func (c *Controller) push(contact Contact, velocity rl.Vector3) bool {
	if !c.cfg.CanPush {
		return false
	}
	obstacle, ok := contact.Collider.(Pushable)
	if !ok {
		return false
	}

	impulse, ok := PushImpulse(c.mass, obstacle.Mass(), velocity, contact.ColliderVelocity, contact.Normal)
	if !ok {
		return false
	}

	obstacle.ApplyImpulse(rl.Vector3Subtract(contact.Position, obstacle.Position()), impulse)
	c.floorVelocity = zero

	c.log.Debug("pushed obstacle",
		zap.Uint64("collider", contact.ColliderID),
		logger.Vec("impulse", impulse))
	return true
}

type floorHit struct {
	pushed           bool
	horizontal       rl.Vector3
	horizontalMotion rl.Vector3
	undeflected      rl.Vector3
	delta            float32
}

func (c *Controller) onFloor(p *pass, contact Contact, h floorHit) {
	c.floorNormal = contact.Normal
	if h.pushed {
		c.floorVelocity = zero
	} else {
		c.floorVelocity = contact.ColliderVelocity
	}

	if c.isValidSlopeContact(contact) {
		up := rl.Vector3Negate(c.gravity)
		switch {
		case c.state.Has(Sides):
			p.velocity = slide(p.velocity, up)
			p.motion = slide(p.motion, up)
		case c.state.Has(Sliding),
			c.cfg.StopOnSlopes && isZero(rl.Vector3Add(h.horizontal, c.floorVelocity)):
			p.halt()
		}
		return
	}

	if h.pushed || c.state.Has(Sliding) {
		return
	}

	if stepped, ok := c.tryMoveStep(rl.Vector3Add(p.position, p.displacement), contact, h.horizontalMotion); ok {
		p.halt()
		p.position = stepped
		p.velocity = h.undeflected
		return
	}

	c.state |= Sliding

	if !c.cfg.CanSlide {
		return
	}
	if !isZero(h.horizontal) && rl.Vector3DotProduct(h.horizontal, contact.Normal) >= 0 {
		return
	}

	p.position = rl.Vector3Add(p.position, p.displacement)
	c.body.SetPosition(p.position)

	p.velocity = rl.Vector3Scale(c.gravity, c.cfg.SlideSpeed)
	slideMotion := rl.Vector3Scale(p.velocity, h.delta)

	if hit, ok := c.space.Sweep(p.position, slideMotion); ok {
		p.displacement = hit.Travel
		p.velocity = slide(p.velocity, hit.Normal)
		p.motion = hit.Remainder
	} else {
		p.displacement = slideMotion
		p.motion = zero
	}
}

// stepOverWall tries to climb a wall contact. On failure the already
// deflected motion stands, so only the velocity into the wall is lost.
func (c *Controller) stepOverWall(p *pass, contact Contact, horizontalMotion, undeflected rl.Vector3) {
	stepped, ok := c.tryMoveStep(rl.Vector3Add(p.position, p.displacement), contact, horizontalMotion)
	if !ok {
		return
	}
	p.halt()
	p.position = stepped
	p.velocity = undeflected
}

// tryMoveStep lifts the body by the step offset, moves it horizontally,
// and drops it back onto a walkable floor. The body is restored to from
// on failure.
func (c *Controller) tryMoveStep(from rl.Vector3, contact Contact, horizontalMotion rl.Vector3) (rl.Vector3, bool) {
	if contact.LocalShape.RoundedCorners() || c.cfg.StepOffset <= 0 || isZero(horizontalMotion) {
		return from, false
	}

	lifted := rl.Vector3Add(from, rl.Vector3Scale(c.gravity, -c.cfg.StepOffset))
	c.body.SetPosition(lifted)

	if _, blocked := c.space.Sweep(lifted, horizontalMotion); !blocked {
		moved := rl.Vector3Add(lifted, horizontalMotion)
		c.body.SetPosition(moved)

		if ground, ok := c.space.Sweep(moved, rl.Vector3Scale(c.gravity, c.cfg.StepOffset)); ok {
			if c.Classify(ground, moved) == Bottom && c.IsValidSlope(ground.Normal) {
				landed := rl.Vector3Add(moved, ground.Travel)
				c.body.SetPosition(landed)

				c.log.Debug("stepped up",
					logger.Vec("from", from),
					logger.Vec("to", landed))
				return landed, true
			}
		}
	}

	c.body.SetPosition(from)
	return from, false
}

func (c *Controller) snapToFloor(p *pass, contacts []Contact) []Contact {
	hit, ok := c.space.Sweep(p.position, rl.Vector3Scale(c.gravity, c.cfg.SnapLength))
	if !ok || isZero(hit.Normal) {
		return contacts
	}

	contacts = appendContact(contacts, hit)

	c.floorNormal = hit.Normal
	c.floorVelocity = hit.ColliderVelocity

	p.velocity = slide(p.velocity, hit.Normal)

	c.state |= c.Classify(hit, p.position)
	if c.state.Has(Bottom) && !c.IsValidSlope(hit.Normal) {
		c.state |= Sliding
	}

	p.position = rl.Vector3Add(p.position, hit.Travel)
	c.body.SetPosition(p.position)

	c.log.Debug("snapped to floor",
		logger.Vec("travel", hit.Travel),
		zap.Stringer("state", c.state))
	return contacts
}
