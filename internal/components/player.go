package components

import (
	"fmt"

	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"
	"charmove3d/internal/logger"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

func init() {
	engine.RegisterComponent("Player", func() engine.Serializable {
		return NewPlayer()
	})
}

// minJumpHeight is the lowest jump a tap can produce.
const minJumpHeight = 0.5

// PlayerInput is one tick of movement intent. Move.X strafes right and
// Move.Y walks forward, both relative to the view.
type PlayerInput struct {
	Move     rl.Vector2
	Jump     bool // pressed this tick
	JumpHeld bool
}

// ViewProvider is the camera orientation movement input is relative to.
type ViewProvider interface {
	Forward() rl.Vector3
	Right() rl.Vector3
}

// Player turns PlayerInput into velocity for the CharacterController on the
// same object: camera relative walking, a jump whose height depends on how
// long it is held, and gravity that follows the floor while grounded.
type Player struct {
	engine.BaseComponent
	Speed      float32
	JumpHeight float32
	View       ViewProvider

	input            PlayerInput
	hasDown          bool
	down             rl.Vector3
	up               rl.Vector3
	jumpVelocity     float32
	jumpTime         float32
	constantJumpTime float32
	status           []string
	log              *zap.Logger
}

func NewPlayer() *Player {
	return &Player{
		Speed:      4,
		JumpHeight: 1,
		up:         rl.Vector3{Y: 1},
		down:       rl.Vector3{Y: -1},
		log:        logger.Log,
	}
}

func (p *Player) Start() {
	g := p.GetGameObject()
	p.log = logger.Log.With(zap.String("object", g.Name))

	cc := engine.GetComponent[*CharacterController](g)
	if cc == nil {
		p.log.Warn("player has no character controller")
		return
	}
	cc.SetManual(true)
}

// SetInput replaces the input used by the next FixedUpdate.
func (p *Player) SetInput(in PlayerInput) {
	p.input = in
}

// Up eases toward the floor normal while grounded, for cameras that
// follow the ground.
func (p *Player) Up() rl.Vector3 {
	return p.up
}

// Status returns the debug lines of the last tick.
func (p *Player) Status() []string {
	return p.status
}

func (p *Player) FixedUpdate(deltaTime float32) {
	cc := engine.GetComponent[*CharacterController](p.GetGameObject())
	if cc == nil || cc.Controller() == nil || !(deltaTime > 0) {
		return
	}
	ctrl := cc.Controller()
	if !p.hasDown {
		// The controller's configured gravity is "down" whenever the body
		// is airborne.
		p.down = ctrl.Gravity()
		p.up = rl.Vector3Negate(p.down)
		p.hasDown = true
	}

	ctrl.LinearVelocity = p.velocity(ctrl, deltaTime)
	contacts := cc.MoveAndSlide(deltaTime)
	p.status = statusLines(p.GetGameObject(), ctrl, contacts)
}

func (p *Player) velocity(ctrl *kinematic.Controller, deltaTime float32) rl.Vector3 {
	in := p.input
	force := ctrl.Config().GravityForce

	if ctrl.State() != kinematic.None {
		ctrl.Snap = true
		p.jumpTime = 0
	}

	var vertical float32
	switch {
	case in.Jump:
		p.jumpVelocity = math32.Sqrt(2 * force * p.JumpHeight / 2)
		vertical = p.jumpVelocity
		if p.jumpVelocity > 0 {
			p.constantJumpTime = p.JumpHeight / 2 / p.jumpVelocity
		}
		p.jumpTime += deltaTime
		ctrl.Snap = false
		p.log.Debug("jump", zap.Float32("velocity", p.jumpVelocity))
	case p.jumpVelocity > 0:
		if in.JumpHeld && p.jumpTime < p.constantJumpTime {
			vertical = p.jumpVelocity
			p.jumpTime += deltaTime
			break
		}
		var multiplier float32
		if longest := max(p.jumpTime, p.constantJumpTime); longest > 0 {
			multiplier = p.jumpTime / longest
		}
		height := max(minJumpHeight, p.JumpHeight/2*multiplier)
		vertical = math32.Sqrt(2 * force * height)
		p.jumpVelocity = 0
	default:
		p.jumpTime = 0
	}

	grounded := ctrl.IsOnFloor()
	target := rl.Vector3Negate(p.down)
	if grounded {
		target = ctrl.FloorNormal()
	}
	p.up = rl.Vector3Normalize(rl.Vector3Lerp(p.up, target, 0.2))

	if grounded {
		ctrl.SetGravity(rl.Vector3Negate(ctrl.FloorNormal()))
	} else {
		ctrl.SetGravity(p.down)
	}
	gravity := ctrl.Gravity()

	forwardDir, rightDir := p.viewAxes()
	move := in.Move
	if l := rl.Vector2Length(move); l > 0 {
		move = rl.Vector2Scale(move, 1/l)
	}

	// Forward hugs the plane under the body so slopes don't slow walking.
	forward := rl.Vector3Subtract(forwardDir, rl.Vector3Scale(gravity, rl.Vector3DotProduct(forwardDir, gravity)))
	forward = rl.Vector3Scale(rl.Vector3Normalize(forward), move.Y)
	sides := rl.Vector3Scale(rightDir, move.X)
	horizontal := rl.Vector3Scale(rl.Vector3Add(forward, sides), p.Speed)

	verticalVelocity := rl.Vector3Scale(gravity, rl.Vector3DotProduct(ctrl.LinearVelocity, gravity))
	if vertical != 0 {
		verticalVelocity = rl.Vector3Scale(gravity, -math32.Abs(vertical))
	}

	return rl.Vector3Add(horizontal, verticalVelocity)
}

// viewAxes falls back to looking down -Z when there is no usable view.
func (p *Player) viewAxes() (forward, right rl.Vector3) {
	forward, right = rl.Vector3{Z: -1}, rl.Vector3{X: 1}
	if p.View == nil {
		return forward, right
	}
	f, r := p.View.Forward(), p.View.Right()
	if rl.Vector3Length(f) == 0 || rl.Vector3Length(r) == 0 {
		return forward, right
	}
	return f, r
}

func statusLines(g *engine.GameObject, ctrl *kinematic.Controller, contacts []kinematic.Contact) []string {
	state := ctrl.State()
	floorAngle := angleFromUp(ctrl.FloorNormal()) * rl.Rad2deg
	lines := []string{
		fmt.Sprintf("Origin:         %s", fmtVec(g.WorldPosition())),
		fmt.Sprintf("Floor Velocity: %.0fm/s, %s", rl.Vector3Length(ctrl.FloorVelocity()), fmtVec(ctrl.FloorVelocity())),
		fmt.Sprintf("Floor Normal:   %.0f°, %s", floorAngle, fmtVec(ctrl.FloorNormal())),
		fmt.Sprintf("Velocity:       %.0fm/s, %s", rl.Vector3Length(ctrl.LinearVelocity), fmtVec(ctrl.LinearVelocity)),
		fmt.Sprintf("Collisions:     %d", len(contacts)),
		fmt.Sprintf("Is On Ceiling:  %t", state.Has(kinematic.Top)),
		fmt.Sprintf("Is On Wall:     %t", state.Has(kinematic.Sides)),
		fmt.Sprintf("Is On Floor:    %t", state.Has(kinematic.Bottom)),
		fmt.Sprintf("Is Sliding:     %t", state.Has(kinematic.Sliding)),
	}
	return lines
}

func angleFromUp(n rl.Vector3) float32 {
	l := rl.Vector3Length(n)
	if l == 0 {
		return 0
	}
	return math32.Acos(max(-1, min(1, n.Y/l)))
}

func fmtVec(v rl.Vector3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// TypeName implements engine.Serializable
func (p *Player) TypeName() string {
	return "Player"
}

// Serialize implements engine.Serializable
func (p *Player) Serialize() map[string]any {
	return map[string]any{
		"speed":      p.Speed,
		"jumpHeight": p.JumpHeight,
	}
}

// Deserialize implements engine.Serializable
func (p *Player) Deserialize(data map[string]any) error {
	return deserializeAll(
		engine.PropFloat(data, "speed", &p.Speed),
		engine.PropFloat(data, "jumpHeight", &p.JumpHeight),
	)
}
