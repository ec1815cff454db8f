// Package sim drives a loaded world headlessly from a scripted run profile.
package sim

import (
	"errors"
	"fmt"
	"time"

	"charmove3d/internal/components"
	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"
	"charmove3d/internal/logger"
	"charmove3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// ErrNoPlayer is returned when the scene has nothing the profile can drive.
var ErrNoPlayer = errors.New("no player in scene")

// Sample is the character's state after one tick.
type Sample struct {
	Tick        int
	Time        float32
	Position    rl.Vector3
	Velocity    rl.Vector3
	State       kinematic.CollisionState
	FloorNormal rl.Vector3
	Contacts    int
	// Jumped reports that the scripted input pressed jump this tick.
	Jumped bool
}

// Summary aggregates a whole run.
type Summary struct {
	Ticks       int
	Start, End  rl.Vector3
	Travelled   float32
	MaxHeight   float32
	FloorTicks  int
	WallTicks   int
	AirTicks    int
	SlideTicks  int
	Contacts    int
	Elapsed     time.Duration
	FinalState  kinematic.CollisionState
	FinalSpeed  float32
	JumpPresses int
}

type Runner struct {
	World   *world.World
	Profile Profile

	target *engine.GameObject
	player *components.Player
	cc     *components.CharacterController
	camera *components.Camera
	script script
	log    *zap.Logger
}

// NewRunner binds a profile to an already loaded and started world.
func NewRunner(w *world.World, p Profile) (*Runner, error) {
	r := &Runner{
		World:   w,
		Profile: p,
		script:  script{profile: p, segment: -1},
		log:     logger.Named("sim"),
	}

	for _, g := range w.Scene.GameObjects {
		if p.Player != "" && g.Name != p.Player {
			continue
		}
		if player := engine.GetComponent[*components.Player](g); player != nil {
			r.target, r.player = g, player
			break
		}
	}
	if r.player == nil {
		if p.Player != "" {
			return nil, fmt.Errorf("%w: %q", ErrNoPlayer, p.Player)
		}
		return nil, ErrNoPlayer
	}

	r.cc = engine.GetComponent[*components.CharacterController](r.target)
	if r.cc == nil || r.cc.Controller() == nil {
		return nil, fmt.Errorf("%w: %q has no working character controller", ErrNoPlayer, r.target.Name)
	}

	for _, g := range w.Scene.GameObjects {
		if cam := engine.GetComponent[*components.Camera](g); cam != nil && cam.Target == r.target.Name {
			r.camera = cam
			if cam.IsMain {
				break
			}
		}
	}

	w.FixedDelta = p.Delta()
	return r, nil
}

// Step feeds the scripted input for tick and advances the world once.
func (r *Runner) Step(tick int) Sample {
	dt := r.Profile.Delta()
	in, look := r.script.at(float32(tick) * dt)
	r.player.SetInput(in)
	if r.camera != nil && (look.X != 0 || look.Y != 0) {
		r.camera.ApplyLook(look.X, look.Y)
	}

	r.World.Step(dt)

	ctrl := r.cc.Controller()
	return Sample{
		Tick:        tick,
		Time:        float32(tick+1) * dt,
		Position:    r.target.WorldPosition(),
		Velocity:    ctrl.LinearVelocity,
		State:       ctrl.State(),
		FloorNormal: ctrl.FloorNormal(),
		Contacts:    len(r.cc.Contacts()),
		Jumped:      in.Jump,
	}
}

// Run steps the world ticks times, logging samples every LogEvery ticks.
// ticks <= 0 runs for the profile's duration.
func (r *Runner) Run(ticks int) Summary {
	if ticks <= 0 {
		ticks = r.Profile.Ticks()
	}

	start := r.target.WorldPosition()
	sum := Summary{Start: start, End: start, MaxHeight: start.Y}
	began := time.Now()

	prev := start
	for tick := 0; tick < ticks; tick++ {
		s := r.Step(tick)
		if s.Jumped {
			sum.JumpPresses++
		}

		sum.Travelled += rl.Vector3Distance(prev, s.Position)
		prev = s.Position
		sum.MaxHeight = max(sum.MaxHeight, s.Position.Y)
		sum.Contacts += s.Contacts
		switch {
		case s.State.Has(kinematic.Bottom):
			sum.FloorTicks++
		case s.State == kinematic.None:
			sum.AirTicks++
		}
		if s.State.Has(kinematic.Sides) {
			sum.WallTicks++
		}
		if s.State.Has(kinematic.Sliding) {
			sum.SlideTicks++
		}

		if r.Profile.LogEvery > 0 && tick%r.Profile.LogEvery == 0 {
			r.log.Info("tick",
				zap.Int("tick", s.Tick),
				zap.Float32("t", s.Time),
				logger.Vec("position", s.Position),
				logger.Vec("velocity", s.Velocity),
				zap.Stringer("state", s.State),
				logger.Vec("floorNormal", s.FloorNormal),
				zap.Int("contacts", s.Contacts))
		}
	}

	sum.Ticks = ticks
	sum.End = prev
	sum.Elapsed = time.Since(began)
	sum.FinalState = r.cc.State()
	sum.FinalSpeed = rl.Vector3Length(r.cc.Velocity())

	r.log.Info("run finished",
		zap.Int("ticks", sum.Ticks),
		logger.Vec("start", sum.Start),
		logger.Vec("end", sum.End),
		zap.Float32("travelled", sum.Travelled),
		zap.Float32("maxHeight", sum.MaxHeight),
		zap.Int("floorTicks", sum.FloorTicks),
		zap.Int("airTicks", sum.AirTicks),
		zap.Int("wallTicks", sum.WallTicks),
		zap.Int("slideTicks", sum.SlideTicks),
		zap.Int("jumps", sum.JumpPresses),
		zap.Stringer("finalState", sum.FinalState),
		zap.Duration("elapsed", sum.Elapsed))
	return sum
}
