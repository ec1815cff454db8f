package world

import (
	"charmove3d/internal/engine"
	"charmove3d/internal/logger"
	"charmove3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	DefaultFixedDelta  = 1.0 / 60.0
	DefaultMaxSubsteps = 8
)

// World owns a scene and the physics world its objects live in, and drives
// both at a fixed tick.
type World struct {
	Scene   *engine.Scene
	Physics *physics.World

	// FixedDelta is the physics tick length in seconds.
	FixedDelta float32
	// MaxSubsteps caps the ticks run for one frame; time beyond it is dropped.
	MaxSubsteps int
	// OnSceneLoaded fires after a scene file has replaced the world's
	// contents. It is not fired by a failed load.
	OnSceneLoaded engine.Event

	accumulator float32
	ticks       uint64
	colors      map[uint64]rl.Color
	log         *zap.Logger
}

func New() *World {
	return &World{
		Scene:       engine.NewScene("Main"),
		Physics:     physics.NewWorld(),
		FixedDelta:  DefaultFixedDelta,
		MaxSubsteps: DefaultMaxSubsteps,
		colors:      make(map[uint64]rl.Color),
		log:         logger.Named("world"),
	}
}

// Reset empties the world, keeping its tick settings and gravity.
func (w *World) Reset() {
	gravity := w.Physics.Gravity()
	w.Scene = engine.NewScene(w.Scene.Name)
	w.Physics = physics.NewWorld()
	w.Physics.SetGravity(gravity)
	w.colors = make(map[uint64]rl.Color)
	w.accumulator = 0
	w.ticks = 0
}

// Add registers g and its children with the scene and the physics world.
func (w *World) Add(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	for _, aware := range engine.GetComponents[engine.WorldAware](g) {
		aware.SetWorld(w.Physics)
	}
	w.Physics.AddObject(g)
	for _, child := range g.Children {
		w.Add(child)
	}
}

// Remove takes g and its children out of the scene and the physics world.
func (w *World) Remove(g *engine.GameObject) {
	for _, child := range g.Children {
		w.Remove(child)
	}
	w.Physics.RemoveObject(g)
	w.Scene.RemoveGameObject(g)
	delete(w.colors, g.UID)
}

func (w *World) Start() {
	w.Scene.Start()
}

// Step runs one physics tick: components first, so characters move with
// the velocity chosen this tick, then rigid bodies.
func (w *World) Step(delta float32) {
	w.Scene.FixedUpdate(delta)
	w.Physics.Update(delta)
	w.ticks++
}

// Tick advances the world by a frame's worth of time and returns how many
// fixed steps it ran.
func (w *World) Tick(frameDelta float32) int {
	if !(frameDelta > 0) || !(w.FixedDelta > 0) {
		return 0
	}

	w.accumulator += frameDelta
	steps := 0
	for w.accumulator >= w.FixedDelta {
		if steps == w.MaxSubsteps {
			w.log.Debug("dropping simulation time",
				zap.Float32("behind", w.accumulator),
				zap.Int("maxSubsteps", w.MaxSubsteps))
			w.accumulator = 0
			break
		}
		w.Step(w.FixedDelta)
		w.accumulator -= w.FixedDelta
		steps++
	}

	w.Scene.Update(frameDelta)
	return steps
}

// Ticks is the number of fixed steps run since the last reset.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// ColorOf returns the display color a scene file gave g.
func (w *World) ColorOf(g *engine.GameObject) rl.Color {
	if c, ok := w.colors[g.UID]; ok {
		return c
	}
	return rl.LightGray
}

func (w *World) SetColor(g *engine.GameObject, c rl.Color) {
	w.colors[g.UID] = c
}
