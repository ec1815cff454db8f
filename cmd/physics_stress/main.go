// Stress test timing character controllers sweeping through a crowded world
package main

import (
	"fmt"
	"math/rand"
	"time"

	"charmove3d/internal/components"
	"charmove3d/internal/engine"
	"charmove3d/internal/world"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	ticks     = 120
	obstacles = 200
)

func main() {
	fmt.Printf("%d ticks per run, %d static obstacles\n\n", ticks, obstacles)

	// Test various character counts
	testCounts := []int{10, 50, 100, 250, 500, 1000}

	for _, count := range testCounts {
		testCrowd(count)
	}
}

func testCrowd(count int) {
	rng := rand.New(rand.NewSource(42)) // Consistent results
	w := world.New()

	// Spawn area scales with count to keep density reasonable
	spawnSize := float32(30.0) + float32(count)/10.0

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: spawnSize * 2, Y: 1, Z: spawnSize * 2}))
	w.Add(floor)

	for i := 0; i < obstacles; i++ {
		obj := engine.NewGameObject(fmt.Sprintf("Obstacle_%d", i))
		size := rl.Vector3{X: 0.5 + rng.Float32()*2, Y: 0.2 + rng.Float32()*1.5, Z: 0.5 + rng.Float32()*2}
		obj.Transform.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: size.Y / 2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		obj.Transform.Rotation.Y = rng.Float32() * 90
		obj.AddComponent(components.NewBoxCollider(size))
		w.Add(obj)
	}

	characters := make([]*components.CharacterController, count)
	for i := range characters {
		obj := engine.NewGameObject(fmt.Sprintf("Character_%d", i))
		obj.Transform.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: 2 + rng.Float32()*4,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		obj.AddComponent(components.NewCapsuleCollider(0.4, 1.8))
		cc := components.NewCharacterController()
		cc.Config.Snap = true
		obj.AddComponent(cc)
		w.Add(obj)
		characters[i] = cc
	}
	w.Start()

	// Every character walks in its own fixed direction
	headings := make([]rl.Vector3, count)
	for i := range headings {
		angle := rng.Float32() * 2 * rl.Pi
		headings[i] = rl.Vector3{X: 4 * math32.Cos(angle), Z: 4 * math32.Sin(angle)}
	}

	start := time.Now()
	var contacts, grounded int
	for tick := 0; tick < ticks; tick++ {
		for i, cc := range characters {
			v := cc.Velocity()
			v.X, v.Z = headings[i].X, headings[i].Z
			cc.SetVelocity(v)
		}
		w.Step(world.DefaultFixedDelta)
		for _, cc := range characters {
			contacts += len(cc.Contacts())
		}
	}
	elapsed := time.Since(start)

	for _, cc := range characters {
		if cc.Controller() != nil && cc.Controller().IsOnFloor() {
			grounded++
		}
	}

	perTick := elapsed / ticks
	perCharacter := time.Duration(0)
	if count > 0 {
		perCharacter = perTick / time.Duration(count)
	}
	fmt.Printf("%5d characters: %10v/tick | %8v/character | %7d contacts | %4d grounded\n",
		count, perTick.Round(time.Microsecond), perCharacter.Round(time.Nanosecond), contacts, grounded)
}
