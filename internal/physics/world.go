package physics

import (
	"charmove3d/internal/components"
	"charmove3d/internal/engine"
	"charmove3d/internal/logger"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const CellSize = 5.0

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(math32.Floor(pos.X / CellSize)),
		Y: int(math32.Floor(pos.Y / CellSize)),
		Z: int(math32.Floor(pos.Z / CellSize)),
	}
}

// CollisionPair represents two objects that are colliding
type CollisionPair struct {
	A, B *engine.GameObject
}

// makePair creates a consistent collision pair (smaller UID first)
func makePair(a, b *engine.GameObject) CollisionPair {
	if a.UID > b.UID {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

// World is the collision world characters move through. It integrates
// rigid bodies and answers the sweep and ray queries of character
// controllers.
type World struct {
	Objects    []*engine.GameObject // dynamic rigidbodies
	Kinematics []*engine.GameObject // kinematic rigidbodies (moving platforms)
	Statics    []*engine.GameObject // no rigidbody (walls, floor)
	Characters []*engine.GameObject // moved by their own CharacterController

	gravity rl.Vector3
	grid    map[CellKey][]*engine.GameObject

	// Collision tracking for callbacks
	activeCollisions  map[CollisionPair]bool // collisions from last step
	currentCollisions map[CollisionPair]bool // collisions this step

	log *zap.Logger
}

func NewWorld() *World {
	return &World{
		gravity:           rl.Vector3{X: 0, Y: -9.8, Z: 0},
		grid:              make(map[CellKey][]*engine.GameObject),
		activeCollisions:  make(map[CollisionPair]bool),
		currentCollisions: make(map[CollisionPair]bool),
		log:               logger.Named("physics"),
	}
}

// Gravity is the acceleration applied to dynamic bodies.
func (p *World) Gravity() rl.Vector3 {
	return p.gravity
}

func (p *World) SetGravity(g rl.Vector3) {
	p.gravity = g
}

// AddObject sorts g into the list matching its components. Objects without
// colliders are ignored.
func (p *World) AddObject(g *engine.GameObject) {
	if len(engine.GetComponents[components.Collider](g)) == 0 {
		return
	}

	rb := engine.GetComponent[*components.Rigidbody](g)
	kind := "static"
	switch {
	case engine.GetComponent[*components.CharacterController](g) != nil:
		p.Characters = append(p.Characters, g)
		kind = "character"
	case rb == nil:
		p.Statics = append(p.Statics, g)
	case rb.IsKinematic:
		p.Kinematics = append(p.Kinematics, g)
		kind = "kinematic"
	default:
		p.Objects = append(p.Objects, g)
		kind = "dynamic"
	}
	p.log.Debug("added object",
		zap.String("object", g.Name),
		zap.Uint64("uid", g.UID),
		zap.String("kind", kind))
}

func (p *World) RemoveObject(g *engine.GameObject) {
	for _, list := range []*[]*engine.GameObject{&p.Objects, &p.Kinematics, &p.Statics, &p.Characters} {
		for i, obj := range *list {
			if obj == g {
				*list = append((*list)[:i], (*list)[i+1:]...)
				p.forget(g)
				return
			}
		}
	}
}

// forget drops collision tracking for a removed object without firing exits.
func (p *World) forget(g *engine.GameObject) {
	for pair := range p.activeCollisions {
		if pair.A == g || pair.B == g {
			delete(p.activeCollisions, pair)
		}
	}
}

// DynamicObjectCount returns the number of dynamic physics objects
func (p *World) DynamicObjectCount() int {
	return len(p.Objects)
}

func (p *World) eachCollidable(fn func(g *engine.GameObject)) {
	for _, list := range [][]*engine.GameObject{p.Statics, p.Kinematics, p.Objects, p.Characters} {
		for _, g := range list {
			if g.Active {
				fn(g)
			}
		}
	}
}

// rebuildGrid clears and repopulates the spatial hash grid
func (p *World) rebuildGrid() {
	for k := range p.grid {
		delete(p.grid, k)
	}
	for _, obj := range p.Objects {
		cell := posToCell(obj.WorldPosition())
		p.grid[cell] = append(p.grid[cell], obj)
	}
}

// getNeighborObjects returns all objects in same cell and 26 neighboring cells
func (p *World) getNeighborObjects(obj *engine.GameObject) []*engine.GameObject {
	cell := posToCell(obj.WorldPosition())
	var neighbors []*engine.GameObject

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				neighbors = append(neighbors, p.grid[key]...)
			}
		}
	}
	return neighbors
}

// Update advances rigid bodies by one fixed step. Characters are moved by
// their controllers before this runs; here they only act as obstacles and
// get pushed out of moving platforms.
func (p *World) Update(deltaTime float32) {
	if !(deltaTime > 0) {
		return
	}
	p.currentCollisions = make(map[CollisionPair]bool)

	// 1. Kinematic bodies follow their velocity
	for _, obj := range p.Kinematics {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || !obj.Active {
			continue
		}
		obj.SetWorldPosition(rl.Vector3Add(obj.WorldPosition(), rl.Vector3Scale(rb.Velocity, deltaTime)))
	}

	// 2. Apply gravity and integrate dynamic bodies
	for _, obj := range p.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsSleeping || !obj.Active {
			continue
		}

		if rb.UseGravity {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.gravity, deltaTime))
		}

		damping := 1 - rb.LinearDamping*deltaTime
		if damping < 0 {
			damping = 0
		}
		rb.Velocity = rl.Vector3Scale(rb.Velocity, damping)

		obj.SetWorldPosition(rl.Vector3Add(obj.WorldPosition(), rl.Vector3Scale(rb.Velocity, deltaTime)))

		rb.TrySleep(deltaTime)
	}

	// 3. Dynamic vs dynamic through the spatial grid
	p.rebuildGrid()
	checked := make(map[CollisionPair]bool)
	for _, obj := range p.Objects {
		for _, other := range p.getNeighborObjects(obj) {
			if obj == other {
				continue
			}
			pair := makePair(obj, other)
			if checked[pair] {
				continue
			}
			checked[pair] = true
			p.resolveCollision(pair.A, pair.B)
		}
	}

	// 4. Dynamic vs everything that doesn't yield to it
	for _, obj := range p.Objects {
		for _, list := range [][]*engine.GameObject{p.Kinematics, p.Statics, p.Characters} {
			for _, solid := range list {
				p.resolveSolidCollision(obj, solid)
			}
		}
	}

	// 5. Platforms shove characters out of the way
	for _, kinematic := range p.Kinematics {
		for _, character := range p.Characters {
			p.resolveCharacterOverlap(character, kinematic)
		}
	}

	// 6. Dispatch collision callbacks
	p.dispatchCollisionCallbacks()
}

// penetrationBetween returns the deepest overlap of a's volumes in b's.
func penetrationBetween(a, b *engine.GameObject) (Overlap, bool) {
	var (
		deepest Overlap
		found   bool
	)
	others := VolumesOf(b)
	for _, va := range VolumesOf(a) {
		for _, vb := range others {
			o, ok := Separation(va, vb)
			if !ok {
				continue
			}
			if !found || o.Depth > deepest.Depth {
				deepest, found = o, true
			}
		}
	}
	return deepest, found
}

// recordCollision marks a collision pair as active this step and wakes sleeping objects
func (p *World) recordCollision(a, b *engine.GameObject) {
	p.currentCollisions[makePair(a, b)] = true

	// Only wake on significant relative velocity so settled stacks stay asleep
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	relSpeed := rl.Vector3Length(rl.Vector3Subtract(velocityOf(a), velocityOf(b)))
	if relSpeed <= components.SleepVelocityThreshold*2 {
		return
	}
	if rbA != nil && rbA.IsSleeping {
		rbA.Wake()
	}
	if rbB != nil && rbB.IsSleeping {
		rbB.Wake()
	}
}

// dispatchCollisionCallbacks sends OnCollisionEnter/Exit to handlers
func (p *World) dispatchCollisionCallbacks() {
	for pair := range p.currentCollisions {
		if !p.activeCollisions[pair] {
			notifyCollisionEnter(pair.A, pair.B)
			notifyCollisionEnter(pair.B, pair.A)
		}
	}

	for pair := range p.activeCollisions {
		if !p.currentCollisions[pair] {
			notifyCollisionExit(pair.A, pair.B)
			notifyCollisionExit(pair.B, pair.A)
		}
	}

	// Swap buffers
	p.activeCollisions = p.currentCollisions
}

func notifyCollisionEnter(obj, other *engine.GameObject) {
	for _, handler := range engine.GetComponents[engine.CollisionHandler](obj) {
		handler.OnCollisionEnter(other)
	}
}

func notifyCollisionExit(obj, other *engine.GameObject) {
	for _, handler := range engine.GetComponents[engine.CollisionHandler](obj) {
		handler.OnCollisionExit(other)
	}
}

// resolveCollision separates two dynamic bodies and exchanges momentum.
func (p *World) resolveCollision(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil || !a.Active || !b.Active {
		return
	}

	// Skip if both objects are sleeping
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}

	overlap, ok := penetrationBetween(a, b)
	if !ok {
		return
	}
	pushOut := overlap.MTV()

	p.recordCollision(a, b)

	// Split the push based on mass ratio
	invA, invB := rbA.InverseMass(), rbB.InverseMass()
	invTotal := invA + invB
	if invTotal == 0 {
		return
	}
	a.SetWorldPosition(rl.Vector3Add(a.WorldPosition(), rl.Vector3Scale(pushOut, invA/invTotal)))
	b.SetWorldPosition(rl.Vector3Subtract(b.WorldPosition(), rl.Vector3Scale(pushOut, invB/invTotal)))

	normal := overlap.Normal
	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)

	// Only resolve if objects are moving toward each other
	if velAlongNormal > 0 {
		return
	}

	e := (rbA.Bounciness + rbB.Bounciness) / 2
	j := -(1 + e) * velAlongNormal / invTotal

	impulse := rl.Vector3Scale(normal, j)
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, invA))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, invB))
}

// resolveSolidCollision pushes a dynamic body fully out of something that
// does not move in response, and removes the approaching velocity relative
// to it.
func (p *World) resolveSolidCollision(obj, solid *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](obj)
	if rb == nil || !obj.Active || !solid.Active {
		return
	}

	overlap, ok := penetrationBetween(obj, solid)
	if !ok {
		return
	}
	pushOut := overlap.MTV()

	p.recordCollision(obj, solid)

	obj.SetWorldPosition(rl.Vector3Add(obj.WorldPosition(), pushOut))

	normal := overlap.Normal
	solidVel := velocityOf(solid)
	relVel := rl.Vector3Subtract(rb.Velocity, solidVel)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)
	if velAlongNormal >= 0 {
		return
	}

	relVel = rl.Vector3Add(relVel, rl.Vector3Scale(normal, -(1+rb.Bounciness)*velAlongNormal))

	// Friction on the tangential part
	tangent := rl.Vector3Subtract(relVel, rl.Vector3Scale(normal, rl.Vector3DotProduct(relVel, normal)))
	relVel = rl.Vector3Subtract(relVel, rl.Vector3Scale(tangent, rb.Friction))

	rb.Velocity = rl.Vector3Add(relVel, solidVel)
	if rb.IsSleeping && rl.Vector3Length(solidVel) > 0 {
		rb.Wake()
	}
}

// resolveCharacterOverlap moves a character out of a kinematic body that
// moved into it.
func (p *World) resolveCharacterOverlap(character, kinematic *engine.GameObject) {
	if !character.Active || !kinematic.Active {
		return
	}
	overlap, ok := penetrationBetween(character, kinematic)
	if !ok {
		return
	}

	p.recordCollision(character, kinematic)

	// Leave the sweep margin so the next move starts out of contact
	pushOut := rl.Vector3Scale(overlap.Normal, overlap.Depth+SafeMargin)
	character.SetWorldPosition(rl.Vector3Add(character.WorldPosition(), pushOut))
}
