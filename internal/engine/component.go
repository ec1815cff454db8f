package engine

import "charmove3d/internal/kinematic"

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// FixedUpdater is implemented by components that run on the physics tick
// instead of the frame tick.
type FixedUpdater interface {
	FixedUpdate(deltaTime float32)
}

// WorldAware is implemented by components that query the collision world.
// The world calls SetWorld before Start.
type WorldAware interface {
	SetWorld(w WorldAccess)
}

// ContactHandler is implemented by components that want the contacts a
// character controller on the same GameObject made during its last move.
type ContactHandler interface {
	OnContact(contact kinematic.Contact)
}

// CollisionHandler is implemented by components that want to know when the
// physics world starts or stops resolving an overlap with another object.
type CollisionHandler interface {
	OnCollisionEnter(other *GameObject)
	OnCollisionExit(other *GameObject)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
