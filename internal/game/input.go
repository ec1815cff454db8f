package game

import (
	"charmove3d/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// keys is the raw keyboard state of one frame.
type keys struct {
	forward, back, left, right bool
	jumpPressed, jumpDown      bool
}

func readKeys() keys {
	return keys{
		forward:     rl.IsKeyDown(rl.KeyW),
		back:        rl.IsKeyDown(rl.KeyS),
		left:        rl.IsKeyDown(rl.KeyA),
		right:       rl.IsKeyDown(rl.KeyD),
		jumpPressed: rl.IsKeyPressed(rl.KeySpace),
		jumpDown:    rl.IsKeyDown(rl.KeySpace),
	}
}

// inputLatch turns per-frame key state into per-tick player input. Frames
// can run without a physics tick, so a jump press is held until a tick has
// seen it.
type inputLatch struct {
	in components.PlayerInput
}

func (l *inputLatch) sample(k keys) {
	var move rl.Vector2
	if k.forward {
		move.Y++
	}
	if k.back {
		move.Y--
	}
	if k.right {
		move.X++
	}
	if k.left {
		move.X--
	}
	l.in.Move = move
	l.in.Jump = l.in.Jump || k.jumpPressed
	l.in.JumpHeld = k.jumpDown
}

func (l *inputLatch) current() components.PlayerInput {
	return l.in
}

// consume clears the press once a physics tick has used it.
func (l *inputLatch) consume() {
	l.in.Jump = false
}
