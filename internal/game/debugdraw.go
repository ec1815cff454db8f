package game

import (
	"charmove3d/internal/components"
	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"
	"charmove3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	normalLength  = 0.6
	contactRadius = 0.05
)

// drawObject draws every collider volume of obj, with wireframes when
// debugging.
func drawObject(obj *engine.GameObject, color rl.Color, wires bool) {
	for _, v := range physics.VolumesOf(obj) {
		switch v.Kind {
		case physics.VolumeBox:
			drawBox(v.Box, color)
			if wires {
				drawBoxWires(v.Box, rl.Fade(rl.White, 0.4))
			}
		case physics.VolumeCapsule:
			if v.A == v.B {
				rl.DrawSphere(v.A, v.Radius, color)
				if wires {
					rl.DrawSphereWires(v.A, v.Radius, 8, 8, rl.Fade(rl.White, 0.4))
				}
				continue
			}
			rl.DrawCapsule(v.A, v.B, v.Radius, 12, 6, color)
			if wires {
				rl.DrawCapsuleWires(v.A, v.B, v.Radius, 12, 6, rl.Fade(rl.White, 0.4))
			}
		}
	}
}

func boxCorners(box physics.OBB) [8]rl.Vector3 {
	var corners [8]rl.Vector3
	for i := range corners {
		p := box.Center
		for axis := 0; axis < 3; axis++ {
			h := [3]float32{box.HalfSize.X, box.HalfSize.Y, box.HalfSize.Z}[axis]
			if i&(1<<axis) == 0 {
				h = -h
			}
			p = rl.Vector3Add(p, rl.Vector3Scale(box.Axes[axis], h))
		}
		corners[i] = p
	}
	return corners
}

// boxFaces lists each face's corners in winding order. Corner index bits
// are x, y, z from low to high.
var boxFaces = [6][4]int{
	{0, 2, 6, 4}, // -X
	{1, 5, 7, 3}, // +X
	{0, 4, 5, 1}, // -Y
	{2, 3, 7, 6}, // +Y
	{0, 1, 3, 2}, // -Z
	{4, 6, 7, 5}, // +Z
}

var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func drawBox(box physics.OBB, color rl.Color) {
	corners := boxCorners(box)
	// Face winding flips with the sign of the axes, so draw both sides.
	rl.DisableBackfaceCulling()
	for _, f := range boxFaces {
		rl.DrawTriangle3D(corners[f[0]], corners[f[1]], corners[f[2]], color)
		rl.DrawTriangle3D(corners[f[0]], corners[f[2]], corners[f[3]], color)
	}
	rl.EnableBackfaceCulling()
}

func drawBoxWires(box physics.OBB, color rl.Color) {
	corners := boxCorners(box)
	for _, e := range boxEdges {
		rl.DrawLine3D(corners[e[0]], corners[e[1]], color)
	}
}

// drawContacts marks each contact point with its surface normal.
func drawContacts(contacts []kinematic.Contact) {
	for _, c := range contacts {
		rl.DrawSphere(c.Position, contactRadius, rl.Red)
		rl.DrawLine3D(c.Position, rl.Vector3Add(c.Position, rl.Vector3Scale(c.Normal, normalLength)), rl.Yellow)
	}
}

// drawCharacterAxes shows the solver's gravity, floor normal and velocity
// from the character's origin.
func drawCharacterAxes(obj *engine.GameObject, cc *components.CharacterController) {
	ctrl := cc.Controller()
	if ctrl == nil {
		return
	}
	origin := obj.WorldPosition()
	rl.DrawLine3D(origin, rl.Vector3Add(origin, ctrl.Gravity()), rl.Purple)
	if ctrl.IsOnFloor() {
		rl.DrawLine3D(origin, rl.Vector3Add(origin, ctrl.FloorNormal()), rl.Green)
	}
	rl.DrawLine3D(origin, rl.Vector3Add(origin, rl.Vector3Scale(ctrl.LinearVelocity, 0.25)), rl.SkyBlue)
}
