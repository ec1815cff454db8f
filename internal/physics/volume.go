package physics

import (
	"charmove3d/internal/components"
	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const epsilon = 1e-6

// VolumeKind is the narrow-phase geometry of a Volume.
type VolumeKind uint8

const (
	VolumeBox VolumeKind = iota
	// VolumeCapsule also covers spheres, whose segment has zero length.
	VolumeCapsule
)

// Volume is one convex collision volume in world space.
type Volume struct {
	Kind   VolumeKind
	Box    OBB
	A, B   rl.Vector3 // capsule segment end points
	Radius float32
	Shape  kinematic.Shape
}

func BoxVolume(box OBB, shape kinematic.Shape) Volume {
	return Volume{Kind: VolumeBox, Box: box, Shape: shape}
}

func CapsuleVolume(a, b rl.Vector3, radius float32, shape kinematic.Shape) Volume {
	return Volume{Kind: VolumeCapsule, A: a, B: b, Radius: radius, Shape: shape}
}

func SphereVolume(center rl.Vector3, radius float32, shape kinematic.Shape) Volume {
	return CapsuleVolume(center, center, radius, shape)
}

// VolumesOf builds the world-space volumes of every collider on g.
func VolumesOf(g *engine.GameObject) []Volume {
	var volumes []Volume
	for _, c := range engine.GetComponents[components.Collider](g) {
		switch col := c.(type) {
		case *components.BoxCollider:
			obb := NewOBBFromBox(col.GetCenter(), col.Size, g.WorldRotation(), g.WorldScale())
			volumes = append(volumes, BoxVolume(obb, col.Shape()))
		case *components.SphereCollider:
			volumes = append(volumes, SphereVolume(col.GetCenter(), col.GetWorldRadius(), col.Shape()))
		case *components.CapsuleCollider:
			a, b := col.Segment()
			volumes = append(volumes, CapsuleVolume(a, b, col.GetWorldRadius(), col.Shape()))
		}
	}
	return volumes
}

func (v Volume) Translate(d rl.Vector3) Volume {
	if v.Kind == VolumeBox {
		v.Box = v.Box.Translate(d)
		return v
	}
	v.A = rl.Vector3Add(v.A, d)
	v.B = rl.Vector3Add(v.B, d)
	return v
}

func (v Volume) Center() rl.Vector3 {
	if v.Kind == VolumeBox {
		return v.Box.Center
	}
	return rl.Vector3Lerp(v.A, v.B, 0.5)
}

func (v Volume) Bounds() AABB {
	if v.Kind == VolumeBox {
		return v.Box.Bounds()
	}
	r := rl.Vector3{X: v.Radius, Y: v.Radius, Z: v.Radius}
	return AABB{
		Min: rl.Vector3Subtract(rl.Vector3{X: min(v.A.X, v.B.X), Y: min(v.A.Y, v.B.Y), Z: min(v.A.Z, v.B.Z)}, r),
		Max: rl.Vector3Add(rl.Vector3{X: max(v.A.X, v.B.X), Y: max(v.A.Y, v.B.Y), Z: max(v.A.Z, v.B.Z)}, r),
	}
}

// Thickness is the smallest full extent of the volume.
func (v Volume) Thickness() float32 {
	if v.Kind == VolumeBox {
		h := v.Box.HalfSize
		return 2 * min(h.X, h.Y, h.Z)
	}
	return 2 * v.Radius
}

// ClosestPoint returns the point of v nearest to p.
func (v Volume) ClosestPoint(p rl.Vector3) rl.Vector3 {
	if v.Kind == VolumeBox {
		return ClosestPointOnOBB(v.Box, p)
	}
	onSegment := closestOnSegment(v.A, v.B, p)
	d := rl.Vector3Subtract(p, onSegment)
	dist := rl.Vector3Length(d)
	if dist <= v.Radius {
		return p
	}
	return rl.Vector3Add(onSegment, rl.Vector3Scale(d, v.Radius/dist))
}

// boundingBox is the tightest OBB around a capsule, aligned with its segment.
func (v Volume) boundingBox() OBB {
	if v.Kind == VolumeBox {
		return v.Box
	}
	axis := rl.Vector3Subtract(v.B, v.A)
	length := rl.Vector3Length(axis)
	up := rl.Vector3{Y: 1}
	if length > epsilon {
		up = rl.Vector3Scale(axis, 1/length)
	}
	side := rl.Vector3CrossProduct(up, rl.Vector3{Z: 1})
	if rl.Vector3Length(side) < 0.001 {
		side = rl.Vector3CrossProduct(up, rl.Vector3{X: 1})
	}
	side = rl.Vector3Normalize(side)
	front := rl.Vector3CrossProduct(side, up)
	return OBB{
		Center:   v.Center(),
		HalfSize: rl.Vector3{X: v.Radius, Y: length/2 + v.Radius, Z: v.Radius},
		Axes:     [3]rl.Vector3{side, up, front},
	}
}

// Overlap is how two volumes interpenetrate: a unit Normal pushing the
// first out of the second, and the Depth to move along it.
type Overlap struct {
	Normal rl.Vector3
	Depth  float32
}

// MTV is the minimum translation vector.
func (o Overlap) MTV() rl.Vector3 {
	return rl.Vector3Scale(o.Normal, o.Depth)
}

// Penetration returns the minimum translation that moves a out of b. It
// reports false when the volumes are apart or only touching.
func Penetration(a, b Volume) (rl.Vector3, bool) {
	o, ok := Separation(a, b)
	return o.MTV(), ok
}

// Separation is Penetration with the direction kept apart from the depth,
// so contacts found a hair inside an obstacle still carry a usable normal.
func Separation(a, b Volume) (Overlap, bool) {
	switch {
	case a.Kind == VolumeBox && b.Kind == VolumeBox:
		return boxSeparation(a.Box, b.Box)
	case a.Kind == VolumeCapsule && b.Kind == VolumeBox:
		return capsuleBoxSeparation(a, b.Box)
	case a.Kind == VolumeBox && b.Kind == VolumeCapsule:
		o, ok := capsuleBoxSeparation(b, a.Box)
		o.Normal = rl.Vector3Negate(o.Normal)
		return o, ok
	default:
		return capsuleCapsuleSeparation(a, b)
	}
}

func boxSeparation(a, b OBB) (Overlap, bool) {
	n, depth, ok := a.SeparatingAxis(b)
	return Overlap{Normal: n, Depth: depth}, ok
}

func capsuleBoxSeparation(c Volume, box OBB) (Overlap, bool) {
	p, q := closestSegmentOBB(c.A, c.B, box)
	d := rl.Vector3Subtract(p, q)
	dist := rl.Vector3Length(d)
	if dist >= c.Radius {
		return Overlap{}, false
	}
	if dist > epsilon {
		return Overlap{Normal: rl.Vector3Scale(d, 1/dist), Depth: c.Radius - dist}, true
	}
	// The segment itself is inside the box.
	return boxSeparation(c.boundingBox(), box)
}

func capsuleCapsuleSeparation(a, b Volume) (Overlap, bool) {
	p, q := closestSegmentSegment(a.A, a.B, b.A, b.B)
	d := rl.Vector3Subtract(p, q)
	dist := rl.Vector3Length(d)
	radii := a.Radius + b.Radius
	if dist >= radii {
		return Overlap{}, false
	}
	if dist > epsilon {
		return Overlap{Normal: rl.Vector3Scale(d, 1/dist), Depth: radii - dist}, true
	}
	// Crossing segments: push along the axis between centers, or up.
	n := rl.Vector3Subtract(a.Center(), b.Center())
	if rl.Vector3Length(n) < epsilon {
		n = rl.Vector3{Y: 1}
	}
	return Overlap{Normal: rl.Vector3Normalize(n), Depth: radii}, true
}

func closestOnSegment(a, b, p rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	l := rl.Vector3DotProduct(ab, ab)
	if l < epsilon {
		return a
	}
	t := clampf(rl.Vector3DotProduct(rl.Vector3Subtract(p, a), ab)/l, 0, 1)
	return rl.Vector3Add(a, rl.Vector3Scale(ab, t))
}

// closestSegmentOBB alternates projections between the segment and the box,
// which converges on the closest pair for convex sets.
func closestSegmentOBB(a, b rl.Vector3, box OBB) (onSegment, onBox rl.Vector3) {
	onSegment = closestOnSegment(a, b, box.Center)
	for i := 0; i < 8; i++ {
		onBox = ClosestPointOnOBB(box, onSegment)
		next := closestOnSegment(a, b, onBox)
		if rl.Vector3Distance(next, onSegment) < epsilon {
			onSegment = next
			break
		}
		onSegment = next
	}
	return onSegment, ClosestPointOnOBB(box, onSegment)
}

// closestSegmentSegment returns the closest points between segments p1q1
// and p2q2.
func closestSegmentSegment(p1, q1, p2, q2 rl.Vector3) (c1, c2 rl.Vector3) {
	d1 := rl.Vector3Subtract(q1, p1)
	d2 := rl.Vector3Subtract(q2, p2)
	r := rl.Vector3Subtract(p1, p2)
	a := rl.Vector3DotProduct(d1, d1)
	e := rl.Vector3DotProduct(d2, d2)
	f := rl.Vector3DotProduct(d2, r)

	var s, t float32
	switch {
	case a <= epsilon && e <= epsilon:
	case a <= epsilon:
		t = clampf(f/e, 0, 1)
	default:
		c := rl.Vector3DotProduct(d1, r)
		if e <= epsilon {
			s = clampf(-c/a, 0, 1)
			break
		}
		b := rl.Vector3DotProduct(d1, d2)
		if denom := a*e - b*b; denom != 0 {
			s = clampf((b*f-c*e)/denom, 0, 1)
		}
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clampf(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = clampf((b-c)/a, 0, 1)
		}
	}
	return rl.Vector3Add(p1, rl.Vector3Scale(d1, s)), rl.Vector3Add(p2, rl.Vector3Scale(d2, t))
}

func normalOrZero(v rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l < epsilon || math32.IsNaN(l) {
		return rl.Vector3Zero()
	}
	return rl.Vector3Scale(v, 1/l)
}
