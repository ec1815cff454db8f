package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, size, and euler rotation (degrees)
func NewOBB(center, size, rotation rl.Vector3) OBB {
	// Same order as GameObject.WorldMatrix: X, Y, Z
	rotX := rl.MatrixRotateX(rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotation.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	axes := [3]rl.Vector3{
		rl.Vector3Normalize(rl.Vector3{X: rotMatrix.M0, Y: rotMatrix.M1, Z: rotMatrix.M2}),
		rl.Vector3Normalize(rl.Vector3{X: rotMatrix.M4, Y: rotMatrix.M5, Z: rotMatrix.M6}),
		rl.Vector3Normalize(rl.Vector3{X: rotMatrix.M8, Y: rotMatrix.M9, Z: rotMatrix.M10}),
	}

	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: math32.Abs(size.X) / 2, Y: math32.Abs(size.Y) / 2, Z: math32.Abs(size.Z) / 2},
		Axes:     axes,
	}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation)
func NewAABBasOBB(center, size rl.Vector3) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: math32.Abs(size.X) / 2, Y: math32.Abs(size.Y) / 2, Z: math32.Abs(size.Z) / 2},
		Axes: [3]rl.Vector3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// NewOBBFromBox creates an OBB from center, size, rotation, and scale
func NewOBBFromBox(center, size, rotation, scale rl.Vector3) OBB {
	scaledSize := rl.Vector3{
		X: size.X * scale.X,
		Y: size.Y * scale.Y,
		Z: size.Z * scale.Z,
	}
	return NewOBB(center, scaledSize, rotation)
}

func (o OBB) halfSize(i int) float32 {
	switch i {
	case 0:
		return o.HalfSize.X
	case 1:
		return o.HalfSize.Y
	default:
		return o.HalfSize.Z
	}
}

// Translate returns the box moved by d.
func (o OBB) Translate(d rl.Vector3) OBB {
	o.Center = rl.Vector3Add(o.Center, d)
	return o
}

// Bounds returns the world axis-aligned box around o.
func (o OBB) Bounds() AABB {
	var ext rl.Vector3
	for i := 0; i < 3; i++ {
		h := o.halfSize(i)
		ext.X += h * math32.Abs(o.Axes[i].X)
		ext.Y += h * math32.Abs(o.Axes[i].Y)
		ext.Z += h * math32.Abs(o.Axes[i].Z)
	}
	return AABB{Min: rl.Vector3Subtract(o.Center, ext), Max: rl.Vector3Add(o.Center, ext)}
}

// toLocal expresses a world point in the box's axes, relative to its center.
func (o OBB) toLocal(p rl.Vector3) [3]float32 {
	d := rl.Vector3Subtract(p, o.Center)
	return [3]float32{
		rl.Vector3DotProduct(d, o.Axes[0]),
		rl.Vector3DotProduct(d, o.Axes[1]),
		rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// Contains reports whether p is inside or on the box.
func (o OBB) Contains(p rl.Vector3) bool {
	local := o.toLocal(p)
	for i := 0; i < 3; i++ {
		if math32.Abs(local[i]) > o.halfSize(i) {
			return false
		}
	}
	return true
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	// Vector from A's center to B's center
	t := rl.Vector3Subtract(b.Center, a.Center)

	// 15 axes: 3 face normals each, then the 9 edge cross products
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			// Skip near-zero axes (parallel edges)
			if rl.Vector3Length(axis) > 0.0001 {
				axis = rl.Vector3Normalize(axis)
				if !overlapOnAxis(a, b, axis, t) {
					return false
				}
			}
		}
	}

	return true
}

// projectedRadius is the half-length of o's shadow on axis.
func (o OBB) projectedRadius(axis rl.Vector3) float32 {
	return o.HalfSize.X*math32.Abs(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(o.Axes[2], axis))
}

// overlapOnAxis checks if two OBBs overlap when projected onto a given axis
func overlapOnAxis(a, b OBB, axis, t rl.Vector3) bool {
	distance := math32.Abs(rl.Vector3DotProduct(t, axis))
	// If the distance is greater than the sum of projections, there's a separating axis
	return distance <= a.projectedRadius(axis)+b.projectedRadius(axis)
}

// ResolveOBB returns the minimum translation vector to push 'a' out of 'b'
// Returns zero vector if no overlap
func (a OBB) ResolveOBB(b OBB) rl.Vector3 {
	normal, depth, ok := a.SeparatingAxis(b)
	if !ok {
		return rl.Vector3Zero()
	}
	return rl.Vector3Scale(normal, depth)
}

// SeparatingAxis returns the unit direction that pushes 'a' out of 'b' and
// how far along it 'a' has to move. The direction stays exact however
// shallow the overlap is.
func (a OBB) SeparatingAxis(b OBB) (normal rl.Vector3, depth float32, ok bool) {
	if !a.IntersectsOBB(b) {
		return rl.Vector3Zero(), 0, false
	}

	t := rl.Vector3Subtract(b.Center, a.Center)
	minPenetration := float32(math32.MaxFloat32)

	testAxis := func(axis rl.Vector3) {
		if rl.Vector3Length(axis) < 0.0001 {
			return
		}
		axis = rl.Vector3Normalize(axis)

		dist := rl.Vector3DotProduct(t, axis)
		penetration := a.projectedRadius(axis) + b.projectedRadius(axis) - math32.Abs(dist)

		if penetration < minPenetration {
			minPenetration = penetration
			// Push in the direction away from B
			if dist < 0 {
				normal = axis
			} else {
				normal = rl.Vector3Negate(axis)
			}
		}
	}

	for i := 0; i < 3; i++ {
		testAxis(a.Axes[i])
	}
	for i := 0; i < 3; i++ {
		testAxis(b.Axes[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testAxis(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j]))
		}
	}

	if minPenetration <= 0 {
		return rl.Vector3Zero(), 0, false
	}
	return normal, minPenetration, true
}

// ClosestPointOnOBB returns the closest point on or inside the OBB to the given point
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	local := o.toLocal(point)

	result := o.Center
	for i := 0; i < 3; i++ {
		h := o.halfSize(i)
		result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[i], clampf(local[i], -h, h)))
	}
	return result
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
