package physics

import (
	"slices"

	"charmove3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type rayHit struct {
	Distance float32
	Normal   rl.Vector3
}

// Raycast returns the closest surface on the segment from..to. Volumes the
// ray starts inside are not reported, and objects whose UID is in exclude
// are skipped.
func (p *World) Raycast(from, to rl.Vector3, exclude ...uint64) (engine.RaycastResult, bool) {
	direction := rl.Vector3Subtract(to, from)
	maxDistance := rl.Vector3Length(direction)
	if maxDistance < epsilon {
		return engine.RaycastResult{}, false
	}
	direction = rl.Vector3Scale(direction, 1/maxDistance)

	closest := engine.RaycastResult{Distance: maxDistance}
	hit := false

	p.eachCollidable(func(g *engine.GameObject) {
		if slices.Contains(exclude, g.UID) {
			return
		}
		for _, v := range VolumesOf(g) {
			h, ok := raycastVolume(from, direction, v)
			if !ok || h.Distance > closest.Distance {
				continue
			}
			closest = engine.RaycastResult{
				GameObject: g,
				Point:      rl.Vector3Add(from, rl.Vector3Scale(direction, h.Distance)),
				Normal:     h.Normal,
				Distance:   h.Distance,
			}
			hit = true
		}
	})

	return closest, hit
}

func raycastVolume(origin, direction rl.Vector3, v Volume) (rayHit, bool) {
	if v.Kind == VolumeBox {
		return raycastOBB(origin, direction, v.Box)
	}
	return raycastCapsule(origin, direction, v.A, v.B, v.Radius)
}

// raycastOBB runs the slab test in the box's local frame.
func raycastOBB(origin, direction rl.Vector3, box OBB) (rayHit, bool) {
	o := box.toLocal(origin)
	d := [3]float32{
		rl.Vector3DotProduct(direction, box.Axes[0]),
		rl.Vector3DotProduct(direction, box.Axes[1]),
		rl.Vector3DotProduct(direction, box.Axes[2]),
	}

	tmin, tmax := float32(-math32.MaxFloat32), float32(math32.MaxFloat32)
	axis := -1
	for i := 0; i < 3; i++ {
		h := box.halfSize(i)
		if math32.Abs(d[i]) < epsilon {
			if o[i] < -h || o[i] > h {
				return rayHit{}, false
			}
			continue
		}
		t1 := (-h - o[i]) / d[i]
		t2 := (h - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	// Starting inside (tmin < 0) is not a hit.
	if axis < 0 || tmin > tmax || tmin < 0 {
		return rayHit{}, false
	}

	normal := box.Axes[axis]
	if d[axis] > 0 {
		normal = rl.Vector3Negate(normal)
	}
	return rayHit{Distance: tmin, Normal: normal}, true
}

// raycastCapsule intersects the ray with the capsule's cylinder and both
// end spheres and keeps the nearest entry.
func raycastCapsule(origin, direction, a, b rl.Vector3, radius float32) (rayHit, bool) {
	best := float32(math32.MaxFloat32)
	found := false
	consider := func(t float32) {
		if t >= 0 && t < best {
			best, found = t, true
		}
	}

	ba := rl.Vector3Subtract(b, a)
	oa := rl.Vector3Subtract(origin, a)
	baba := rl.Vector3DotProduct(ba, ba)
	if baba > epsilon {
		bard := rl.Vector3DotProduct(ba, direction)
		baoa := rl.Vector3DotProduct(ba, oa)
		rdoa := rl.Vector3DotProduct(direction, oa)
		oaoa := rl.Vector3DotProduct(oa, oa)

		k2 := baba - bard*bard
		k1 := baba*rdoa - baoa*bard
		k0 := baba*oaoa - baoa*baoa - radius*radius*baba
		if k2 > epsilon {
			if h := k1*k1 - k2*k0; h >= 0 {
				t := (-k1 - math32.Sqrt(h)) / k2
				if y := baoa + t*bard; y > 0 && y < baba {
					consider(t)
				}
			}
		}
	}
	if t, ok := raySphere(origin, direction, a, radius); ok {
		consider(t)
	}
	if t, ok := raySphere(origin, direction, b, radius); ok {
		consider(t)
	}
	if !found {
		return rayHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, best))
	normal := normalOrZero(rl.Vector3Subtract(point, closestOnSegment(a, b, point)))
	return rayHit{Distance: best, Normal: normal}, true
}

// raySphere returns the entry distance of a unit-direction ray. Rays that
// start inside the sphere miss.
func raySphere(origin, direction, center rl.Vector3, radius float32) (float32, bool) {
	oc := rl.Vector3Subtract(origin, center)
	b := rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius
	if c < 0 {
		return 0, false
	}
	h := b*b - c
	if h < 0 {
		return 0, false
	}
	t := -b - math32.Sqrt(h)
	return t, t >= 0
}
