package physics

import (
	"slices"

	"charmove3d/internal/engine"
	"charmove3d/internal/kinematic"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SafeMargin is the gap a sweep leaves between the moved volumes and what
// they hit, so the next query starts out of contact.
const SafeMargin = 0.001

const (
	maxSweepSteps = 64
	bisectSteps   = 12
	// Volumes already overlapping an obstacle only block motion heading
	// into it faster than this fraction of the motion length.
	touchingTolerance = 1e-4
)

// SweepHit is the first obstacle met by a set of volumes moving together.
type SweepHit struct {
	Object *engine.GameObject
	// Fraction of the motion that can be travelled without touching.
	Fraction float32
	// Normal points out of the obstacle.
	Normal rl.Vector3
	// Point is on the obstacle, nearest the moving volume at impact.
	Point rl.Vector3
	Shape kinematic.Shape
	Local kinematic.Shape
}

type sweepPair struct {
	obj    *engine.GameObject
	moving int
	other  Volume
}

// Sweep moves volumes by motion and reports the first obstacle in the way.
// Objects whose UID is in exclude are ignored.
func (p *World) Sweep(volumes []Volume, motion rl.Vector3, exclude ...uint64) (SweepHit, bool) {
	length := rl.Vector3Length(motion)
	if len(volumes) == 0 || length < epsilon || math32.IsNaN(length) {
		return SweepHit{}, false
	}

	pairs := p.sweepCandidates(volumes, motion, exclude)
	if len(pairs) == 0 {
		return SweepHit{}, false
	}

	// Overlaps at the start block motion into the obstacle and are ignored
	// otherwise, so a body can always move out of penetration.
	var (
		start    SweepHit
		blocking bool
		worst    = float32(-touchingTolerance)
	)
	free := pairs[:0]
	for _, pr := range pairs {
		o, ok := Separation(volumes[pr.moving], pr.other)
		if !ok {
			free = append(free, pr)
			continue
		}
		n := o.Normal
		if along := rl.Vector3DotProduct(motion, n) / length; along < worst {
			worst = along
			start = newSweepHit(pr, volumes[pr.moving], 0, n)
			blocking = true
		}
	}
	if blocking {
		return start, true
	}
	pairs = free
	if len(pairs) == 0 {
		return SweepHit{}, false
	}

	steps := sweepSteps(volumes, length)
	lo := float32(0)
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps)
		if _, _, hit := deepestOverlap(volumes, pairs, motion, t); !hit {
			lo = t
			continue
		}

		hi := t
		for j := 0; j < bisectSteps; j++ {
			mid := (lo + hi) / 2
			if _, _, hit := deepestOverlap(volumes, pairs, motion, mid); hit {
				hi = mid
			} else {
				lo = mid
			}
		}

		// The overlap at hi is far too shallow for its MTV to have a
		// measurable length, but its direction is still exact.
		pr, o, _ := deepestOverlap(volumes, pairs, motion, hi)
		moved := volumes[pr.moving].Translate(rl.Vector3Scale(motion, lo))
		fraction := max(0, lo-SafeMargin/length)
		return newSweepHit(pr, moved, fraction, o.Normal), true
	}
	return SweepHit{}, false
}

func newSweepHit(pr sweepPair, moving Volume, fraction float32, normal rl.Vector3) SweepHit {
	return SweepHit{
		Object:   pr.obj,
		Fraction: fraction,
		Normal:   normal,
		Point:    pr.other.ClosestPoint(moving.Center()),
		Shape:    pr.other.Shape,
		Local:    moving.Shape,
	}
}

// sweepSteps keeps each marching step under half the thinnest moving volume.
func sweepSteps(volumes []Volume, length float32) int {
	thinnest := float32(math32.MaxFloat32)
	for _, v := range volumes {
		thinnest = min(thinnest, v.Thickness())
	}
	if thinnest <= epsilon {
		return maxSweepSteps
	}
	steps := int(math32.Ceil(length / (thinnest / 2)))
	return max(1, min(steps, maxSweepSteps))
}

func (p *World) sweepCandidates(volumes []Volume, motion rl.Vector3, exclude []uint64) []sweepPair {
	swept := make([]AABB, len(volumes))
	for i, v := range volumes {
		swept[i] = v.Bounds().Swept(motion).Expand(SafeMargin)
	}

	var pairs []sweepPair
	p.eachCollidable(func(g *engine.GameObject) {
		if slices.Contains(exclude, g.UID) {
			return
		}
		for _, other := range VolumesOf(g) {
			bounds := other.Bounds()
			for i := range volumes {
				if swept[i].Intersects(bounds) {
					pairs = append(pairs, sweepPair{obj: g, moving: i, other: other})
				}
			}
		}
	})
	return pairs
}

// deepestOverlap moves the volumes by motion*t and returns the pair that
// penetrates the most.
func deepestOverlap(volumes []Volume, pairs []sweepPair, motion rl.Vector3, t float32) (sweepPair, Overlap, bool) {
	offset := rl.Vector3Scale(motion, t)

	var (
		best    sweepPair
		deepest Overlap
		found   bool
	)
	for _, pr := range pairs {
		o, ok := Separation(volumes[pr.moving].Translate(offset), pr.other)
		if !ok {
			continue
		}
		if !found || o.Depth > deepest.Depth {
			best, deepest, found = pr, o, true
		}
	}
	return best, deepest, found
}
