package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	maxLatitude = 89.9
	// occlusionPadding keeps the camera this far in front of an occluder.
	occlusionPadding = 0.5
	// zoomOutRate eases the camera back out once an occluder is gone.
	zoomOutRate = 0.1
	followRate  = 0.5
)

// OcclusionFunc returns the first surface between from and to. The
// caller is expected to leave the orbited target out of the query.
type OcclusionFunc func(from, to rl.Vector3) (hit rl.Vector3, ok bool)

// Orbit is a third person camera circling a target. Latitude and
// longitude are degrees. Without look input, a following camera keeps
// its current bearing to the target and trails behind it.
type Orbit struct {
	Position    rl.Vector3
	Follow      bool
	Sensitivity float32
	Distance    float32
	Fovy        float32
	Occlusion   OcclusionFunc

	up              rl.Vector3
	target          rl.Vector3
	latitude        float32
	longitude       float32
	currentDistance float32
	hasMoved        bool
}

func NewOrbit() *Orbit {
	return &Orbit{
		Follow:      true,
		Sensitivity: 0.25,
		Distance:    10,
		Fovy:        45,
		up:          rl.Vector3{Y: 1},
	}
}

func (o *Orbit) Latitude() float32  { return o.latitude }
func (o *Orbit) Longitude() float32 { return o.longitude }
func (o *Orbit) Up() rl.Vector3     { return o.up }
func (o *Orbit) Target() rl.Vector3 { return o.target }

// SetLatitude clamps to just short of the poles.
func (o *Orbit) SetLatitude(deg float32) {
	o.hasMoved = deg != o.latitude
	o.latitude = max(-maxLatitude, min(deg, maxLatitude))
}

// SetLongitude wraps one turn in either direction back into [0, 360].
func (o *Orbit) SetLongitude(deg float32) {
	o.hasMoved = deg != o.longitude
	switch {
	case deg > 360:
		o.longitude = deg - 360
	case deg < 0:
		o.longitude = deg + 360
	default:
		o.longitude = deg
	}
}

// SetUp changes the orbit axis. A zero vector is ignored.
func (o *Orbit) SetUp(up rl.Vector3) {
	if rl.Vector3Length(up) == 0 {
		return
	}
	o.up = rl.Vector3Normalize(up)
}

// ApplyLook turns the camera by a mouse delta in pixels.
func (o *Orbit) ApplyLook(dx, dy float32) {
	moved := false
	if dy != 0 {
		o.SetLatitude(o.latitude + dy*o.Sensitivity)
		moved = true
	}
	if dx != 0 {
		o.SetLongitude(o.longitude - dx*o.Sensitivity)
		moved = true
	}
	o.hasMoved = moved
}

// baseForward is the bearing longitude is measured from.
func (o *Orbit) baseForward() rl.Vector3 {
	if approxEqual(o.up, rl.Vector3{X: -1}) || approxEqual(o.up, rl.Vector3{X: 1}) {
		return rl.Vector3{Z: 1}
	}
	return rl.Vector3CrossProduct(rl.Vector3{X: 1}, o.up)
}

// Update moves the camera around target for one physics tick.
func (o *Orbit) Update(target rl.Vector3) {
	o.target = target
	forward := o.baseForward()

	if !o.hasMoved && o.Follow {
		direction := rl.Vector3Subtract(o.Position, target)
		direction = rl.Vector3Normalize(rl.Vector3Subtract(direction, rl.Vector3Scale(o.up, rl.Vector3DotProduct(direction, o.up))))

		cross := rl.Vector3CrossProduct(forward, direction)
		radians := math32.Atan2(rl.Vector3Length(cross), rl.Vector3DotProduct(forward, direction))
		if rl.Vector3DotProduct(o.up, cross) < 0 {
			radians = -radians
		}
		o.SetLongitude(radians * rl.Rad2deg)
	}

	aroundUp := rl.Vector3Normalize(rotate(forward, o.up, o.longitude*rl.Deg2rad))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(aroundUp, o.up))
	rotation := rl.Vector3Normalize(rotate(aroundUp, right, o.latitude*rl.Deg2rad))

	distance := o.Distance
	if o.Occlusion != nil {
		if hit, ok := o.Occlusion(target, rl.Vector3Add(target, rl.Vector3Scale(rotation, o.Distance))); ok {
			distance = rl.Vector3Distance(hit, target) - occlusionPadding
		}
	}

	if distance < o.Distance {
		o.currentDistance = distance
	} else {
		o.currentDistance += (distance - o.currentDistance) * zoomOutRate
	}

	position := rl.Vector3Add(target, rl.Vector3Scale(rotation, o.currentDistance))
	rate := float32(followRate)
	if o.hasMoved {
		rate = 1
	}
	o.Position = rl.Vector3Lerp(o.Position, position, rate)

	o.hasMoved = false
}

// Forward is the viewing direction.
func (o *Orbit) Forward() rl.Vector3 {
	view := rl.Vector3Subtract(o.target, o.Position)
	if rl.Vector3Length(view) < 1e-6 {
		return rl.Vector3{Z: -1}
	}
	return rl.Vector3Normalize(view)
}

// Right is the screen right direction.
func (o *Orbit) Right() rl.Vector3 {
	right := rl.Vector3CrossProduct(o.Forward(), o.up)
	if rl.Vector3Length(right) < 1e-6 {
		return rl.Vector3{X: 1}
	}
	return rl.Vector3Normalize(right)
}

func (o *Orbit) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   o.Position,
		Target:     o.target,
		Up:         o.up,
		Fovy:       o.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// rotate turns v about a unit axis by angle radians (right handed).
func rotate(v, axis rl.Vector3, angle float32) rl.Vector3 {
	sin, cos := math32.Sincos(angle)
	rotated := rl.Vector3Scale(v, cos)
	rotated = rl.Vector3Add(rotated, rl.Vector3Scale(rl.Vector3CrossProduct(axis, v), sin))
	return rl.Vector3Add(rotated, rl.Vector3Scale(axis, rl.Vector3DotProduct(axis, v)*(1-cos)))
}

func approxEqual(a, b rl.Vector3) bool {
	const tolerance = 1e-5
	return math32.Abs(a.X-b.X) < tolerance &&
		math32.Abs(a.Y-b.Y) < tolerance &&
		math32.Abs(a.Z-b.Z) < tolerance
}
