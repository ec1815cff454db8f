package kinematic

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var zero = rl.Vector3{}

func isZero(v rl.Vector3) bool {
	return v == zero
}

// slide removes the component of v along the unit normal n.
func slide(v, n rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(v, rl.Vector3Scale(n, rl.Vector3DotProduct(v, n)))
}

// project returns the component of v along onto.
func project(v, onto rl.Vector3) rl.Vector3 {
	lenSq := rl.Vector3DotProduct(onto, onto)
	if lenSq == 0 {
		return zero
	}
	return rl.Vector3Scale(onto, rl.Vector3DotProduct(v, onto)/lenSq)
}

// angleTo is the unsigned angle between a and b in radians.
func angleTo(a, b rl.Vector3) float32 {
	cross := rl.Vector3Length(rl.Vector3CrossProduct(a, b))
	return math32.Atan2(cross, rl.Vector3DotProduct(a, b))
}
