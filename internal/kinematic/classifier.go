package kinematic

import rl "github.com/gen2brain/raylib-go/raylib"

// ClassifyInput is everything the classifier needs about one contact.
type ClassifyInput struct {
	Mode    DetectionMode
	Contact Contact
	// Origin is the body position the contact's travel is measured from.
	Origin rl.Vector3
	// Gravity is the unit gravity direction; "up" is its negation.
	Gravity rl.Vector3
	// WallAngle is in radians.
	WallAngle   float32
	BodySize    float32
	TopShape    string
	BottomShape string
}

// Classify labels a contact as Bottom, Top or Sides. It never returns
// Sliding or None.
func Classify(in ClassifyInput) CollisionState {
	switch in.Mode {
	case DetectCollider:
		return classifyByCollider(in)
	case DetectOffset:
		return classifyByOffset(in)
	default:
		return classifyByAngle(in)
	}
}

func classifyByCollider(in ClassifyInput) CollisionState {
	local := in.Contact.LocalShape.Name
	if local == "" {
		return Sides
	}
	if local == in.BottomShape {
		return Bottom
	}
	if local == in.TopShape {
		return Top
	}
	return Sides
}

func classifyByOffset(in ClassifyInput) CollisionState {
	offset := in.BodySize/2 + bodySizeMargin

	origin := rl.Vector3Add(in.Origin, in.Contact.Travel)
	top := rl.Vector3Add(origin, rl.Vector3Scale(in.Gravity, -offset))
	bottom := rl.Vector3Add(origin, rl.Vector3Scale(in.Gravity, offset))

	if rl.Vector3DotProduct(rl.Vector3Subtract(in.Contact.Position, bottom), in.Gravity) > 0 {
		return Bottom
	}
	if rl.Vector3DotProduct(rl.Vector3Subtract(in.Contact.Position, top), rl.Vector3Negate(in.Gravity)) > 0 {
		return Top
	}
	return Sides
}

func classifyByAngle(in ClassifyInput) CollisionState {
	// No normal, no angle: a surface that can't be measured is not a floor.
	if isZero(in.Contact.Normal) {
		return Sides
	}
	up := rl.Vector3Negate(in.Gravity)
	limit := in.WallAngle + angleThreshold

	if angleTo(up, in.Contact.Normal) <= limit {
		return Bottom
	}
	if angleTo(up, rl.Vector3Negate(in.Contact.Normal)) <= limit {
		return Top
	}
	return Sides
}
