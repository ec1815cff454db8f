package kinematic

import "fmt"

// ShapeKind identifies the geometry of a collision shape.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCapsule
	ShapeSphere
	ShapeCylinder
)

var shapeKindNames = map[ShapeKind]string{
	ShapeBox:      "box",
	ShapeCapsule:  "capsule",
	ShapeSphere:   "sphere",
	ShapeCylinder: "cylinder",
}

func (k ShapeKind) String() string {
	if name, ok := shapeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// Shape names one collision shape of a body. Name is what the collider
// detection mode matches against.
type Shape struct {
	Name string
	Kind ShapeKind
}

// RoundedCorners reports whether the shape glides over ledges on its own,
// in which case stepping is never attempted.
func (s Shape) RoundedCorners() bool {
	return s.Kind == ShapeCapsule || s.Kind == ShapeSphere
}
