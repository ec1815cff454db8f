package kinematic

import "strings"

// CollisionState is the set of surfaces touched during the last MoveAndSlide.
type CollisionState uint8

const (
	None    CollisionState = 0x0
	Top     CollisionState = 0x2
	Sides   CollisionState = 0x4
	Bottom  CollisionState = 0x8
	Sliding CollisionState = 0x10
)

// Has reports whether every bit of flag is set.
func (s CollisionState) Has(flag CollisionState) bool {
	return flag != None && s&flag == flag
}

func (s CollisionState) String() string {
	if s == None {
		return "None"
	}
	var parts []string
	for _, f := range []struct {
		flag CollisionState
		name string
	}{
		{Top, "Top"},
		{Sides, "Sides"},
		{Bottom, "Bottom"},
		{Sliding, "Sliding"},
	} {
		if s.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}
