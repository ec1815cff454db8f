package engine

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Props readers accept what the yaml decoder produces for untyped maps:
// ints and floats for numbers, []any for sequences.

func toFloat32(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case uint64:
		return float32(n), true
	}
	return 0, false
}

// PropFloat reads a number. A missing key leaves dst untouched.
func PropFloat(data map[string]any, key string, dst *float32) error {
	v, ok := data[key]
	if !ok {
		return nil
	}
	f, ok := toFloat32(v)
	if !ok {
		return fmt.Errorf("%s: want number, got %T", key, v)
	}
	*dst = f
	return nil
}

// PropBool reads a boolean. A missing key leaves dst untouched.
func PropBool(data map[string]any, key string, dst *bool) error {
	v, ok := data[key]
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%s: want bool, got %T", key, v)
	}
	*dst = b
	return nil
}

// PropString reads a string. A missing key leaves dst untouched.
func PropString(data map[string]any, key string, dst *string) error {
	v, ok := data[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%s: want string, got %T", key, v)
	}
	*dst = s
	return nil
}

// PropVec3 reads a three-number sequence. A missing key leaves dst untouched.
func PropVec3(data map[string]any, key string, dst *rl.Vector3) error {
	v, ok := data[key]
	if !ok {
		return nil
	}
	seq, ok := v.([]any)
	if !ok || len(seq) != 3 {
		return fmt.Errorf("%s: want [x, y, z], got %v", key, v)
	}
	var out [3]float32
	for i, item := range seq {
		f, ok := toFloat32(item)
		if !ok {
			return fmt.Errorf("%s[%d]: want number, got %T", key, i, item)
		}
		out[i] = f
	}
	*dst = rl.Vector3{X: out[0], Y: out[1], Z: out[2]}
	return nil
}

// Vec3Prop is the serialized form PropVec3 reads back.
func Vec3Prop(v rl.Vector3) []any {
	return []any{v.X, v.Y, v.Z}
}
