package kinematic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// bodySizeMargin pads the half body size in offset detection.
	bodySizeMargin = 0.001
	// angleThreshold keeps slope and wall comparisons stable at the boundary.
	angleThreshold = 0.01
	// slopeRayLift raises the slope re-test ray off the contact point.
	slopeRayLift = 0.001
)

// ErrInvalidConfig is returned by Config.Validate and New.
var ErrInvalidConfig = errors.New("invalid controller config")

// DetectionMode selects how a contact is sorted into floor, wall or ceiling.
type DetectionMode uint8

const (
	// DetectAngle compares the contact normal against the wall angle.
	DetectAngle DetectionMode = iota
	// DetectOffset compares the contact point against the body's extent.
	DetectOffset
	// DetectCollider matches the touching shape against the top/bottom shapes.
	DetectCollider
)

func (m DetectionMode) String() string {
	switch m {
	case DetectAngle:
		return "angle"
	case DetectOffset:
		return "offset"
	case DetectCollider:
		return "collider"
	}
	return fmt.Sprintf("DetectionMode(%d)", uint8(m))
}

// ParseDetectionMode accepts the names produced by String, case-insensitively.
func ParseDetectionMode(s string) (DetectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "angle":
		return DetectAngle, nil
	case "offset":
		return DetectOffset, nil
	case "collider":
		return DetectCollider, nil
	}
	return DetectAngle, fmt.Errorf("unknown detection mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m DetectionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DetectionMode) UnmarshalText(text []byte) error {
	parsed, err := ParseDetectionMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Config is the designer-facing tuning of a controller. Angles are degrees.
type Config struct {
	Gravity       rl.Vector3    `yaml:"gravity" toml:"gravity"`
	GravityForce  float32       `yaml:"gravityForce" toml:"gravity_force"`
	DetectionMode DetectionMode `yaml:"detectionMode" toml:"detection_mode"`
	BodySize      float32       `yaml:"bodySize" toml:"body_size"`
	MaxSlopeAngle float32       `yaml:"maxSlopeAngle" toml:"max_slope_angle"`
	WallAngle     float32       `yaml:"wallAngle" toml:"wall_angle"`
	MaxSlides     int           `yaml:"maxSlides" toml:"max_slides"`
	StepOffset    float32       `yaml:"stepOffset" toml:"step_offset"`
	CanPush       bool          `yaml:"canPush" toml:"can_push"`
	CanSlide      bool          `yaml:"canSlide" toml:"can_slide"`
	SlideSpeed    float32       `yaml:"slideSpeed" toml:"slide_speed"`
	StopOnSlopes  bool          `yaml:"stopOnSlopes" toml:"stop_on_slopes"`
	Snap          bool          `yaml:"snap" toml:"snap"`
	SnapLength    float32       `yaml:"snapLength" toml:"snap_length"`
	Mass          float32       `yaml:"mass" toml:"mass"`
	TopShape      string        `yaml:"topShape,omitempty" toml:"top_shape"`
	BottomShape   string        `yaml:"bottomShape,omitempty" toml:"bottom_shape"`
}

// DefaultConfig returns the stock tuning: earth gravity, 45° slopes, 80° walls.
func DefaultConfig() Config {
	return Config{
		Gravity:       rl.Vector3{X: 0, Y: -1, Z: 0},
		GravityForce:  9.8,
		DetectionMode: DetectAngle,
		BodySize:      0.5,
		MaxSlopeAngle: 45,
		WallAngle:     80,
		MaxSlides:     4,
		StepOffset:    0.5,
		SlideSpeed:    4,
		SnapLength:    0.5,
		Mass:          1,
	}
}

// Validate checks ranges. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	var problems []string
	if rl.Vector3DotProduct(c.Gravity, c.Gravity) == 0 {
		problems = append(problems, "gravity direction is zero")
	}
	if c.GravityForce < 0 || math32.IsNaN(c.GravityForce) {
		problems = append(problems, "gravityForce must be >= 0")
	}
	if c.MaxSlopeAngle < 0 || c.MaxSlopeAngle > 90 {
		problems = append(problems, "maxSlopeAngle must be within [0, 90]")
	}
	if c.WallAngle < 0 || c.WallAngle > 90 {
		problems = append(problems, "wallAngle must be within [0, 90]")
	}
	if c.MaxSlides < 1 {
		problems = append(problems, "maxSlides must be >= 1")
	}
	if c.StepOffset < 0 {
		problems = append(problems, "stepOffset must be >= 0")
	}
	if c.SnapLength < 0 {
		problems = append(problems, "snapLength must be >= 0")
	}
	if c.BodySize < 0 {
		problems = append(problems, "bodySize must be >= 0")
	}
	if c.Mass < 0 {
		problems = append(problems, "mass must be >= 0")
	}
	if c.DetectionMode > DetectCollider {
		problems = append(problems, "unknown detection mode")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
