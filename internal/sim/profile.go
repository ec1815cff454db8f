package sim

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charmove3d/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidProfile wraps every validation failure of a run profile.
var ErrInvalidProfile = errors.New("invalid run profile")

// Segment holds one input from From (inclusive) to To (exclusive) seconds
// into the run. Jump counts as pressed on the segment's first tick and held
// for the rest of it.
type Segment struct {
	From float32    `toml:"from"`
	To   float32    `toml:"to"`
	Move [2]float32 `toml:"move"`
	Jump bool       `toml:"jump"`
	// Look is a camera look delta in pixels applied every tick.
	Look [2]float32 `toml:"look"`
}

// Profile describes one headless run.
type Profile struct {
	Scene    string  `toml:"scene"`
	TickRate int     `toml:"tick_rate"`
	Duration float32 `toml:"duration"`
	// Player names the object to drive. Empty picks the first Player.
	Player   string    `toml:"player"`
	LogEvery int       `toml:"log_every"`
	Debug    bool      `toml:"debug"`
	Input    []Segment `toml:"input"`
}

func DefaultProfile() Profile {
	return Profile{
		TickRate: 60,
		Duration: 5,
		LogEvery: 1,
	}
}

// LoadProfile reads a TOML profile. A relative scene path is taken
// relative to the profile file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	p, err := ParseProfile(data)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile %s: %w", path, err)
	}
	if p.Scene != "" && !filepath.IsAbs(p.Scene) {
		p.Scene = filepath.Join(filepath.Dir(path), p.Scene)
	}
	return p, nil
}

// ParseProfile decodes a profile over the defaults and validates it.
func ParseProfile(data []byte) (Profile, error) {
	p := DefaultProfile()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) Validate() error {
	var problems []string
	if p.TickRate <= 0 {
		problems = append(problems, "tick_rate must be > 0")
	}
	if !(p.Duration > 0) {
		problems = append(problems, "duration must be > 0")
	}
	if p.LogEvery < 0 {
		problems = append(problems, "log_every must be >= 0")
	}
	for i, s := range p.Input {
		if !(s.From >= 0) || !(s.To > s.From) {
			problems = append(problems, fmt.Sprintf("input %d: want 0 <= from < to", i))
		}
		for _, m := range s.Move {
			if m < -1 || m > 1 {
				problems = append(problems, fmt.Sprintf("input %d: move components must be in [-1, 1]", i))
				break
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, "; "))
	}
	return nil
}

// Ticks is the number of fixed steps the profile's duration covers.
func (p Profile) Ticks() int {
	return int(p.Duration*float32(p.TickRate) + 0.5)
}

// Delta is the fixed step length.
func (p Profile) Delta() float32 {
	return 1 / float32(p.TickRate)
}

// segmentAt returns the segment covering t. Later segments win on overlap.
func (p Profile) segmentAt(t float32) (int, bool) {
	for i := len(p.Input) - 1; i >= 0; i-- {
		if s := p.Input[i]; t >= s.From && t < s.To {
			return i, true
		}
	}
	return -1, false
}

// script turns profile segments into per-tick player input, tracking the
// held jump so a press is only reported once.
type script struct {
	profile  Profile
	segment  int
	jumpHeld bool
}

func (s *script) at(t float32) (components.PlayerInput, rl.Vector2) {
	i, ok := s.profile.segmentAt(t)
	if !ok {
		s.segment = -1
		s.jumpHeld = false
		return components.PlayerInput{}, rl.Vector2{}
	}
	seg := s.profile.Input[i]
	held := seg.Jump
	// A new segment re-presses jump even if the previous one also held it.
	pressed := held && (!s.jumpHeld || i != s.segment)
	s.segment = i
	s.jumpHeld = held

	in := components.PlayerInput{
		Move:     rl.Vector2{X: seg.Move[0], Y: seg.Move[1]},
		Jump:     pressed,
		JumpHeld: held,
	}
	return in, rl.Vector2{X: seg.Look[0], Y: seg.Look[1]}
}
