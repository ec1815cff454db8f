package game

import (
	"fmt"

	"charmove3d/internal/components"
	"charmove3d/internal/kinematic"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
)

// initOverlayStyle sets up the indigo dark theme.
func initOverlayStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// settings are the controller options the overlay can change live.
type settings struct {
	Snap, CanPush, CanSlide, StopOnSlopes bool
	MaxSlopeAngle, StepOffset             float32
}

func settingsOf(cfg kinematic.Config) settings {
	return settings{
		Snap:          cfg.Snap,
		CanPush:       cfg.CanPush,
		CanSlide:      cfg.CanSlide,
		StopOnSlopes:  cfg.StopOnSlopes,
		MaxSlopeAngle: cfg.MaxSlopeAngle,
		StepOffset:    cfg.StepOffset,
	}
}

func (s settings) apply(cfg kinematic.Config) kinematic.Config {
	cfg.Snap = s.Snap
	cfg.CanPush = s.CanPush
	cfg.CanSlide = s.CanSlide
	cfg.StopOnSlopes = s.StopOnSlopes
	cfg.MaxSlopeAngle = s.MaxSlopeAngle
	cfg.StepOffset = s.StepOffset
	return cfg
}

type overlay struct {
	active bool
	values settings
}

// sync reloads the widgets from the controller's current config.
func (o *overlay) sync(cc *components.CharacterController) {
	if cc == nil {
		o.values = settings{}
		return
	}
	o.values = settingsOf(cc.Config)
}

// draw shows the settings panel and returns cfg with the widget values
// applied when any of them changed this frame.
func (o *overlay) draw(cfg kinematic.Config) (kinematic.Config, bool) {
	const (
		panelW = 280
		rowH   = 24
		pad    = 10
	)
	x := float32(rl.GetScreenWidth() - panelW - pad)
	y := float32(pad)
	gui.Panel(rl.Rectangle{X: x, Y: y, Width: panelW, Height: 8*rowH + 2*pad}, "Character Controller")
	y += rowH + pad

	before := o.values
	check := func(label string, v *bool) {
		*v = gui.CheckBox(rl.Rectangle{X: x + pad, Y: y, Width: rowH - 6, Height: rowH - 6}, label, *v)
		y += rowH
	}
	slider := func(label string, v *float32, lo, hi float32) {
		gui.Label(rl.Rectangle{X: x + pad, Y: y, Width: 100, Height: rowH}, label)
		*v = gui.Slider(rl.Rectangle{X: x + 110, Y: y + 4, Width: 110, Height: rowH - 8}, "", fmt.Sprintf("%.2f", *v), *v, lo, hi)
		y += rowH
	}

	check("Snap", &o.values.Snap)
	check("Can Push", &o.values.CanPush)
	check("Can Slide", &o.values.CanSlide)
	check("Stop On Slopes", &o.values.StopOnSlopes)
	slider("Max Slope", &o.values.MaxSlopeAngle, 0, 89)
	slider("Step Offset", &o.values.StepOffset, 0, 1)

	if o.values == before {
		return cfg, false
	}
	return o.values.apply(cfg), true
}
