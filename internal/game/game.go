package game

import (
	"fmt"
	"time"

	"charmove3d/internal/components"
	"charmove3d/internal/engine"
	"charmove3d/internal/logger"
	"charmove3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

type Game struct {
	World     *world.World
	ScenePath string
	DebugMode bool

	Player    *engine.GameObject
	player    *components.Player
	character *components.CharacterController
	camera    *components.Camera

	input   inputLatch
	overlay overlay
	watcher *world.Watcher
	log     *zap.Logger

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
	steps    int

	reloadErr string
}

func New(scenePath string) *Game {
	g := &Game{
		World:     world.New(),
		ScenePath: scenePath,
		DebugMode: true,
		log:       logger.Named("viewer"),
	}
	g.World.OnSceneLoaded.AddListener(g.bind)
	return g
}

func (g *Game) Run() error {
	if err := g.load(); err != nil {
		return err
	}

	watcher, err := world.NewWatcher(g.ScenePath)
	if err != nil {
		g.log.Warn("scene hot reload disabled", zap.Error(err))
	} else {
		g.watcher = watcher
		defer watcher.Close()
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "Character movement viewer")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.DisableCursor()
	initOverlayStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

// load (re)reads the scene; bind runs once it is in place.
func (g *Game) load() error {
	return g.World.LoadScene(g.ScenePath)
}

// bind points the viewer at the loaded scene's player and camera.
func (g *Game) bind() {
	g.Player, g.player, g.character, g.camera = nil, nil, nil, nil
	for _, obj := range g.World.Scene.GameObjects {
		if p := engine.GetComponent[*components.Player](obj); p != nil {
			g.Player, g.player = obj, p
			g.character = engine.GetComponent[*components.CharacterController](obj)
			break
		}
	}
	if g.Player == nil {
		g.log.Warn("scene has no player", zap.String("scene", g.ScenePath))
		return
	}

	for _, obj := range g.World.Scene.GameObjects {
		cam := engine.GetComponent[*components.Camera](obj)
		if cam != nil && cam.Target == g.Player.Name {
			g.camera = cam
			if cam.IsMain {
				break
			}
		}
	}
	if g.camera == nil {
		g.camera = g.spawnCamera()
	}
	g.overlay.sync(g.character)
}

// spawnCamera adds an orbit camera behind the player for scenes that
// don't place one.
func (g *Game) spawnCamera() *components.Camera {
	obj := engine.NewGameObject("ViewerCamera")
	obj.Transform.Position = rl.Vector3Add(g.Player.WorldPosition(), rl.Vector3{Y: 3, Z: 8})
	cam := components.NewCamera()
	cam.Target = g.Player.Name
	cam.IsMain = true
	obj.AddComponent(cam)
	g.World.Add(obj)
	obj.Start()
	return cam
}

func (g *Game) reload(path string) {
	if err := g.load(); err != nil {
		g.reloadErr = err.Error()
		g.log.Error("scene reload failed", zap.String("path", path), zap.Error(err))
		return
	}
	g.reloadErr = ""
	g.input = inputLatch{}
	g.log.Info("scene reloaded", zap.String("path", path))
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if ok {
			g.reload(path)
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.Warn("scene watcher", zap.Error(err))
		}
	default:
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	g.pollReload()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.overlay.active = !g.overlay.active
		if g.overlay.active {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.reload(g.ScenePath)
	}

	g.input.sample(readKeys())
	if g.player != nil {
		g.player.SetInput(g.input.current())
	}
	if g.camera != nil && !g.overlay.active {
		look := rl.GetMouseDelta()
		g.camera.ApplyLook(look.X, look.Y)
	}

	g.steps = g.World.Tick(deltaTime)
	if g.steps > 0 {
		g.input.consume()
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	if g.camera != nil {
		rl.BeginMode3D(g.camera.GetRaylibCamera())
		rl.DrawGrid(40, 1)
		for _, obj := range g.World.Scene.GameObjects {
			if obj.Active {
				drawObject(obj, g.World.ColorOf(obj), g.DebugMode)
			}
		}
		if g.DebugMode && g.character != nil {
			drawContacts(g.character.Contacts())
			drawCharacterAxes(g.Player, g.character)
		}
		rl.EndMode3D()
	}
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD to move, Space to jump, Mouse to look", 10, 10, 20, rl.LightGray)
	rl.DrawText("F1 debug view, Tab settings, R reload", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	if g.reloadErr != "" {
		rl.DrawText(g.reloadErr, 10, int32(rl.GetScreenHeight())-30, 18, rl.Red)
	}
	if g.Player == nil {
		rl.DrawText("No Player component in "+g.ScenePath, 10, 90, 20, rl.Orange)
		return
	}

	if g.DebugMode {
		y := int32(90)
		for _, line := range g.player.Status() {
			rl.DrawText(line, 10, y, 16, rl.Green)
			y += 20
		}
		rl.DrawText(fmt.Sprintf("Update: %.2f ms (%d steps)", g.updateMs, g.steps), 10, y+10, 16, rl.Lime)
		rl.DrawText(fmt.Sprintf("Draw:   %.2f ms", g.drawMs), 10, y+30, 16, rl.Lime)
	}

	if g.overlay.active && g.character != nil {
		if cfg, changed := g.overlay.draw(g.character.Config); changed {
			if err := g.character.SetConfig(cfg); err != nil {
				g.log.Warn("rejected controller settings", zap.Error(err))
				g.overlay.sync(g.character)
			}
		}
	}
}
