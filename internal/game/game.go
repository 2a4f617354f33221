package game

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"thematrix/internal/config"
	"thematrix/internal/engine"
	"thematrix/internal/input"
	"thematrix/internal/physics"
	"thematrix/internal/world"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	messageDuration = 2.0 // seconds a status message stays on screen
	pickDistance    = 10
)

var defaultTint = rl.LightGray

type Game struct {
	Config    config.Config
	ScenePath string
	State     *world.State

	ShowPanel bool
	Wireframe bool
	captured  bool

	message     string
	messageTime float64

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
	culled   int
}

func New(cfg config.Config, scenePath string) *Game {
	if scenePath == "" {
		scenePath = cfg.Scene
	}
	return &Game{
		Config:    cfg,
		ScenePath: scenePath,
		ShowPanel: true,
	}
}

// Load (re)builds the simulation from the scene file.
func (g *Game) Load() error {
	scene, err := world.LoadScene(g.ScenePath)
	if err != nil {
		return err
	}
	state, err := world.NewState(scene, nil, g.Config)
	if err != nil {
		return err
	}
	if state.Camera == nil {
		return fmt.Errorf("scene %s has no camera", g.ScenePath)
	}

	state.OnModeChange.AddListener(func(m engine.GameMode) {
		if m.PickUp() {
			g.notify("Pick-up mode: hold %s near an object to carry it", g.keyName(input.Interact))
		}
	})
	state.Physics.OnTrigger.AddListener(func(id int) {
		log.Printf("game: trigger %d fired", id)
	})
	state.Camera.OnNothingToInteract.AddListener(func() {
		g.notify("Nothing to interact with")
	})
	state.Camera.OnViewMode.AddListener(func(on bool) {
		log.Printf("game: view mode %v", on)
	})

	g.State = state
	log.Printf("game: loaded scene %q from %s (%d nodes)", scene.Name, g.ScenePath, len(scene.Nodes()))
	return nil
}

func (g *Game) Run() error {
	w := g.Config.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(w.TargetFPS)
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)

	if err := g.Load(); err != nil {
		return err
	}
	g.capture(true)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

func (g *Game) capture(on bool) {
	g.captured = on
	if on {
		rl.DisableCursor()
		return
	}
	rl.EnableCursor()
	g.State.Camera.Disable()
}

func (g *Game) notify(format string, args ...any) {
	g.message = fmt.Sprintf(format, args...)
	g.messageTime = rl.GetTime()
}

func (g *Game) keyName(a input.Action) string {
	return strings.ToUpper(input.KeyName(g.State.Camera.Bindings[a]))
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if rl.IsKeyPressed(rl.KeyTab) {
		g.capture(!g.captured)
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.ShowPanel = !g.ShowPanel
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveSnapshot()
	}
	if rl.IsKeyPressed(rl.KeyF9) {
		if err := g.Load(); err != nil {
			log.Printf("game: reload failed: %v", err)
			g.notify("Reload failed: %v", err)
		}
	}

	snap := input.NewSnapshot()
	if g.captured {
		snap = input.Poll(g.State.Camera.Bindings)
	}

	res := g.State.Update(deltaTime, snap)
	if res.Triggered {
		g.notify("Pill %d taken", res.TriggerID)
	}
	if res.Released != nil {
		log.Printf("game: released %q", res.Released.Name)
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) saveSnapshot() {
	ext := filepath.Ext(g.ScenePath)
	path := strings.TrimSuffix(g.ScenePath, ext) + ".snapshot" + ext
	if err := world.SaveScene(path, g.State.Scene); err != nil {
		log.Printf("game: save snapshot: %v", err)
		g.notify("Snapshot failed: %v", err)
		return
	}
	g.notify("Saved %s", path)
}

func (g *Game) Draw() {
	ctrl := g.State.Camera
	camera := ctrl.RaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	g.drawScene()
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) drawScene() {
	ctrl := g.State.Camera
	frustum := ctrl.Frustum()
	viewMode := ctrl.ViewMode()
	g.culled = 0

	g.State.Scene.Traverse(func(n *engine.Node) {
		if n.Caps.IsCamera || n.AABB.Empty() {
			return
		}
		box := n.WorldAABB()
		if !frustum.ContainsAABB(box) {
			g.culled++
			return
		}

		size := rl.Vector3Subtract(box.Max, box.Min)
		center := rl.Vector3Add(box.Min, rl.Vector3Scale(size, 0.5))
		tint := n.Tint
		if tint == (rl.Color{}) {
			tint = defaultTint
		}

		if viewMode {
			rl.DrawCubeWiresV(center, size, rl.Green)
			return
		}
		if !g.Wireframe {
			rl.DrawCubeV(center, size, tint)
		}
		rl.DrawCubeWiresV(center, size, rl.Black)
	}, nil)
}

// lookTarget is the closest node under the crosshair, ignoring the camera
// and whatever it carries.
func (g *Game) lookTarget() (physics.RaycastHit, bool) {
	cam := g.State.Camera.Node
	origin := cam.WorldPosition()
	dir := rl.Vector3Subtract(rl.Vector3Transform(rl.Vector3{Z: -1}, cam.GlobalTransform()), origin)
	return physics.Raycast(g.State.Scene, origin, dir, pickDistance, func(n *engine.Node) bool {
		return n == cam || n.Parent == cam
	})
}

func (g *Game) DrawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	// crosshair
	rl.DrawLine(screenW/2-6, screenH/2, screenW/2+6, screenH/2, rl.RayWhite)
	rl.DrawLine(screenW/2, screenH/2-6, screenW/2, screenH/2+6, rl.RayWhite)

	if hit, ok := g.lookTarget(); ok {
		label := hit.Node.Name
		if hit.Node.Caps.IsTrigger {
			label += " (pill)"
		} else if hit.Node.Caps.Movable {
			label += " (movable)"
		}
		rl.DrawText(label, screenW/2+12, screenH/2+12, 18, rl.RayWhite)
	}

	if g.message != "" && rl.GetTime()-g.messageTime < messageDuration {
		w := rl.MeasureText(g.message, 20)
		rl.DrawText(g.message, (screenW-w)/2, screenH-60, 20, rl.Yellow)
	}

	if !g.ShowPanel {
		return
	}
	g.drawPanel()
}

func (g *Game) drawPanel() {
	s := g.State
	ctrl := s.Camera

	x, y := float32(10), float32(10)
	gui.Panel(rl.Rectangle{X: x, Y: y, Width: 280, Height: 250}, "Status")
	row := func(i int) rl.Rectangle {
		return rl.Rectangle{X: x + 10, Y: y + 30 + float32(i)*22, Width: 260, Height: 20}
	}

	mode := "neutral"
	if s.Mode.PickUp() {
		mode = fmt.Sprintf("pick-up (%d)", s.Mode)
	}
	pos := ctrl.Node.WorldPosition()

	gui.Label(row(0), "Mode: "+mode)
	gui.Label(row(1), fmt.Sprintf("Position: %.2f %.2f %.2f", pos.X, pos.Y, pos.Z))
	gui.Label(row(2), fmt.Sprintf("Speed: %.2f", rl.Vector3Length(ctrl.Node.Velocity)))
	gui.Label(row(3), fmt.Sprintf("Interacting: %v  View: %v", ctrl.Interacting, ctrl.ViewMode()))
	gui.Label(row(4), fmt.Sprintf("Culled: %d  Update %.2f ms  Draw %.2f ms", g.culled, g.updateMs, g.drawMs))

	g.Wireframe = gui.CheckBox(rl.Rectangle{X: x + 10, Y: y + 145, Width: 16, Height: 16}, "Wireframe", g.Wireframe)
	s.Physics.Verbose = gui.CheckBox(rl.Rectangle{X: x + 130, Y: y + 145, Width: 16, Height: 16}, "Log physics", s.Physics.Verbose)

	sliderBounds := rl.Rectangle{X: x + 80, Y: y + 175, Width: 150, Height: 16}
	ctrl.MaxSpeed = gui.Slider(sliderBounds, "Max speed", fmt.Sprintf("%.1f", ctrl.MaxSpeed), ctrl.MaxSpeed, 0.5, 10)

	gui.Label(row(8), "Tab: cursor  F1: panel  F5: save  F9: reload")
	rl.DrawFPS(int32(x)+10, int32(y)+260)
}
