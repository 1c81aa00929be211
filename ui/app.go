package ui

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/camera"
	"github.com/pthm-cable/reef/game"
	"github.com/pthm-cable/reef/renderer"
)

const (
	// maxStepsPerUpdate caps the fast-forward control.
	maxStepsPerUpdate = 10
	// wheelZoomStep is the zoom factor per mouse wheel notch.
	wheelZoomStep = 1.1
)

// App drives a game in a raylib window: input, stepping and drawing.
type App struct {
	game   *game.Game
	tank   *renderer.TankRenderer
	hud    *HUD
	help   *ControlsPanel
	camera *camera.Camera
	title  string
}

// NewApp wraps g for interactive use. The raylib window must already be open.
func NewApp(g *game.Game, style renderer.Style, title string) *App {
	cfg := g.Config()
	w, h := float32(cfg.Screen.Width), float32(cfg.Screen.Height)
	return &App{
		game:   g,
		tank:   renderer.NewTankRenderer(cfg, style),
		hud:    NewHUD(),
		help:   NewControlsPanel(int32(cfg.Screen.Width)-230, 10, 220),
		camera: camera.New(w, h, w, h),
		title:  title,
	}
}

// Update handles input, then advances the game unless paused.
func (a *App) Update() {
	a.handleInput()
	a.game.Update()
}

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.game.SetPaused(!a.game.Paused())
	}
	if rl.IsKeyPressed(rl.KeyW) {
		a.game.WaterChange()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.cycleStyle()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.help.Toggle()
	}

	// Steps-per-update control with < > keys (comma and period)
	steps := a.game.StepsPerUpdate()
	if rl.IsKeyPressed(rl.KeyComma) && steps > 1 {
		a.game.SetStepsPerUpdate(steps - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && steps < maxStepsPerUpdate {
		a.game.SetStepsPerUpdate(steps + 1)
	}

	// Magnifier: wheel zooms at the cursor, right drag pans, R resets
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		factor := float32(wheelZoomStep)
		if wheel < 0 {
			factor = 1 / factor
		}
		a.camera.ZoomAt(m.X, m.Y, factor)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		a.camera.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.camera.Reset()
	}

	// Drop food where clicked, unless the click landed on the HUD
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		if !rl.CheckCollisionPointRec(m, a.hud.Bounds()) && !a.help.Contains(m) {
			wx, wy := a.camera.ScreenToWorld(m.X, m.Y)
			a.game.SpawnFood(float64(wx), float64(wy))
		}
	}
}

// Draw renders the tank and the HUD, applying any HUD button presses.
func (a *App) Draw() {
	snap := a.game.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	rl.BeginMode2D(rl.Camera2D{
		Offset: rl.Vector2{X: a.camera.ViewportW / 2, Y: a.camera.ViewportH / 2},
		Target: rl.Vector2{X: a.camera.X, Y: a.camera.Y},
		Zoom:   a.camera.Zoom,
	})
	a.tank.Draw(&snap)
	rl.EndMode2D()
	act := a.hud.Draw(&snap, HUDData{
		Title:          a.title,
		Style:          a.tank.Style().String(),
		StepsPerUpdate: a.game.StepsPerUpdate(),
		FPS:            rl.GetFPS(),
	})

	a.help.Draw()

	rl.EndDrawing()

	if act.WaterChange {
		a.game.WaterChange()
	}
	if act.TogglePause {
		a.game.SetPaused(!a.game.Paused())
	}
	if act.CycleStyle {
		a.cycleStyle()
	}
}

func (a *App) cycleStyle() {
	s := a.tank.CycleStyle()
	slog.Debug("style changed", "style", s.String())
}
