package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/game"
)

// HUDData holds what the HUD shows besides the snapshot.
type HUDData struct {
	Title          string
	Style          string
	StepsPerUpdate int
	FPS            int32
}

// HUDActions reports which buttons were pressed this frame.
type HUDActions struct {
	WaterChange bool
	TogglePause bool
	CycleStyle  bool
}

// HUD renders the status panel and its buttons.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewHUD creates a HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    260,
		height:   232,
	}
}

// Bounds returns the screen area the HUD covers, so clicks there are not
// treated as tank clicks.
func (h *HUD) Bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(h.x), Y: float32(h.y), Width: float32(h.width), Height: float32(h.height)}
}

// Draw renders the HUD and returns the buttons pressed.
func (h *HUD) Draw(s *game.Snapshot, data HUDData) HUDActions {
	r := h.renderer
	pad := r.Theme.Padding
	r.DrawPanel(h.x, h.y, h.width, h.height)

	x := h.x + pad
	y := r.DrawSectionHeader(x, h.y+pad, data.Title)

	y = r.DrawWaterBar(x, y, s.Water.Nitrates, s.Water.Max, s.Water.Status, h.width-2*pad)
	y = r.DrawLabelValue(x, y, "Water", fmt.Sprintf("%s (speed x%.1f)", s.Water.Status, s.Water.SpeedMultiplier))
	y = r.DrawLabelValue(x, y, "Fish", fmt.Sprintf("%d breeders, %d fry", len(s.Breeders), len(s.Prey)))
	y = r.DrawLabelValue(x, y, "Hunters", fmt.Sprintf("%d", len(s.Predators)))
	y = r.DrawLabelValue(x, y, "Food", fmt.Sprintf("%d pellets, %d algae", countUneaten(s), len(s.Algae)))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d (%dx, %d fps)", s.Tick, data.StepsPerUpdate, data.FPS))
	y = r.DrawLabelValue(x, y, "Style", data.Style)
	y = r.DrawLabelValue(x, y, "Help", "press H")
	y += 6

	var act HUDActions
	bw := float32(h.width-2*pad-10) / 3
	bx := float32(x)
	act.WaterChange = gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: bw, Height: 28}, "Water change")
	pauseLabel := "Pause"
	if s.Paused {
		pauseLabel = "Resume"
	}
	act.TogglePause = gui.Button(rl.Rectangle{X: bx + bw + 5, Y: float32(y), Width: bw, Height: 28}, pauseLabel)
	act.CycleStyle = gui.Button(rl.Rectangle{X: bx + 2*(bw+5), Y: float32(y), Width: bw, Height: 28}, "Style")

	return act
}

func countUneaten(s *game.Snapshot) int {
	n := 0
	for _, f := range s.Food {
		if !f.Consumed {
			n++
		}
	}
	return n
}
