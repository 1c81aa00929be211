// Package renderer draws aquarium snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/game"
)

var (
	waterTop    = rl.Color{R: 20, G: 90, B: 150, A: 255}
	waterBottom = rl.Color{R: 5, G: 30, B: 70, A: 255}
	sandColor   = rl.Color{R: 194, G: 170, B: 120, A: 255}
	rockDark    = rl.Color{R: 80, G: 80, B: 90, A: 255}
	rockLight   = rl.Color{R: 110, G: 110, B: 120, A: 255}
	foodColor   = rl.Color{R: 160, G: 82, B: 45, A: 255}
	algaeColor  = rl.Color{R: 34, G: 139, B: 34, A: 255}
	preyColor   = rl.Color{R: 230, G: 230, B: 240, A: 255}
	predColor   = rl.Color{R: 90, G: 100, B: 110, A: 255}
	chaseColor  = rl.Color{R: 220, G: 40, B: 40, A: 255}
)

// TankRenderer draws the tank and everything in it.
type TankRenderer struct {
	width, height int32
	sandTop       int32
	rocks         []rl.Rectangle
	style         Style
}

// NewTankRenderer creates a renderer for the configured tank.
func NewTankRenderer(cfg *config.Config, style Style) *TankRenderer {
	r := &TankRenderer{
		width:   int32(cfg.Screen.Width),
		height:  int32(cfg.Screen.Height),
		sandTop: int32(cfg.Tank.SandTop),
		style:   style,
	}
	for _, rock := range cfg.Tank.Rocks {
		r.rocks = append(r.rocks, rl.Rectangle{
			X:      float32(rock.X),
			Y:      float32(rock.Y),
			Width:  float32(rock.Width),
			Height: float32(rock.Height),
		})
	}
	return r
}

// Style returns the current draw style.
func (r *TankRenderer) Style() Style {
	return r.style
}

// SetStyle changes the draw style.
func (r *TankRenderer) SetStyle(s Style) {
	r.style = s
}

// CycleStyle switches to the next style and returns it.
func (r *TankRenderer) CycleStyle() Style {
	r.style = r.style.Next()
	return r.style
}

// Draw renders one snapshot. Call between rl.BeginDrawing and rl.EndDrawing.
func (r *TankRenderer) Draw(s *game.Snapshot) {
	r.drawBackground(s.Water)

	for _, a := range s.Algae {
		rl.DrawCircle(int32(a.X), int32(a.Y), float32(a.Size), algaeColor)
		rl.DrawCircle(int32(a.X-a.Size/3), int32(a.Y-a.Size/3), float32(a.Size/3), rl.Fade(rl.Lime, 0.6))
	}

	for _, f := range s.Food {
		if f.Consumed {
			continue
		}
		rl.DrawCircle(int32(f.X), int32(f.Y), float32(f.Radius), foodColor)
	}

	for _, b := range s.Breeders {
		col := rl.Color{R: b.Color[0], G: b.Color[1], B: b.Color[2], A: 255}
		r.drawFish(b.X, b.Y, b.Heading, b.Size, col)
	}

	for _, p := range s.Prey {
		col := preyColor
		// Blink while invulnerable
		if !p.Targetable && p.Invulnerable%20 < 10 {
			col = rl.Fade(col, 0.4)
		}
		r.drawFish(p.X, p.Y, p.Heading, p.Size, col)
		if p.Targeted {
			rl.DrawCircleLines(int32(p.X), int32(p.Y), float32(p.Size)+4, chaseColor)
		}
	}

	for _, p := range s.Predators {
		if p.HasTarget {
			rl.DrawLineV(vec(p.X, p.Y), vec(p.TargetX, p.TargetY), rl.Fade(chaseColor, 0.35))
		}
		r.drawFish(p.X, p.Y, p.Heading, p.Size, predColor)
	}
}

func (r *TankRenderer) drawBackground(w game.WaterView) {
	rl.DrawRectangleGradientV(0, 0, r.width, r.sandTop, waterTop, waterBottom)

	// Murky water tints green as nitrates rise
	if w.Max > 0 {
		rl.DrawRectangle(0, 0, r.width, r.sandTop, rl.Fade(rl.DarkGreen, float32(0.35*w.Nitrates/w.Max)))
	}

	rl.DrawRectangle(0, r.sandTop, r.width, r.height-r.sandTop, sandColor)

	for _, rock := range r.rocks {
		rl.DrawRectangleRec(rock, rockDark)
		rl.DrawRectangleRec(rl.Rectangle{X: rock.X, Y: rock.Y, Width: rock.Width / 2, Height: rock.Height / 3}, rockLight)
	}
}

func vec(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}
