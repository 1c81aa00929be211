package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawFish draws one agent facing heading in the current style.
func (r *TankRenderer) drawFish(x, y, heading, size float64, col rl.Color) {
	switch r.style {
	case StyleCartoon:
		drawCartoonFish(x, y, heading, size, col)
	case StylePixel:
		drawPixelFish(x, y, heading, size, col)
	default:
		drawRealisticFish(x, y, heading, size, col)
	}
}

// along returns the point d units from (x, y) in direction heading+offset.
func along(x, y, heading, offset, d float64) rl.Vector2 {
	a := heading + offset
	return vec(x+math.Cos(a)*d, y+math.Sin(a)*d)
}

func drawRealisticFish(x, y, heading, size float64, col rl.Color) {
	center := vec(x, y)
	tx := x - math.Cos(heading)*size*0.9
	ty := y - math.Sin(heading)*size*0.9
	tail := vec(tx, ty)

	// Tail fin as two strokes spreading from the tail root
	fin := float32(math.Max(2, size*0.25))
	rl.DrawLineEx(tail, along(tx, ty, heading, math.Pi-0.5, size*0.6), fin, col)
	rl.DrawLineEx(tail, along(tx, ty, heading, math.Pi+0.5, size*0.6), fin, col)

	rl.DrawCircleV(center, float32(size*0.6), col)
	rl.DrawCircleV(along(x, y, heading, math.Pi, size*0.45), float32(size*0.45), col)

	eye := along(x, y, heading, -0.4, size*0.4)
	rl.DrawCircleV(eye, float32(math.Max(1.5, size*0.1)), rl.Black)
}

func drawCartoonFish(x, y, heading, size float64, col rl.Color) {
	center := vec(x, y)
	tail := along(x, y, heading, math.Pi, size*0.8)

	rl.DrawCircleV(tail, float32(size*0.45), rl.Fade(col, 0.8))
	rl.DrawCircleV(center, float32(size*0.75), col)
	rl.DrawCircleLines(int32(x), int32(y), float32(size*0.75), rl.Black)

	eye := along(x, y, heading, -0.35, size*0.4)
	rl.DrawCircleV(eye, float32(size*0.22), rl.White)
	rl.DrawCircleV(eye, float32(size*0.1), rl.Black)
}

func drawPixelFish(x, y, heading, size float64, col rl.Color) {
	const px = 4
	snap := func(v float64) int32 { return int32(math.Floor(v/px) * px) }

	half := int32(math.Max(px, size*0.6))
	cx, cy := snap(x), snap(y)
	rl.DrawRectangle(cx-half, cy-half/2, 2*half, half, col)

	t := along(x, y, heading, math.Pi, size*0.9)
	rl.DrawRectangle(snap(float64(t.X))-px, snap(float64(t.Y))-px, 2*px, 2*px, col)

	e := along(x, y, heading, 0, size*0.4)
	rl.DrawRectangle(snap(float64(e.X)), snap(float64(e.Y)), px, px, rl.Black)
}
