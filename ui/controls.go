package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Binding is one line of the controls legend.
type Binding struct {
	Key    string
	Action string
}

// Bindings lists the interactive controls in display order.
var Bindings = []Binding{
	{"Click", "Drop food"},
	{"W", "Water change"},
	{"Space", "Pause / resume"},
	{"F", "Cycle style"},
	{", .", "Slower / faster"},
	{"Wheel", "Zoom"},
	{"Right drag", "Pan"},
	{"R", "Reset view"},
	{"H", "Hide this panel"},
}

// ControlsPanel renders the keyboard and mouse legend.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel if visible.
func (c *ControlsPanel) Draw() {
	if !c.visible {
		return
	}

	r := c.renderer
	padding := r.Theme.Padding
	height := int32(len(Bindings)+1)*r.Theme.LineHeight + 2*padding + 2
	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + padding
	y := r.DrawSectionHeader(x, c.y+padding, "Controls")
	for _, b := range Bindings {
		y = r.DrawLabelValue(x, y, b.Key, b.Action)
	}
}

// Contains reports whether a screen point lies on the panel while it is shown.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	if !c.visible {
		return false
	}
	height := int32(len(Bindings)+1)*c.renderer.Theme.LineHeight + 2*c.renderer.Theme.Padding + 2
	return rl.CheckCollisionPointRec(p, rl.Rectangle{
		X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(height),
	})
}
