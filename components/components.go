// Package components defines ECS components for the aquarium.
package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Kind tags an agent for renderers and telemetry.
type Kind uint8

const (
	KindBreeder Kind = iota
	KindPrey
	KindPredator
)

func (k Kind) String() string {
	switch k {
	case KindBreeder:
		return "breeder"
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	default:
		return "unknown"
	}
}

// Position represents an agent's position in tank coordinates.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Rotation holds the heading in radians. Zero points along +X, y grows downward.
type Rotation struct {
	Heading float64
}

// Body holds the physical extent and kind tag of an agent.
type Body struct {
	Size float64
	Kind Kind
}

// Motion holds the nominal speed and the speed actually used last frame.
type Motion struct {
	BaseSpeed float64
	Speed     float64
}

// Breeder holds breeding pair state.
// Partner is a non-owning handle; Paired is false for a breeder without a mate.
type Breeder struct {
	Species   uint8
	Herbivore bool
	Partner   ecs.Entity
	Paired    bool
	Cooldown  int32
	Broods    int32
}

// Prey holds offspring state.
type Prey struct {
	Invulnerable int32
	Targeted     bool
	Fatigue      float64
}

// Targetable reports whether predators may select this prey.
func (p *Prey) Targetable() bool {
	return p.Invulnerable <= 0
}

// Predator holds the hunter's current claim.
// Target is only meaningful while HasTarget is set, and must be checked for liveness before use.
type Predator struct {
	Target    ecs.Entity
	HasTarget bool
	Captures  int32
}

// ClearTarget drops the current claim.
func (p *Predator) ClearTarget() {
	p.Target = ecs.Entity{}
	p.HasTarget = false
}
