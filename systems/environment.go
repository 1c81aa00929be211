package systems

import "github.com/pthm-cable/reef/config"

// WaterStatus is an ordered water quality tier.
type WaterStatus uint8

const (
	StatusGood WaterStatus = iota
	StatusFair
	StatusPoor
)

func (s WaterStatus) String() string {
	switch s {
	case StatusGood:
		return "good"
	case StatusFair:
		return "fair"
	default:
		return "poor"
	}
}

// Environment tracks the nitrate level of the tank water.
// The level is clamped to [0, max] on every mutation.
type Environment struct {
	level float64
	cfg   config.WaterConfig

	wasteAdded float64 // cumulative waste requested, for telemetry
}

// NewEnvironment creates water at the configured initial nitrate level.
func NewEnvironment(cfg config.WaterConfig) *Environment {
	e := &Environment{cfg: cfg}
	e.SetLevel(cfg.InitialNitrates)
	return e
}

// Level returns the current nitrate level.
func (e *Environment) Level() float64 {
	return e.level
}

// Max returns the nitrate ceiling.
func (e *Environment) Max() float64 {
	return e.cfg.MaxNitrates
}

// SetLevel overwrites the nitrate level, clamped.
func (e *Environment) SetLevel(v float64) {
	e.level = clampFloat(v, 0, e.cfg.MaxNitrates)
}

// AddWaste raises the nitrate level. Negative amounts are ignored.
func (e *Environment) AddWaste(amount float64) {
	if amount <= 0 {
		return
	}
	e.wasteAdded += amount
	e.SetLevel(e.level + amount)
}

// Remediate removes a fraction of the nitrates, as a partial water change.
func (e *Environment) Remediate(fraction float64) {
	e.SetLevel(e.level * (1 - clamp01(fraction)))
}

// Status returns the water quality tier for the current level.
func (e *Environment) Status() WaterStatus {
	switch {
	case e.level < e.cfg.GoodBelow:
		return StatusGood
	case e.level < e.cfg.FairBelow:
		return StatusFair
	default:
		return StatusPoor
	}
}

// SpeedMultiplier scales breeder speed by water quality.
func (e *Environment) SpeedMultiplier() float64 {
	switch {
	case e.level > e.cfg.SluggishAbove:
		return e.cfg.SluggishMultiplier
	case e.level > e.cfg.SlowAbove:
		return e.cfg.SlowMultiplier
	default:
		return 1.0
	}
}

// WasteAdded returns the total waste requested since creation.
func (e *Environment) WasteAdded() float64 {
	return e.wasteAdded
}
