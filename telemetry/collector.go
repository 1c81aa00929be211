package telemetry

import "github.com/google/uuid"

// Sample is the end-of-window state the game hands to Flush.
type Sample struct {
	Breeders  int
	Prey      int
	Predators int
	Claimed   int
	Food      int
	Algae     int

	Nitrates        float64
	Status          string
	SpeedMultiplier float64
	WasteTotal      float64 // Cumulative waste since the run began

	PreyFatigue []float64
	PreySpeed   []float64
	AlgaeSizes  []float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	runID               string
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32
	lastWasteTotal  float64

	// Event counters for current window
	broods       int
	preyBorn     int
	captures     int
	foodDropped  int
	foodEaten    int
	foodDecayed  int
	algaeSpawned int
	algaeGrazed  float64
	remediations int
}

// NewCollector creates a new stats collector with a fresh run id.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		runID:               uuid.NewString(),
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RunID identifies this run in every record.
func (c *Collector) RunID() string {
	return c.runID
}

// RecordBrood records a breeding event and the prey it produced.
func (c *Collector) RecordBrood(born int) {
	c.broods++
	c.preyBorn += born
}

// RecordCapture records a prey taken by a predator.
func (c *Collector) RecordCapture() {
	c.captures++
}

// RecordFoodDropped records pellets added to the tank.
func (c *Collector) RecordFoodDropped(n int) {
	c.foodDropped += n
}

// RecordFoodEaten records pellets eaten by breeders.
func (c *Collector) RecordFoodEaten(n int) {
	c.foodEaten += n
}

// RecordFoodDecayed records uneaten pellets that expired.
func (c *Collector) RecordFoodDecayed(n int) {
	c.foodDecayed += n
}

// RecordAlgaeSpawned records new algae patches.
func (c *Collector) RecordAlgaeSpawned(n int) {
	c.algaeSpawned += n
}

// RecordAlgaeGrazed records algae size removed by herbivores.
func (c *Collector) RecordAlgaeGrazed(amount float64) {
	c.algaeGrazed += amount
}

// RecordRemediation records a water change.
func (c *Collector) RecordRemediation() {
	c.remediations++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	fatigueMean, fatigueStd := MeanStd(s.PreyFatigue)

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		BreederCount: s.Breeders,
		PreyCount:    s.Prey,
		PredCount:    s.Predators,
		ClaimedCount: s.Claimed,
		FoodCount:    s.Food,
		AlgaeCount:   s.Algae,

		Broods:       c.broods,
		PreyBorn:     c.preyBorn,
		Captures:     c.captures,
		FoodDropped:  c.foodDropped,
		FoodEaten:    c.foodEaten,
		FoodDecayed:  c.foodDecayed,
		AlgaeSpawned: c.algaeSpawned,
		AlgaeGrazed:  c.algaeGrazed,
		WasteAdded:   s.WasteTotal - c.lastWasteTotal,
		Remediations: c.remediations,

		Nitrates:        s.Nitrates,
		Status:          s.Status,
		SpeedMultiplier: s.SpeedMultiplier,

		PreyFatigueMean: fatigueMean,
		PreyFatigueStd:  fatigueStd,
		PreySpeedMean:   Mean(s.PreySpeed),
		AlgaeSizeMean:   Mean(s.AlgaeSizes),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.lastWasteTotal = s.WasteTotal
	c.broods = 0
	c.preyBorn = 0
	c.captures = 0
	c.foodDropped = 0
	c.foodEaten = 0
	c.foodDecayed = 0
	c.algaeSpawned = 0
	c.algaeGrazed = 0
	c.remediations = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
