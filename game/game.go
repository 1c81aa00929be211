// Package game runs the aquarium: it owns the agents, the water and the
// consumables, and advances them one frame at a time.
package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64
	RNG            systems.RNG // overrides Seed when set
	LogStats       bool
	StatsWindowSec float64 // 0 = config value
	OutputDir      string
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   systems.RNG
	seed  int64

	breederMapper *ecs.Map5[
		components.Position,
		components.Rotation,
		components.Body,
		components.Motion,
		components.Breeder,
	]
	preyMapper *ecs.Map5[
		components.Position,
		components.Rotation,
		components.Body,
		components.Motion,
		components.Prey,
	]
	predatorMapper *ecs.Map5[
		components.Position,
		components.Rotation,
		components.Body,
		components.Motion,
		components.Predator,
	]
	preyMap        *ecs.Map1[components.Prey]
	predatorFilter *ecs.Filter1[components.Predator]

	// Rosters in update order. Entities are only added or removed between agent updates.
	breeders  []ecs.Entity
	prey      []ecs.Entity
	predators []ecs.Entity

	env  *systems.Environment
	pool *systems.ConsumablePool
	grid *systems.SpatialGrid

	breederSys  *systems.BreederSystem
	preySys     *systems.PreySystem
	predatorSys *systems.PredatorSystem

	// Scratch reused across frames
	claimed   map[ecs.Entity]struct{}
	neighbors []systems.Neighbor
	views     []systems.PreyView

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// State
	tick           int32
	algaeTimer     int
	paused         bool
	stepsPerUpdate int
}

// NewGame creates a game with the default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42})
}

// NewGameWithOptions creates a new game with the given options and spawns
// the starting breeders and predators.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,
		seed:  opts.Seed,
		breederMapper: ecs.NewMap5[
			components.Position,
			components.Rotation,
			components.Body,
			components.Motion,
			components.Breeder,
		](world),
		preyMapper: ecs.NewMap5[
			components.Position,
			components.Rotation,
			components.Body,
			components.Motion,
			components.Prey,
		](world),
		predatorMapper: ecs.NewMap5[
			components.Position,
			components.Rotation,
			components.Body,
			components.Motion,
			components.Predator,
		](world),
		preyMap:        ecs.NewMap1[components.Prey](world),
		predatorFilter: ecs.NewFilter1[components.Predator](world),

		env:  systems.NewEnvironment(cfg.Water),
		pool: systems.NewConsumablePool(cfg),
		grid: systems.NewSpatialGrid(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Tank.GridCellSize),

		breederSys:  systems.NewBreederSystem(cfg, rng),
		preySys:     systems.NewPreySystem(cfg, rng),
		predatorSys: systems.NewPredatorSystem(cfg, rng),

		claimed: make(map[ecs.Entity]struct{}),

		collector:        telemetry.NewCollector(statsWindow, cfg.Derived.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks.PreyBoom),
		logStats:         opts.LogStats,
		stepsPerUpdate:   stepsPerUpdate,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	g.spawnInitialPopulation()

	slog.Debug("game created",
		"run_id", g.collector.RunID(),
		"breeders", len(g.breeders),
		"predators", len(g.predators),
	)

	return g
}

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Update runs StepsPerUpdate frames unless paused.
func (g *Game) Update() {
	if g.paused {
		return
	}
	g.UpdateHeadless()
}

// UpdateHeadless runs StepsPerUpdate frames, ignoring pause.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// SpawnFood drops a pellet at (x, y).
func (g *Game) SpawnFood(x, y float64) {
	g.pool.SpawnFood(x, y)
	g.collector.RecordFoodDropped(1)
}

// TriggerRemediation performs a water change removing fraction of the nitrates.
func (g *Game) TriggerRemediation(fraction float64) {
	before := g.env.Level()
	g.env.Remediate(fraction)
	g.collector.RecordRemediation()
	slog.Debug("water change", "fraction", fraction, "before", before, "after", g.env.Level())
}

// WaterChange performs the configured partial water change.
func (g *Game) WaterChange() {
	g.TriggerRemediation(g.cfg.Water.WaterChange)
}

// Tick returns the number of completed frames.
func (g *Game) Tick() int32 {
	return g.tick
}

// Paused reports whether Update is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes Update.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// StepsPerUpdate returns the number of frames each Update runs.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate changes the number of frames each Update runs, minimum 1.
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, n)
}

// RunID identifies this run in telemetry.
func (g *Game) RunID() string {
	return g.collector.RunID()
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Unload closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// randomHeading returns a heading in [-Pi, Pi).
func (g *Game) randomHeading() float64 {
	return g.rng.Float64()*2*math.Pi - math.Pi
}
