// Package config provides configuration loading and access for the aquarium.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// Rates and durations are expressed in frames at Screen.TargetFPS.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Tank      TankConfig      `yaml:"tank"`
	Water     WaterConfig     `yaml:"water"`
	Food      FoodConfig      `yaml:"food"`
	Algae     AlgaeConfig     `yaml:"algae"`
	Breeder   BreederConfig   `yaml:"breeder"`
	Prey      PreyConfig      `yaml:"prey"`
	Predator  PredatorConfig  `yaml:"predator"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Style     string `yaml:"style"` // realistic, cartoon, pixel
}

// TankConfig holds the geometry agents live in.
type TankConfig struct {
	SwimMargin   float64      `yaml:"swim_margin"`   // Inset from left, right and top edges
	SwimFloor    float64      `yaml:"swim_floor"`    // Lowest y an agent may reach
	FoodFloor    float64      `yaml:"food_floor"`    // Food sinking past this expires
	EdgeMargin   float64      `yaml:"edge_margin"`   // Breeders stop seeking inside this inset
	EdgeFloor    float64      `yaml:"edge_floor"`    // Breeders below this stop seeking
	BounceSpread float64      `yaml:"bounce_spread"` // Heading spread (radians) around the inward normal
	GridCellSize float64      `yaml:"grid_cell_size"`
	SandTop      float64      `yaml:"sand_top"`
	SandBottom   float64      `yaml:"sand_bottom"`
	Rocks        []RockConfig `yaml:"rocks"`
}

// RockConfig is an axis-aligned obstacle that algae can settle on.
type RockConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// WaterConfig holds water chemistry parameters.
type WaterConfig struct {
	MaxNitrates        float64 `yaml:"max_nitrates"`
	InitialNitrates    float64 `yaml:"initial_nitrates"`
	GoodBelow          float64 `yaml:"good_below"` // Status tier thresholds
	FairBelow          float64 `yaml:"fair_below"`
	SlowAbove          float64 `yaml:"slow_above"` // Speed multiplier thresholds
	SluggishAbove      float64 `yaml:"sluggish_above"`
	SlowMultiplier     float64 `yaml:"slow_multiplier"`
	SluggishMultiplier float64 `yaml:"sluggish_multiplier"`
	AmbientWaste       float64 `yaml:"ambient_waste"`
	AmbientInterval    int     `yaml:"ambient_interval"`
	WaterChange        float64 `yaml:"water_change"` // Fraction removed by the water change control
}

// FoodConfig holds food particle parameters.
type FoodConfig struct {
	Radius           float64 `yaml:"radius"`
	SinkSpeed        float64 `yaml:"sink_speed"`
	MaxAge           int     `yaml:"max_age"`
	DecayWaste       float64 `yaml:"decay_waste"`
	AutoFeedInterval int     `yaml:"auto_feed_interval"`
	AutoFeedMargin   float64 `yaml:"auto_feed_margin"` // Horizontal inset for auto-feed drops
	AutoFeedTop      float64 `yaml:"auto_feed_top"`
	AutoFeedBottom   float64 `yaml:"auto_feed_bottom"`
}

// AlgaeConfig holds algae patch parameters.
type AlgaeConfig struct {
	InitialSize     float64 `yaml:"initial_size"`
	MaxSize         float64 `yaml:"max_size"`
	GrowthThreshold float64 `yaml:"growth_threshold"`
	GrowthBase      float64 `yaml:"growth_base"`
	GrowthScale     float64 `yaml:"growth_scale"` // Growth adds nitrates/scale per frame
	SpawnInterval   int     `yaml:"spawn_interval"`
	SpawnThreshold  float64 `yaml:"spawn_threshold"`
	SpawnTier2      float64 `yaml:"spawn_tier2"` // Nitrates above this spawn two patches
	SpawnTier3      float64 `yaml:"spawn_tier3"` // Nitrates above this spawn three patches
	RockChance      float64 `yaml:"rock_chance"`
	PlaceMargin     float64 `yaml:"place_margin"`
	PlaceFloor      float64 `yaml:"place_floor"`
}

// BreederConfig holds the breeding fish parameters.
type BreederConfig struct {
	Cooldown        int             `yaml:"cooldown"`
	BreedDistance   float64         `yaml:"breed_distance"`
	BroodSize       int             `yaml:"brood_size"`
	BroodJitter     int             `yaml:"brood_jitter"`
	DetectionRadius float64         `yaml:"detection_radius"`
	CloseEnough     float64         `yaml:"close_enough"`
	TurnRate        float64         `yaml:"turn_rate"`
	CloseJitter     float64         `yaml:"close_jitter"`
	WanderJitter    float64         `yaml:"wander_jitter"`
	FoodReach       float64         `yaml:"food_reach"` // Added to body size when eating food
	GrazeRadius     float64         `yaml:"graze_radius"`
	GrazeAmount     float64         `yaml:"graze_amount"`
	Species         []SpeciesConfig `yaml:"species"`
}

// SpeciesConfig describes one colour group of breeding pairs.
type SpeciesConfig struct {
	Name      string       `yaml:"name"`
	Color     [3]uint8     `yaml:"color"`
	Size      float64      `yaml:"size"`
	Speed     float64      `yaml:"speed"`
	Herbivore bool         `yaml:"herbivore"`
	Pairs     [][4]float64 `yaml:"pairs"` // x1, y1, x2, y2
}

// PreyConfig holds offspring parameters.
type PreyConfig struct {
	Size            float64 `yaml:"size"`
	Speed           float64 `yaml:"speed"`
	MinSpeed        float64 `yaml:"min_speed"`
	Invulnerability int     `yaml:"invulnerability"`
	FatigueRate     float64 `yaml:"fatigue_rate"`
	RecoveryRate    float64 `yaml:"recovery_rate"`
	WanderJitter    float64 `yaml:"wander_jitter"`
}

// PredatorConfig holds hunter parameters.
type PredatorConfig struct {
	Size            float64      `yaml:"size"` // Also the capture radius
	Speed           float64      `yaml:"speed"`
	DetectionRadius float64      `yaml:"detection_radius"`
	CloseEnough     float64      `yaml:"close_enough"`
	TurnRate        float64      `yaml:"turn_rate"`
	WanderJitter    float64      `yaml:"wander_jitter"`
	PickRank        int          `yaml:"pick_rank"` // Zero-based rank chosen from sorted candidates
	Positions       [][2]float64 `yaml:"positions"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PreyBoom PreyBoomConfig `yaml:"prey_boom"`
}

// PreyBoomConfig holds prey boom detection parameters.
type PreyBoomConfig struct {
	Multiplier float64 `yaml:"multiplier"`
	MinPrey    int     `yaml:"min_prey"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MinX, MaxX float64 // Swim bounds after bounce correction
	MinY, MaxY float64
	// Algae placement is accepted strictly inside these bounds.
	PlaceMinX, PlaceMaxX float64
	PlaceMinY, PlaceMaxY float64
	DT                   float64 // Seconds per frame
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.Water.MaxNitrates <= 0 {
		return fmt.Errorf("water.max_nitrates must be positive, got %v", c.Water.MaxNitrates)
	}
	if c.Tank.SwimFloor <= c.Tank.SwimMargin || float64(c.Screen.Width) <= 2*c.Tank.SwimMargin {
		return fmt.Errorf("tank margins leave no swimmable area")
	}
	if c.Tank.GridCellSize <= 0 {
		return fmt.Errorf("tank.grid_cell_size must be positive, got %v", c.Tank.GridCellSize)
	}
	if c.Predator.PickRank < 0 {
		return fmt.Errorf("predator.pick_rank must not be negative, got %d", c.Predator.PickRank)
	}
	for i, sp := range c.Breeder.Species {
		if sp.Name == "" {
			return fmt.Errorf("breeder.species[%d]: name is required", i)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	w := float64(c.Screen.Width)

	c.Derived.MinX = c.Tank.SwimMargin
	c.Derived.MaxX = w - c.Tank.SwimMargin
	c.Derived.MinY = c.Tank.SwimMargin
	c.Derived.MaxY = c.Tank.SwimFloor

	c.Derived.PlaceMinX = c.Algae.PlaceMargin
	c.Derived.PlaceMaxX = w - c.Algae.PlaceMargin
	c.Derived.PlaceMinY = c.Algae.PlaceMargin
	c.Derived.PlaceMaxY = c.Algae.PlaceFloor

	c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
