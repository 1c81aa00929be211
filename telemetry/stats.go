package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one telemetry window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Populations at window end
	BreederCount int `csv:"breeders"`
	PreyCount    int `csv:"prey"`
	PredCount    int `csv:"pred"`
	ClaimedCount int `csv:"claimed"`
	FoodCount    int `csv:"food"`
	AlgaeCount   int `csv:"algae"`

	// Events during window
	Broods       int     `csv:"broods"`
	PreyBorn     int     `csv:"prey_born"`
	Captures     int     `csv:"captures"`
	FoodDropped  int     `csv:"food_dropped"`
	FoodEaten    int     `csv:"food_eaten"`
	FoodDecayed  int     `csv:"food_decayed"`
	AlgaeSpawned int     `csv:"algae_spawned"`
	AlgaeGrazed  float64 `csv:"algae_grazed"`
	WasteAdded   float64 `csv:"waste_added"`
	Remediations int     `csv:"remediations"`

	// Water at window end
	Nitrates        float64 `csv:"nitrates"`
	Status          string  `csv:"status"`
	SpeedMultiplier float64 `csv:"speed_mult"`

	// Prey condition (sampled at window end)
	PreyFatigueMean float64 `csv:"prey_fatigue_mean"`
	PreyFatigueStd  float64 `csv:"prey_fatigue_std"`
	PreySpeedMean   float64 `csv:"prey_speed_mean"`
	AlgaeSizeMean   float64 `csv:"algae_size_mean"`
}

// MeanStd returns the mean and sample standard deviation of values.
// Empty input gives zeros; a single value has zero spread.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// Mean returns the mean of values, or zero for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("breeders", s.BreederCount),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("claimed", s.ClaimedCount),
		slog.Int("food", s.FoodCount),
		slog.Int("algae", s.AlgaeCount),
		slog.Int("broods", s.Broods),
		slog.Int("prey_born", s.PreyBorn),
		slog.Int("captures", s.Captures),
		slog.Int("food_dropped", s.FoodDropped),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("food_decayed", s.FoodDecayed),
		slog.Int("algae_spawned", s.AlgaeSpawned),
		slog.Float64("algae_grazed", s.AlgaeGrazed),
		slog.Float64("waste_added", s.WasteAdded),
		slog.Int("remediations", s.Remediations),
		slog.Float64("nitrates", s.Nitrates),
		slog.String("status", s.Status),
		slog.Float64("speed_mult", s.SpeedMultiplier),
		slog.Float64("prey_fatigue_mean", s.PreyFatigueMean),
		slog.Float64("prey_fatigue_std", s.PreyFatigueStd),
		slog.Float64("prey_speed_mean", s.PreySpeedMean),
		slog.Float64("algae_size_mean", s.AlgaeSizeMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
