package main

import (
	"log"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/game"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// Quality component weights.
const (
	qualityWeightPrey      = 0.35
	qualityWeightWater     = 0.35
	qualityWeightStability = 0.15
	qualityWeightHunting   = 0.15

	qualityWarmupWindows = 2 // skip the first windows while broods start
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Each seed runs on its own goroutine with its own Game.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	qualities := make([]float64, len(fe.seeds))
	var eg errgroup.Group
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			windows := fe.runSimulation(cfg, seed)
			qualities[i] = computeQuality(windows)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Printf("evaluation failed: %v", err)
	}

	avg := stat.Mean(qualities, nil)

	fe.mu.Lock()
	fe.lastQuality = avg
	fe.mu.Unlock()

	return -avg
}

// runSimulation executes a single headless run and returns its windows.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) []telemetry.WindowStats {
	var windows []telemetry.WindowStats

	g := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
	})
	defer g.Unload()
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// copyConfig returns a copy of the base config that parameters can be applied to.
// Slices are shared; the simulation only reads them.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeQuality scores a run in [0, 1]: fry present, water not poor,
// steady fry numbers and hunters that actually catch something.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var preyPresent, waterOK, huntSum float64
	counts := make([]float64, 0, len(valid))
	for _, w := range valid {
		if w.PreyCount > 0 {
			preyPresent++
		}
		if w.Status != systems.StatusPoor.String() {
			waterOK++
		}
		if w.PredCount > 0 {
			perPred := float64(w.Captures) / float64(w.PredCount)
			huntSum += 1 - math.Exp(-perPred/2)
		}
		counts = append(counts, float64(w.PreyCount))
	}

	n := float64(len(valid))
	stability := 0.0
	if mean, std := telemetry.MeanStd(counts); mean > 0 {
		cv := std / mean
		stability = math.Exp(-cv * cv)
	}

	q := qualityWeightPrey*preyPresent/n +
		qualityWeightWater*waterOK/n +
		qualityWeightStability*stability +
		qualityWeightHunting*huntSum/n
	return min(max(q, 0), 1)
}
