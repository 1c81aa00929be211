package game

import (
	"log/slog"

	"github.com/pthm-cable/reef/telemetry"
)

// flushTelemetry closes the stats window when it is due, then logs and
// writes the stats, perf numbers and any bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sample gathers the end-of-window state for the collector.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{
		Breeders:        len(g.breeders),
		Prey:            len(g.prey),
		Predators:       len(g.predators),
		Food:            len(g.pool.Food()),
		Algae:           len(g.pool.Algae()),
		Nitrates:        g.env.Level(),
		Status:          g.env.Status().String(),
		SpeedMultiplier: g.env.SpeedMultiplier(),
		WasteTotal:      g.env.WasteAdded(),
		PreyFatigue:     make([]float64, 0, len(g.prey)),
		PreySpeed:       make([]float64, 0, len(g.prey)),
		AlgaeSizes:      make([]float64, 0, len(g.pool.Algae())),
	}

	query := g.predatorFilter.Query()
	for query.Next() {
		pred := query.Get()
		if pred.HasTarget && g.world.Alive(pred.Target) {
			s.Claimed++
		}
	}

	for _, e := range g.prey {
		_, _, _, motion, prey := g.preyMapper.Get(e)
		s.PreyFatigue = append(s.PreyFatigue, prey.Fatigue)
		s.PreySpeed = append(s.PreySpeed, motion.Speed)
	}
	for _, a := range g.pool.Algae() {
		s.AlgaeSizes = append(s.AlgaeSizes, a.Size)
	}

	return s
}
