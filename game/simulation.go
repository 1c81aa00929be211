package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// Step advances the simulation by one frame. Phases run in a fixed order and
// each completes before the next begins.
func (g *Game) Step() {
	g.perfCollector.StartTick()

	// 1. Food sinks and ages, algae grows
	g.perfCollector.StartPhase(telemetry.PhaseConsumables)
	g.updateConsumables()

	// 2. Ambient waste and auto-feed
	g.perfCollector.StartPhase(telemetry.PhasePeriodic)
	g.periodicEvents()

	// 3. Algae settles when the water is rich enough
	g.perfCollector.StartPhase(telemetry.PhaseAlgaeSpawn)
	g.spawnAlgae()

	// 4. Breeders eat, breed and steer; broods join the prey roster immediately
	g.perfCollector.StartPhase(telemetry.PhaseBreeders)
	g.updateBreeders()

	// 5. Prey tire or recover and wander
	g.perfCollector.StartPhase(telemetry.PhasePrey)
	g.updatePrey()

	// 6. Predators pick targets and chase; captures are removed at once
	g.perfCollector.StartPhase(telemetry.PhasePredators)
	g.updatePredators()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

func (g *Game) updateConsumables() {
	res := g.pool.Update(g.env)
	g.collector.RecordFoodDecayed(res.Decayed)
}

// periodicEvents adds ambient waste and drops auto-feed pellets on their intervals.
func (g *Game) periodicEvents() {
	frame := int(g.tick) + 1

	wc := g.cfg.Water
	if wc.AmbientInterval > 0 && frame%wc.AmbientInterval == 0 {
		g.env.AddWaste(wc.AmbientWaste)
	}

	fc := g.cfg.Food
	if fc.AutoFeedInterval > 0 && frame%fc.AutoFeedInterval == 0 {
		margin := int(fc.AutoFeedMargin)
		x := g.randRange(margin, g.cfg.Screen.Width-margin)
		y := g.randRange(int(fc.AutoFeedTop), int(fc.AutoFeedBottom))
		g.SpawnFood(float64(x), float64(y))
	}
}

// spawnAlgae tries to settle new patches once the spawn timer has run out and
// nitrates are above the threshold. Richer water spawns more patches. Sites
// outside the placement area are dropped, not retried.
func (g *Game) spawnAlgae() {
	ac := g.cfg.Algae
	g.algaeTimer++

	level := g.env.Level()
	if g.algaeTimer <= ac.SpawnInterval || level <= ac.SpawnThreshold {
		return
	}
	g.algaeTimer = 0

	count := 1
	if level > ac.SpawnTier3 {
		count = 3
	} else if level > ac.SpawnTier2 {
		count = 2
	}

	placed := 0
	for i := 0; i < count; i++ {
		x, y := g.algaeSite()
		if g.pool.PlaceAlgae(x, y) {
			placed++
		}
	}
	g.collector.RecordAlgaeSpawned(placed)
}

// algaeSite picks a point on a random rock or on the open sand.
func (g *Game) algaeSite() (float64, float64) {
	rocks := g.cfg.Tank.Rocks
	if len(rocks) > 0 && g.rng.Float64() < g.cfg.Algae.RockChance {
		r := rocks[g.rng.Intn(len(rocks))]
		return r.X + float64(g.randRange(0, int(r.Width))),
			r.Y + float64(g.randRange(0, int(r.Height)))
	}
	margin := int(g.cfg.Algae.PlaceMargin)
	x := g.randRange(margin, g.cfg.Screen.Width-margin)
	y := g.randRange(int(g.cfg.Tank.SandTop), int(g.cfg.Tank.SandBottom))
	return float64(x), float64(y)
}

func (g *Game) updateBreeders() {
	// Count cooldowns down first so both mates of a pair leave cooldown together
	for _, e := range g.breeders {
		_, _, _, _, br := g.breederMapper.Get(e)
		g.breederSys.TickCooldown(br)
	}

	for _, e := range g.breeders {
		self := g.breederState(e)

		var partner *systems.BreederState
		if self.Breeder.Paired && g.world.Alive(self.Breeder.Partner) {
			p := g.breederState(self.Breeder.Partner)
			partner = &p
		}

		out := g.breederSys.Update(self, partner, g.pool, g.env)
		g.collector.RecordFoodEaten(out.FoodEaten)
		g.collector.RecordAlgaeGrazed(out.AlgaeGrazed)

		if out.Bred {
			for _, at := range out.Brood {
				g.spawnPrey(at.X, at.Y)
			}
			g.collector.RecordBrood(len(out.Brood))
		}
	}
}

func (g *Game) updatePrey() {
	g.collectClaims(ecs.Entity{}, false)

	for _, e := range g.prey {
		_, targeted := g.claimed[e]
		g.preySys.Update(g.preyState(e), targeted)
	}

	g.rebuildGrid()
}

func (g *Game) updatePredators() {
	for _, e := range g.predators {
		st := g.predatorState(e)
		pred := st.Predator

		// A claim on a prey that no longer exists is dropped, never read
		if pred.HasTarget && !g.world.Alive(pred.Target) {
			pred.ClearTarget()
		}

		var target *r2.Vec
		if pred.HasTarget {
			tpos, _, _, _, _ := g.preyMapper.Get(pred.Target)
			v := tpos.Vec()
			target = &v
		} else {
			from := st.Pos.Vec()
			g.collectClaims(e, true)
			if c, ok := g.predatorSys.Choose(pred, from, g.visiblePrey(from), g.claimed); ok {
				target = &c.Pos
			}
		}

		if g.predatorSys.Update(st, target) {
			victim := pred.Target
			pred.ClearTarget()
			pred.Captures++
			g.removePrey(victim)
			g.collector.RecordCapture()
		}
	}
}

// collectClaims fills g.claimed with the live targets of all predators,
// skipping exclude when skip is set.
func (g *Game) collectClaims(exclude ecs.Entity, skip bool) {
	clear(g.claimed)
	for _, e := range g.predators {
		if skip && e == exclude {
			continue
		}
		_, _, _, _, pred := g.predatorMapper.Get(e)
		if pred.HasTarget && g.world.Alive(pred.Target) {
			g.claimed[pred.Target] = struct{}{}
		}
	}
}

// rebuildGrid indexes prey positions for predator scans.
func (g *Game) rebuildGrid() {
	g.grid.Clear()
	for _, e := range g.prey {
		pos, _, _, _, _ := g.preyMapper.Get(e)
		g.grid.Insert(e, pos.Vec())
	}
}

// visiblePrey returns the prey within detection range of from.
func (g *Game) visiblePrey(from r2.Vec) []systems.PreyView {
	g.neighbors = g.grid.QueryRadiusInto(g.neighbors[:0], from, g.predatorSys.DetectionRadius())
	g.views = g.views[:0]
	for _, n := range g.neighbors {
		prey := g.preyMap.Get(n.E)
		g.views = append(g.views, systems.PreyView{
			Entity:     n.E,
			Pos:        n.Pos,
			Targetable: prey.Targetable(),
		})
	}
	return g.views
}

func (g *Game) breederState(e ecs.Entity) systems.BreederState {
	pos, rot, body, motion, br := g.breederMapper.Get(e)
	return systems.BreederState{Pos: pos, Rot: rot, Body: body, Motion: motion, Breeder: br}
}

func (g *Game) preyState(e ecs.Entity) systems.PreyState {
	pos, rot, body, motion, prey := g.preyMapper.Get(e)
	return systems.PreyState{Pos: pos, Rot: rot, Body: body, Motion: motion, Prey: prey}
}

func (g *Game) predatorState(e ecs.Entity) systems.PredatorState {
	pos, rot, body, motion, pred := g.predatorMapper.Get(e)
	return systems.PredatorState{Pos: pos, Rot: rot, Body: body, Motion: motion, Predator: pred}
}

// randRange returns an integer in [lo, hi].
func (g *Game) randRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}
