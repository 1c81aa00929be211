package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/reef/components"
)

// spawnInitialPopulation creates the breeding pairs and the predators.
func (g *Game) spawnInitialPopulation() {
	for i, sp := range g.cfg.Breeder.Species {
		for _, pair := range sp.Pairs {
			a := g.spawnBreeder(uint8(i), pair[0], pair[1])
			b := g.spawnBreeder(uint8(i), pair[2], pair[3])
			g.pairBreeders(a, b)
		}
	}

	for _, p := range g.cfg.Predator.Positions {
		g.spawnPredator(p[0], p[1])
	}
}

// spawnBreeder creates an unpaired breeder of the given species.
func (g *Game) spawnBreeder(species uint8, x, y float64) ecs.Entity {
	sp := g.cfg.Breeder.Species[species]

	pos := components.Position{X: x, Y: y}
	rot := components.Rotation{Heading: g.randomHeading()}
	body := components.Body{Size: sp.Size, Kind: components.KindBreeder}
	motion := components.Motion{BaseSpeed: sp.Speed, Speed: sp.Speed}
	br := components.Breeder{Species: species, Herbivore: sp.Herbivore}

	e := g.breederMapper.NewEntity(&pos, &rot, &body, &motion, &br)
	g.breeders = append(g.breeders, e)
	return e
}

// pairBreeders links two breeders as mates. The link is symmetric and fixed.
func (g *Game) pairBreeders(a, b ecs.Entity) {
	_, _, _, _, brA := g.breederMapper.Get(a)
	brA.Partner, brA.Paired = b, true
	_, _, _, _, brB := g.breederMapper.Get(b)
	brB.Partner, brB.Paired = a, true
}

// spawnPrey creates a newly hatched, invulnerable prey at (x, y).
func (g *Game) spawnPrey(x, y float64) ecs.Entity {
	pc := g.cfg.Prey

	pos := components.Position{X: x, Y: y}
	rot := components.Rotation{Heading: g.randomHeading()}
	body := components.Body{Size: pc.Size, Kind: components.KindPrey}
	motion := components.Motion{BaseSpeed: pc.Speed, Speed: pc.Speed}
	prey := components.Prey{Invulnerable: int32(pc.Invulnerability)}

	e := g.preyMapper.NewEntity(&pos, &rot, &body, &motion, &prey)
	g.prey = append(g.prey, e)
	return e
}

// spawnPredator creates an idle predator at (x, y).
func (g *Game) spawnPredator(x, y float64) ecs.Entity {
	pc := g.cfg.Predator

	pos := components.Position{X: x, Y: y}
	rot := components.Rotation{Heading: g.randomHeading()}
	body := components.Body{Size: pc.Size, Kind: components.KindPredator}
	motion := components.Motion{BaseSpeed: pc.Speed, Speed: pc.Speed}
	pred := components.Predator{}

	e := g.predatorMapper.NewEntity(&pos, &rot, &body, &motion, &pred)
	g.predators = append(g.predators, e)
	return e
}

// removePrey destroys a prey and drops it from the roster and the grid.
func (g *Game) removePrey(e ecs.Entity) {
	if !g.world.Alive(e) {
		return
	}
	pos, _, _, _, _ := g.preyMapper.Get(e)
	g.grid.Remove(e, pos.Vec())
	g.world.RemoveEntity(e)

	for i, p := range g.prey {
		if p == e {
			g.prey = append(g.prey[:i], g.prey[i+1:]...)
			break
		}
	}
}
