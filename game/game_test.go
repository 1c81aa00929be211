package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

func testGame(t *testing.T, seed int64, mutate func(cfg *config.Config)) *Game {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}
	g := NewGameWithOptions(Options{Config: cfg, Seed: seed})
	t.Cleanup(g.Unload)
	return g
}

// emptyTank leaves a single predator at (500, 300) and no breeders.
func emptyTank(cfg *config.Config) {
	cfg.Breeder.Species = nil
	cfg.Predator.Positions = [][2]float64{{500, 300}}
}

func TestNewGame_InitialPopulation(t *testing.T) {
	g := testGame(t, 1, nil)
	s := g.Snapshot()

	assert.Len(t, s.Breeders, 18)
	assert.Len(t, s.Predators, 4)
	assert.Empty(t, s.Prey)
	assert.Equal(t, int32(0), s.Tick)
	for _, b := range s.Breeders {
		assert.True(t, b.HasPartner)
	}
	assert.Equal(t, "yellow", s.Breeders[6].Species)
	assert.True(t, s.Breeders[6].Herbivore)
}

func TestGame_PredatorTargetsAreExclusive(t *testing.T) {
	g := testGame(t, 7, nil)

	sawClaims := false
	for i := 0; i < 6000; i++ {
		g.Step()

		seen := map[ecs.Entity]int{}
		for _, e := range g.predators {
			_, _, _, _, pred := g.predatorMapper.Get(e)
			if !pred.HasTarget {
				continue
			}
			require.True(t, g.world.Alive(pred.Target), "tick %d: claim on a dead prey", g.tick)
			seen[pred.Target]++
			require.Equal(t, 1, seen[pred.Target], "tick %d: prey claimed twice", g.tick)

			prey := g.preyMap.Get(pred.Target)
			require.True(t, prey.Targetable(), "tick %d: invulnerable prey claimed", g.tick)
			sawClaims = true
		}
	}
	assert.True(t, sawClaims, "the run should produce some hunting")
}

func TestGame_AgentsStayInBounds(t *testing.T) {
	g := testGame(t, 3, nil)
	b := systems.BoundsFromConfig(g.Config())

	for i := 0; i < 3000; i++ {
		g.Step()
		s := g.Snapshot()
		for _, a := range s.Breeders {
			require.True(t, a.X >= b.MinX && a.X <= b.MaxX && a.Y >= b.MinY && a.Y <= b.MaxY, "breeder at (%v, %v)", a.X, a.Y)
		}
		for _, a := range s.Prey {
			require.True(t, a.X >= b.MinX && a.X <= b.MaxX && a.Y >= b.MinY && a.Y <= b.MaxY, "prey at (%v, %v)", a.X, a.Y)
		}
		for _, a := range s.Predators {
			require.True(t, a.X >= b.MinX && a.X <= b.MaxX && a.Y >= b.MinY && a.Y <= b.MaxY, "predator at (%v, %v)", a.X, a.Y)
		}
	}
}

func TestGame_BroodsComeInThrees(t *testing.T) {
	g := testGame(t, 5, nil)

	var broods, born int
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		broods += s.Broods
		born += s.PreyBorn
	})
	for i := 0; i < 3600; i++ {
		g.Step()
	}

	require.Positive(t, broods)
	assert.Equal(t, 3*broods, born)
}

func TestGame_Capture(t *testing.T) {
	g := testGame(t, 1, emptyTank)

	e := g.spawnPrey(510, 300)
	g.preyMap.Get(e).Invulnerable = 0

	g.Step()

	assert.Zero(t, g.PreyCount())
	assert.False(t, g.world.Alive(e))
	s := g.Snapshot()
	require.Len(t, s.Predators, 1)
	assert.Equal(t, int32(1), s.Predators[0].Captures)
	assert.False(t, s.Predators[0].HasTarget)
	assert.Equal(t, 500.0, s.Predators[0].X, "no movement on the capture frame")
}

func TestGame_InvulnerablePreyIsIgnored(t *testing.T) {
	g := testGame(t, 1, emptyTank)

	g.spawnPrey(510, 300)
	g.Step()

	assert.Equal(t, 1, g.PreyCount())
	assert.False(t, g.Snapshot().Predators[0].HasTarget)
}

func TestGame_StaleTargetIsDropped(t *testing.T) {
	g := testGame(t, 1, emptyTank)

	e := g.spawnPrey(700, 300)
	g.preyMap.Get(e).Invulnerable = 0

	g.Step()
	require.True(t, g.Snapshot().Predators[0].HasTarget)

	g.removePrey(e)
	assert.False(t, g.Snapshot().Predators[0].HasTarget)

	g.Step()
	_, _, _, _, pred := g.predatorMapper.Get(g.predators[0])
	assert.False(t, pred.HasTarget)
}

func TestGame_TargetedPreyTires(t *testing.T) {
	g := testGame(t, 1, emptyTank)

	e := g.spawnPrey(800, 300)
	g.preyMap.Get(e).Invulnerable = 0

	g.Step() // predator claims
	g.Step() // prey sees the claim

	prey := g.preyMap.Get(e)
	assert.True(t, prey.Targeted)
	assert.Positive(t, prey.Fatigue)
}

func TestGame_PeriodicEvents(t *testing.T) {
	g := testGame(t, 1, emptyTank)

	for i := 0; i < 119; i++ {
		g.Step()
	}
	assert.Zero(t, g.Nitrates())
	g.Step()
	assert.Equal(t, 0.5, g.Nitrates())

	for i := 0; i < 60; i++ {
		g.Step()
	}
	s := g.Snapshot()
	require.Len(t, s.Food, 1, "auto-feed drops a pellet every 180 frames")
	assert.GreaterOrEqual(t, s.Food[0].X, 150.0)
	assert.LessOrEqual(t, s.Food[0].X, 1050.0)
}

func TestGame_SpawnFoodAndRemediation(t *testing.T) {
	g := testGame(t, 1, emptyTank)

	g.SpawnFood(300, 120)
	s := g.Snapshot()
	require.Len(t, s.Food, 1)
	assert.Equal(t, 300.0, s.Food[0].X)
	assert.False(t, s.Food[0].Consumed)

	g.env.SetLevel(80)
	g.WaterChange()
	assert.InDelta(t, 60.0, g.Nitrates(), 1e-9)

	g.TriggerRemediation(1)
	assert.Zero(t, g.Nitrates())
	assert.Equal(t, systems.StatusGood, g.Snapshot().Water.Status)
}

func TestGame_Pause(t *testing.T) {
	g := testGame(t, 1, nil)

	g.SetPaused(true)
	g.Update()
	assert.Equal(t, int32(0), g.Tick())
	assert.True(t, g.Snapshot().Paused)

	g.UpdateHeadless()
	assert.Equal(t, int32(1), g.Tick())

	g.SetPaused(false)
	g.SetStepsPerUpdate(3)
	g.Update()
	assert.Equal(t, int32(4), g.Tick())

	g.SetStepsPerUpdate(0)
	assert.Equal(t, 1, g.StepsPerUpdate())
}

func TestGame_Deterministic(t *testing.T) {
	a := testGame(t, 11, nil)
	b := testGame(t, 11, nil)

	for i := 0; i < 1500; i++ {
		a.Step()
		b.Step()
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

// algaeTank has no fish, a short algae timer and one rock inside the placement area.
func algaeTank(rocks []config.RockConfig) func(cfg *config.Config) {
	return func(cfg *config.Config) {
		emptyTank(cfg)
		cfg.Algae.SpawnInterval = 10
		cfg.Algae.RockChance = 1
		cfg.Tank.Rocks = rocks
	}
}

var inWindowRock = []config.RockConfig{{X: 500, Y: 400, Width: 100, Height: 100}}

func TestGame_AlgaeSpawnTiers(t *testing.T) {
	tests := []struct {
		name  string
		level float64
		want  int
	}{
		{"clean water", 20, 0},
		{"at threshold", 25, 0},
		{"above threshold", 30, 1},
		{"at second tier", 50, 1},
		{"second tier", 60, 2},
		{"third tier", 90, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGame(t, 5, algaeTank(inWindowRock))
			g.env.SetLevel(tt.level)

			for i := 0; i < 10; i++ {
				g.Step()
			}
			assert.Empty(t, g.pool.Algae(), "timer must exceed the interval before spawning")

			g.Step()
			assert.Len(t, g.pool.Algae(), tt.want)
			for _, a := range g.pool.Algae() {
				assert.GreaterOrEqual(t, a.Pos.X, 500.0)
				assert.LessOrEqual(t, a.Pos.X, 600.0)
				assert.GreaterOrEqual(t, a.Pos.Y, 400.0)
				assert.LessOrEqual(t, a.Pos.Y, 500.0)
			}
		})
	}
}

func TestGame_AlgaeTimerResets(t *testing.T) {
	g := testGame(t, 5, algaeTank(inWindowRock))
	g.env.SetLevel(30)

	for i := 0; i < 11; i++ {
		g.Step()
	}
	require.Len(t, g.pool.Algae(), 1)

	for i := 0; i < 10; i++ {
		g.Step()
	}
	assert.Len(t, g.pool.Algae(), 1, "no spawn until the interval has passed again")

	g.Step()
	assert.Len(t, g.pool.Algae(), 2)
}

func TestGame_AlgaeOnSandIsDropped(t *testing.T) {
	g := testGame(t, 5, algaeTank(nil))
	g.env.SetLevel(90)

	for i := 0; i < 50; i++ {
		g.Step()
	}
	assert.Empty(t, g.pool.Algae(), "sand sites lie below the placement floor")
}
