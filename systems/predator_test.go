package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/reef/components"
)

func candidatesAt(es []ecs.Entity, dists ...float64) []Candidate {
	out := make([]Candidate, len(dists))
	for i, d := range dists {
		out[i] = Candidate{Entity: es[i], Pos: r2.Vec{X: d}, Dist: d}
	}
	return out
}

func TestRankCandidates(t *testing.T) {
	es := newEntities(5)
	cands := candidatesAt(es, 40, 10, 50, 30, 20)

	RankCandidates(cands, nil, nil)

	got := make([]float64, len(cands))
	for i, c := range cands {
		got[i] = c.Dist
	}
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, got)
	assert.Equal(t, es[1], cands[0].Entity, "entities travel with their distances")
	assert.Equal(t, es[2], cands[4].Entity)
}

func TestRankCandidates_ReusedBuffers(t *testing.T) {
	// Two disjoint cycles: (0 3) and (1 4 2 5)
	es := newEntities(6)
	cands := candidatesAt(es, 40, 60, 20, 10, 50, 30)
	dist := make([]float64, 0, 8)
	inds := make([]int, 0, 8)

	for round := 0; round < 2; round++ {
		RankCandidates(cands, dist, inds)

		got := make([]float64, len(cands))
		for i, c := range cands {
			got[i] = c.Dist
			assert.Equal(t, c.Dist, c.Pos.X, "candidate fields stay together")
		}
		assert.Equal(t, []float64{10, 20, 30, 40, 50, 60}, got)
		assert.Equal(t, es[3], cands[0].Entity)
		assert.Equal(t, es[1], cands[5].Entity)
	}
}

func TestSelectTarget_ThirdClosest(t *testing.T) {
	es := newEntities(5)
	cands := candidatesAt(es, 50, 40, 30, 20, 10)
	RankCandidates(cands, nil, nil)

	got, ok := SelectTarget(cands, 2)
	require.True(t, ok)
	assert.Equal(t, 30.0, got.Dist)
	assert.Equal(t, es[2], got.Entity)
}

func TestSelectTarget_Fallback(t *testing.T) {
	es := newEntities(2)

	got, ok := SelectTarget(candidatesAt(es, 15), 2)
	require.True(t, ok)
	assert.Equal(t, 15.0, got.Dist, "a single candidate is chosen")

	got, ok = SelectTarget(candidatesAt(es, 15, 25), 2)
	require.True(t, ok)
	assert.Equal(t, 25.0, got.Dist, "with two candidates the farther is chosen")

	_, ok = SelectTarget(nil, 2)
	assert.False(t, ok)
}

func TestPredator_CandidatesFilter(t *testing.T) {
	cfg := testConfig(t)
	sys := NewPredatorSystem(cfg, centered())
	es := newEntities(5)
	from := r2.Vec{X: 500, Y: 300}

	prey := []PreyView{
		{Entity: es[0], Pos: r2.Vec{X: 550, Y: 300}, Targetable: true},
		{Entity: es[1], Pos: r2.Vec{X: 520, Y: 300}, Targetable: false}, // still invulnerable
		{Entity: es[2], Pos: r2.Vec{X: 530, Y: 300}, Targetable: true},  // claimed by another predator
		{Entity: es[3], Pos: r2.Vec{X: 900, Y: 300}, Targetable: true},  // exactly at the detection radius
		{Entity: es[4], Pos: r2.Vec{X: 510, Y: 300}, Targetable: true},
	}
	claimed := map[ecs.Entity]struct{}{es[2]: {}}

	got := sys.Candidates(from, prey, claimed)
	require.Len(t, got, 2)
	assert.Equal(t, es[4], got[0].Entity)
	assert.Equal(t, es[0], got[1].Entity)
}

func TestPredator_Choose(t *testing.T) {
	cfg := testConfig(t)
	sys := NewPredatorSystem(cfg, centered())
	es := newEntities(4)
	from := r2.Vec{X: 500, Y: 300}
	pred := &components.Predator{}

	prey := []PreyView{
		{Entity: es[0], Pos: r2.Vec{X: 540, Y: 300}, Targetable: true},
		{Entity: es[1], Pos: r2.Vec{X: 510, Y: 300}, Targetable: true},
		{Entity: es[2], Pos: r2.Vec{X: 530, Y: 300}, Targetable: true},
		{Entity: es[3], Pos: r2.Vec{X: 520, Y: 300}, Targetable: true},
	}

	c, ok := sys.Choose(pred, from, prey, map[ecs.Entity]struct{}{})
	require.True(t, ok)
	assert.Equal(t, es[2], c.Entity)
	assert.True(t, pred.HasTarget)
	assert.Equal(t, es[2], pred.Target)

	// Everything claimed: the predator goes idle
	claimed := map[ecs.Entity]struct{}{es[0]: {}, es[1]: {}, es[2]: {}, es[3]: {}}
	_, ok = sys.Choose(pred, from, prey, claimed)
	assert.False(t, ok)
	assert.False(t, pred.HasTarget)
}

type predatorFixture struct {
	pos      components.Position
	rot      components.Rotation
	body     components.Body
	motion   components.Motion
	predator components.Predator
}

func newPredatorFixture(x, y float64) *predatorFixture {
	return &predatorFixture{
		pos:    components.Position{X: x, Y: y},
		body:   components.Body{Size: 25, Kind: components.KindPredator},
		motion: components.Motion{BaseSpeed: 2.5},
	}
}

func (f *predatorFixture) state() PredatorState {
	return PredatorState{Pos: &f.pos, Rot: &f.rot, Body: &f.body, Motion: &f.motion, Predator: &f.predator}
}

func TestPredator_CaptureFrameDoesNotMove(t *testing.T) {
	cfg := testConfig(t)
	sys := NewPredatorSystem(cfg, centered())
	p := newPredatorFixture(500, 300)

	target := r2.Vec{X: 520, Y: 300}
	assert.True(t, sys.Update(p.state(), &target))
	assert.Equal(t, components.Position{X: 500, Y: 300}, p.pos)
}

func TestPredator_ChasesTarget(t *testing.T) {
	cfg := testConfig(t)
	sys := NewPredatorSystem(cfg, centered())
	p := newPredatorFixture(500, 300)

	target := r2.Vec{X: 500, Y: 500}
	captured := false
	for i := 0; i < 200 && !captured; i++ {
		captured = sys.Update(p.state(), &target)
	}
	assert.True(t, captured)
}

func TestPredator_WandersWhenIdle(t *testing.T) {
	cfg := testConfig(t)
	sys := NewPredatorSystem(cfg, centered())
	p := newPredatorFixture(500, 300)

	assert.False(t, sys.Update(p.state(), nil))
	assert.InDelta(t, 502.5, p.pos.X, 1e-9)
	assert.Equal(t, 2.5, p.motion.Speed)
}
