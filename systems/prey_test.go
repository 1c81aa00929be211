package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/reef/components"
)

type preyFixture struct {
	pos    components.Position
	rot    components.Rotation
	body   components.Body
	motion components.Motion
	prey   components.Prey
}

func newPreyFixture(x, y float64, invulnerable int32) *preyFixture {
	return &preyFixture{
		pos:    components.Position{X: x, Y: y},
		body:   components.Body{Size: 10, Kind: components.KindPrey},
		motion: components.Motion{BaseSpeed: 2, Speed: 2},
		prey:   components.Prey{Invulnerable: invulnerable},
	}
}

func (f *preyFixture) state() PreyState {
	return PreyState{Pos: &f.pos, Rot: &f.rot, Body: &f.body, Motion: &f.motion, Prey: &f.prey}
}

func TestPrey_InvulnerabilityCountsDown(t *testing.T) {
	cfg := testConfig(t)
	sys := NewPreySystem(cfg, centered())

	p := newPreyFixture(500, 300, 2)
	assert.False(t, p.prey.Targetable())

	sys.Update(p.state(), false)
	assert.False(t, p.prey.Targetable())
	sys.Update(p.state(), false)
	assert.True(t, p.prey.Targetable())
	sys.Update(p.state(), false)
	assert.Equal(t, int32(0), p.prey.Invulnerable)
}

func TestPrey_FatigueAndRecovery(t *testing.T) {
	cfg := testConfig(t)
	sys := NewPreySystem(cfg, centered())

	p := newPreyFixture(500, 300, 0)
	sys.Update(p.state(), true)
	assert.True(t, p.prey.Targeted)
	assert.InDelta(t, cfg.Prey.FatigueRate, p.prey.Fatigue, 1e-9)
	assert.InDelta(t, 2-cfg.Prey.FatigueRate, p.motion.Speed, 1e-9)

	for i := 0; i < 100; i++ {
		sys.Update(p.state(), true)
	}
	assert.Equal(t, cfg.Prey.MinSpeed, p.motion.Speed)

	sys.Update(p.state(), false)
	assert.False(t, p.prey.Targeted)

	for i := 0; i < 2000; i++ {
		sys.Update(p.state(), false)
	}
	assert.Zero(t, p.prey.Fatigue)
	assert.Equal(t, 2.0, p.motion.Speed)
}

func TestPrey_StaysInBounds(t *testing.T) {
	cfg := testConfig(t)
	sys := NewPreySystem(cfg, rand.New(rand.NewSource(3)))
	b := BoundsFromConfig(cfg)

	p := newPreyFixture(600, 300, 0)
	for i := 0; i < 5000; i++ {
		sys.Update(p.state(), i%3 == 0)
		require.True(t, b.Contains(p.pos.Vec()), "frame %d at %+v", i, p.pos)
	}
}
