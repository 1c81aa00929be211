package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// fixedRNG returns the same values every call. With F = 0.5 every jitter
// is zero; N is clamped into range for Intn.
type fixedRNG struct {
	F float64
	N int
}

func (r *fixedRNG) Float64() float64 { return r.F }

func (r *fixedRNG) Intn(n int) int { return min(r.N, n-1) }

// centered yields zero jitter and centered integer offsets for the default
// brood jitter of 15.
func centered() *fixedRNG {
	return &fixedRNG{F: 0.5, N: 15}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

// newEntities creates n bare prey entities for use as handles.
func newEntities(n int) []ecs.Entity {
	world := ecs.NewWorld()
	m := ecs.NewMap1[components.Prey](world)
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = m.NewEntity(&components.Prey{})
	}
	return out
}
