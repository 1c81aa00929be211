package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

func TestParamVectorDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	pv := NewParamVector()
	assert.InDeltaSlice(t, pv.DefaultVector(), pv.ExtractFromConfig(cfg), 1e-9)
}

func TestParamVectorNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	norm := pv.Normalize(raw)
	for i, v := range norm {
		assert.GreaterOrEqual(t, v, 0.0, pv.Specs[i].Name)
		assert.LessOrEqual(t, v, 1.0, pv.Specs[i].Name)
	}
	assert.InDeltaSlice(t, raw, pv.Denormalize(norm), 1e-9)
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	pv := NewParamVector()
	values := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		values[i] = spec.Max * 10
	}
	pv.ApplyToConfig(cfg, values)

	assert.Equal(t, 1200, cfg.Breeder.Cooldown)
	assert.InDelta(t, 3.5, cfg.Predator.Speed, 1e-9)
	assert.InDelta(t, 0.1, cfg.Algae.GrowthBase, 1e-9)
}

func TestComputeQuality(t *testing.T) {
	good, poor := systems.StatusGood.String(), systems.StatusPoor.String()
	window := func(prey, captures int, status string) telemetry.WindowStats {
		return telemetry.WindowStats{PreyCount: prey, PredCount: 4, Captures: captures, Status: status}
	}

	t.Run("warmup only", func(t *testing.T) {
		ws := []telemetry.WindowStats{window(5, 1, good), window(5, 1, good)}
		assert.Equal(t, 0.0, computeQuality(ws))
	})

	t.Run("single scored window", func(t *testing.T) {
		ws := []telemetry.WindowStats{window(0, 0, good), window(0, 0, good), window(6, 0, good)}
		q := computeQuality(ws)
		assert.InDelta(t, 0.35+0.35+0.15, q, 1e-9)
	})

	t.Run("empty poor tank scores low", func(t *testing.T) {
		ws := []telemetry.WindowStats{
			window(0, 0, poor), window(0, 0, poor),
			window(0, 0, poor), window(0, 0, poor),
		}
		assert.Equal(t, 0.0, computeQuality(ws))
	})
}
