package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.Screen.Width)
	assert.Equal(t, 600, cfg.Breeder.Cooldown)
	assert.Equal(t, 3, cfg.Breeder.BroodSize)
	assert.Equal(t, 2, cfg.Predator.PickRank)
	assert.Len(t, cfg.Breeder.Species, 3)
	assert.Len(t, cfg.Predator.Positions, 4)
	assert.Len(t, cfg.Tank.Rocks, 4)

	assert.Equal(t, 50.0, cfg.Derived.MinX)
	assert.Equal(t, 1150.0, cfg.Derived.MaxX)
	assert.Equal(t, 650.0, cfg.Derived.MaxY)
	assert.Equal(t, 1100.0, cfg.Derived.PlaceMaxX)
	assert.Equal(t, 680.0, cfg.Derived.PlaceMaxY)
	assert.InDelta(t, 1.0/60, cfg.Derived.DT, 1e-12)
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("screen:\n  width: 1000\npredator:\n  pick_rank: 0\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Screen.Width)
	assert.Equal(t, 800, cfg.Screen.Height, "unset fields keep defaults")
	assert.Equal(t, 0, cfg.Predator.PickRank)
	assert.Equal(t, 950.0, cfg.Derived.MaxX)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		yaml string
	}{
		{"zero fps", "screen:\n  target_fps: 0\n"},
		{"negative rank", "predator:\n  pick_rank: -1\n"},
		{"no water capacity", "water:\n  max_nitrates: 0\n"},
		{"no swim area", "tank:\n  swim_floor: 10\n"},
		{"zero grid cell", "tank:\n  grid_cell_size: 0\n"},
		{"negative grid cell", "tank:\n  grid_cell_size: -50\n"},
		{"unnamed species", "breeder:\n  species:\n    - size: 10\n"},
		{"bad yaml", "screen: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestInitAndCfg(t *testing.T) {
	global = nil
	assert.Panics(t, func() { Cfg() })

	require.NoError(t, Init(""))
	assert.Equal(t, 60, Cfg().Screen.TargetFPS)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Prey.FatigueRate = 0.11

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.11, back.Prey.FatigueRate)
	assert.Equal(t, cfg.Breeder.Species, back.Breeder.Species)
}
