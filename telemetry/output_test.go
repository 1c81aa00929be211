package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/reef/config"
)

func TestOutputManager_NilIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	require.Nil(t, om)

	assert.NoError(t, om.WriteTelemetry(WindowStats{}))
	assert.NoError(t, om.WriteBookmark(Bookmark{}))
	assert.NoError(t, om.WritePerf(PerfStats{}, 0))
	assert.NoError(t, om.WriteConfig(nil))
	assert.Equal(t, "", om.Dir())
	assert.NoError(t, om.Close())
}

func TestOutputManager_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))

	require.NoError(t, om.WriteTelemetry(WindowStats{RunID: "a", WindowEndTick: 600, PreyCount: 3, Status: "good"}))
	require.NoError(t, om.WriteTelemetry(WindowStats{RunID: "a", WindowEndTick: 1200, PreyCount: 5, Status: "fair"}))
	require.NoError(t, om.WriteBookmark(Bookmark{RunID: "a", Type: BookmarkWaterPoor, Tick: 1200}))
	require.NoError(t, om.Close())

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "one header and two rows")
	assert.True(t, strings.HasPrefix(lines[0], "run_id,window_end,sim_time"))
	assert.Equal(t, 1, strings.Count(string(data), "run_id"))

	data, err = os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "water_poor")

	reloaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, cfg.Breeder.Cooldown, reloaded.Breeder.Cooldown)
	assert.Len(t, reloaded.Breeder.Species, 3)
}
