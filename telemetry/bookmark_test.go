package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/reef/config"
)

func newTestDetector() *BookmarkDetector {
	return NewBookmarkDetector(10, config.PreyBoomConfig{Multiplier: 2, MinPrey: 10})
}

func types(bms []Bookmark) []BookmarkType {
	out := make([]BookmarkType, len(bms))
	for i, b := range bms {
		out[i] = b.Type
	}
	return out
}

func TestBookmarkDetector_FirstWindowIsQuiet(t *testing.T) {
	bd := newTestDetector()
	assert.Empty(t, bd.Check(WindowStats{Status: "poor", PreyCount: 50}))
}

func TestBookmarkDetector_WaterTransitions(t *testing.T) {
	bd := newTestDetector()

	bd.Check(WindowStats{Status: "fair", PreyCount: 5})
	got := bd.Check(WindowStats{RunID: "r", WindowEndTick: 1200, Status: "poor", PreyCount: 5, Nitrates: 55})
	require.Len(t, got, 1)
	assert.Equal(t, BookmarkWaterPoor, got[0].Type)
	assert.Equal(t, "r", got[0].RunID)
	assert.Equal(t, int32(1200), got[0].Tick)

	assert.Empty(t, bd.Check(WindowStats{Status: "poor", PreyCount: 5}), "staying poor is not news")

	got = bd.Check(WindowStats{Status: "fair", PreyCount: 5})
	assert.Equal(t, []BookmarkType{BookmarkWaterRecovered}, types(got))
}

func TestBookmarkDetector_PreyWipedOut(t *testing.T) {
	bd := newTestDetector()

	bd.Check(WindowStats{Status: "good", PreyCount: 4})
	got := bd.Check(WindowStats{Status: "good", PreyCount: 0, Captures: 4})
	assert.Equal(t, []BookmarkType{BookmarkPreyWipedOut}, types(got))

	assert.Empty(t, bd.Check(WindowStats{Status: "good", PreyCount: 0}))
}

func TestBookmarkDetector_PreyBoom(t *testing.T) {
	bd := newTestDetector()

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{Status: "good", PreyCount: 6})
	}

	// Below the minimum count even though it doubled
	assert.Empty(t, bd.Check(WindowStats{Status: "good", PreyCount: 9}))

	got := bd.Check(WindowStats{Status: "good", PreyCount: 20})
	assert.Equal(t, []BookmarkType{BookmarkPreyBoom}, types(got))
}
