package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerfCollector_Empty(t *testing.T) {
	p := NewPerfCollector(10)
	s := p.Stats()
	assert.Zero(t, s.AvgTickDuration)
	assert.Zero(t, s.TicksPerSecond)
}

func TestPerfCollector_RecordsPhases(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 6; i++ {
		p.StartTick()
		p.StartPhase(PhaseBreeders)
		time.Sleep(time.Millisecond)
		p.StartPhase(PhasePredators)
		p.EndTick()
	}

	s := p.Stats()
	assert.Greater(t, s.AvgTickDuration, time.Duration(0))
	assert.GreaterOrEqual(t, s.MaxTickDuration, s.MinTickDuration)
	assert.Contains(t, s.PhaseAvg, PhaseBreeders)
	assert.Contains(t, s.PhaseAvg, PhasePredators)
	assert.Greater(t, s.PhasePct[PhaseBreeders], s.PhasePct[PhasePredators])

	row := s.ToCSV(600)
	assert.Equal(t, int32(600), row.WindowEnd)
	assert.Equal(t, s.PhasePct[PhaseBreeders], row.BreedersPct)
}
