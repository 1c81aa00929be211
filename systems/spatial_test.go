package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestSpatialGrid_QueryRadius(t *testing.T) {
	g := NewSpatialGrid(1200, 800, 100)
	es := newEntities(4)

	g.Insert(es[0], r2.Vec{X: 100, Y: 100})
	g.Insert(es[1], r2.Vec{X: 150, Y: 100}) // 50 away
	g.Insert(es[2], r2.Vec{X: 100, Y: 400}) // 300 away
	g.Insert(es[3], r2.Vec{X: 1100, Y: 700})

	got := g.QueryRadiusInto(nil, r2.Vec{X: 100, Y: 100}, 300)
	assert.Len(t, got, 2, "radius is strict, the entity at exactly 300 is excluded")

	found := map[int]float64{}
	for _, n := range got {
		for i, e := range es {
			if n.E == e {
				found[i] = n.Dist
			}
		}
	}
	assert.Equal(t, map[int]float64{0: 0, 1: 50}, found)

	got = g.QueryRadiusInto(got[:0], r2.Vec{X: 100, Y: 100}, 301)
	assert.Len(t, got, 3)
}

func TestSpatialGrid_OutOfRangePositionsClamp(t *testing.T) {
	g := NewSpatialGrid(1200, 800, 100)
	es := newEntities(1)

	g.Insert(es[0], r2.Vec{X: -20, Y: 900})
	got := g.QueryRadiusInto(nil, r2.Vec{X: 0, Y: 800}, 150)
	assert.Len(t, got, 1)
}

func TestSpatialGrid_RemoveAndClear(t *testing.T) {
	g := NewSpatialGrid(1200, 800, 100)
	es := newEntities(2)
	at := r2.Vec{X: 500, Y: 500}

	g.Insert(es[0], at)
	g.Insert(es[1], at)

	assert.True(t, g.Remove(es[0], at))
	assert.False(t, g.Remove(es[0], at))

	got := g.QueryRadiusInto(nil, at, 10)
	assert.Len(t, got, 1)
	assert.Equal(t, es[1], got[0].E)

	g.Clear()
	assert.Empty(t, g.QueryRadiusInto(nil, at, 1000))
}
