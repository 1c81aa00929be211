// Package systems implements the aquarium's per-frame behaviors.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Neighbor holds a nearby entity with its distance from the query origin.
type Neighbor struct {
	E    ecs.Entity
	Pos  r2.Vec
	Dist float64
}

type gridEntry struct {
	e   ecs.Entity
	pos r2.Vec
}

// SpatialGrid buckets entities into square cells for radius queries.
// The tank has walls, so there is no wrap-around.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]gridEntry
}

// NewSpatialGrid creates a spatial grid covering the given area.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]gridEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, pos r2.Vec) {
	idx := g.cellIndex(g.colRow(pos))
	g.cells[idx] = append(g.cells[idx], gridEntry{e: e, pos: pos})
}

// Remove drops an entity from the cell covering pos. Returns false if it was not there.
func (g *SpatialGrid) Remove(e ecs.Entity, pos r2.Vec) bool {
	idx := g.cellIndex(g.colRow(pos))
	cell := g.cells[idx]
	for i := range cell {
		if cell[i].e == e {
			g.cells[idx] = append(cell[:i], cell[i+1:]...)
			return true
		}
	}
	return false
}

// QueryRadiusInto appends every entity strictly within radius of at to dst.
// Reuse dst across calls to avoid allocations. Order is by cell, not distance.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, at r2.Vec, radius float64) []Neighbor {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.colRow(at)

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, entry := range g.cells[row*g.cols+col] {
				d := distance(at, entry.pos)
				if d < radius {
					dst = append(dst, Neighbor{E: entry.e, Pos: entry.pos, Dist: d})
				}
			}
		}
	}

	return dst
}

// colRow returns the clamped cell coordinates for a position.
func (g *SpatialGrid) colRow(pos r2.Vec) (int, int) {
	col := int(pos.X / g.cellSize)
	row := int(pos.Y / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}

func (g *SpatialGrid) cellIndex(col, row int) int {
	return row*g.cols + col
}
