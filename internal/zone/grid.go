package zone

import (
	"math"

	"github.com/udisondev/zonecore/internal/model"
)

type cellKey struct {
	cx, cz int32
}

type cell struct {
	key    cellKey
	actors map[*model.Actor]struct{}
}

// Grid partitions a zone's ground plane (X/Z) into square cells.
// Cells live in an arena and are referenced from actors by model.CellRef.
// Neighbour queries scan the 3×3 block around an actor's cell, so the cell
// size is never smaller than the view distance.
//
// Not safe for concurrent use: the owning zone serialises access.
type Grid struct {
	zoneID     uint32
	cellSize   float64
	viewDistSq float64

	cells []cell
	index map[cellKey]int
}

// NewGrid creates an empty grid for zone zoneID.
func NewGrid(zoneID uint32, cellSize, viewDistance float32) *Grid {
	size := math.Max(float64(cellSize), float64(viewDistance))
	if size <= 0 {
		size = 1
	}
	view := float64(viewDistance)
	return &Grid{
		zoneID:     zoneID,
		cellSize:   size,
		viewDistSq: view * view,
		index:      make(map[cellKey]int, 64),
	}
}

// CellSize returns the effective cell edge length.
func (g *Grid) CellSize() float32 {
	return float32(g.cellSize)
}

func (g *Grid) keyOf(pos model.Position) cellKey {
	return cellKey{
		cx: int32(math.Floor(float64(pos.X) / g.cellSize)),
		cz: int32(math.Floor(float64(pos.Z) / g.cellSize)),
	}
}

// cellIndex returns the arena index for key, allocating the cell on first use.
func (g *Grid) cellIndex(key cellKey) int {
	if idx, ok := g.index[key]; ok {
		return idx
	}
	g.cells = append(g.cells, cell{key: key, actors: make(map[*model.Actor]struct{}, 8)})
	idx := len(g.cells) - 1
	g.index[key] = idx
	return idx
}

// Place puts a into the cell covering its position. The actor must already be
// attached to the grid's zone.
func (g *Grid) Place(a *model.Actor) {
	idx := g.cellIndex(g.keyOf(a.Position()))
	g.cells[idx].actors[a] = struct{}{}
	a.SetCell(model.NewCellRef(g.zoneID, idx))
}

// Relocate moves a to the cell covering its current position.
// Returns true if the actor changed cell.
func (g *Grid) Relocate(a *model.Actor) bool {
	ref := a.Cell()
	key := g.keyOf(a.Position())
	if ref.Valid() && g.cells[ref.Index()].key == key {
		return false
	}
	if ref.Valid() {
		delete(g.cells[ref.Index()].actors, a)
	}
	idx := g.cellIndex(key)
	g.cells[idx].actors[a] = struct{}{}
	a.SetCell(model.NewCellRef(g.zoneID, idx))
	return true
}

// Remove takes a out of its cell and clears its cell handle.
func (g *Grid) Remove(a *model.Actor) {
	ref := a.Cell()
	if !ref.Valid() {
		return
	}
	delete(g.cells[ref.Index()].actors, a)
	a.SetCell(model.CellRef{})
}

// Neighbours returns every actor within view distance of a, excluding a itself.
func (g *Grid) Neighbours(a *model.Actor) []*model.Actor {
	ref := a.Cell()
	if !ref.Valid() {
		return nil
	}
	origin := a.Position()
	center := g.cells[ref.Index()].key

	var out []*model.Actor
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			idx, ok := g.index[cellKey{cx: center.cx + dx, cz: center.cz + dz}]
			if !ok {
				continue
			}
			for other := range g.cells[idx].actors {
				if other == a {
					continue
				}
				if origin.DistanceSquared(other.Position()) <= g.viewDistSq {
					out = append(out, other)
				}
			}
		}
	}
	return out
}

// Occupancy returns the number of actors in the cell at arena index idx.
func (g *Grid) Occupancy(idx int) int {
	if idx < 0 || idx >= len(g.cells) {
		return 0
	}
	return len(g.cells[idx].actors)
}
