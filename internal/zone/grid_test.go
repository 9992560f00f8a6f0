package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonecore/internal/model"
)

type fakeZone uint32

func (z fakeZone) ID() uint32   { return uint32(z) }
func (z fakeZone) Name() string { return "fake" }

func placed(t *testing.T, g *Grid, id uint32, x, z float32) *model.Actor {
	t.Helper()
	a := model.NewActor(model.KindArea)
	a.SetID(id)
	require.NoError(t, a.SetPositionXYZ(x, 0, z))
	a.SetCurrentZone(fakeZone(g.zoneID))
	g.Place(a)
	return a
}

func TestNewGrid_CellNotSmallerThanView(t *testing.T) {
	g := NewGrid(1, 10, 50)
	assert.Equal(t, float32(50), g.CellSize())

	g = NewGrid(1, 64, 50)
	assert.Equal(t, float32(64), g.CellSize())
}

func TestGrid_PlaceAndNeighbours(t *testing.T) {
	g := NewGrid(1, 64, 50)
	a := placed(t, g, 1, 0, 0)
	near := placed(t, g, 2, 30, 40)    // distance 50, edge of view
	across := placed(t, g, 3, -10, -5) // neighbouring cell
	far := placed(t, g, 4, 40, 40)     // same cell, out of view

	require.True(t, a.Cell().Valid())
	assert.Equal(t, uint32(1), a.Cell().ZoneID())
	assert.NotEqual(t, a.Cell().Index(), across.Cell().Index())

	assert.ElementsMatch(t, []*model.Actor{near, across}, g.Neighbours(a))
	assert.NotContains(t, g.Neighbours(a), far)
	assert.NotContains(t, g.Neighbours(a), a)
}

func TestGrid_Relocate(t *testing.T) {
	g := NewGrid(1, 64, 50)
	a := placed(t, g, 1, 10, 10)
	first := a.Cell().Index()

	require.NoError(t, a.SetPositionXYZ(20, 0, 20))
	assert.False(t, g.Relocate(a))
	assert.Equal(t, first, a.Cell().Index())

	require.NoError(t, a.SetPositionXYZ(200, 0, 10))
	assert.True(t, g.Relocate(a))
	assert.NotEqual(t, first, a.Cell().Index())
	assert.Zero(t, g.Occupancy(first))
	assert.Equal(t, 1, g.Occupancy(a.Cell().Index()))
}

func TestGrid_Remove(t *testing.T) {
	g := NewGrid(1, 64, 50)
	a := placed(t, g, 1, 0, 0)
	b := placed(t, g, 2, 1, 1)
	idx := a.Cell().Index()

	g.Remove(a)

	assert.False(t, a.Cell().Valid())
	assert.Equal(t, 1, g.Occupancy(idx))
	assert.Empty(t, g.Neighbours(b))
	assert.Nil(t, g.Neighbours(a))

	assert.NotPanics(t, func() { g.Remove(a) })
}
