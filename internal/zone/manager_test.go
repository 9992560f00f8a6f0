package zone

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonecore/internal/model"
	"github.com/udisondev/zonecore/internal/network/serverpackets"
)

func TestManager_CreateAndLookup(t *testing.T) {
	m := NewManager(testOptions())

	z, err := m.CreateZone(132, "New Gridania")
	require.NoError(t, err)
	inst, err := m.CreateInstance(9001, "Sastasha", 4)
	require.NoError(t, err)

	got, err := m.Zone(132)
	require.NoError(t, err)
	assert.Same(t, z, got)

	got, err = m.Zone(9001)
	require.NoError(t, err)
	assert.Same(t, inst.Zone, got)

	_, err = m.Zone(1)
	assert.ErrorIs(t, err, ErrZoneNotFound)

	_, err = m.CreateZone(132, "again")
	assert.ErrorIs(t, err, ErrZoneExists)

	zones := m.Zones()
	require.Len(t, zones, 2)
	assert.Equal(t, uint32(132), zones[0].ID())
	assert.Equal(t, uint32(9001), zones[1].ID())
}

func TestManager_SharedIDs(t *testing.T) {
	m := NewManager(testOptions())
	a, err := m.CreateZone(1, "a")
	require.NoError(t, err)
	b, err := m.CreateZone(2, "b")
	require.NoError(t, err)

	p1, _ := newPlayer(t, 1)
	p2, _ := newPlayer(t, 2)
	require.NoError(t, a.Enter(p1, model.Position{}, 0))
	require.NoError(t, b.Enter(p2, model.Position{}, 0))

	assert.NotEqual(t, p1.ID(), p2.ID())
}

func TestManager_Transfer(t *testing.T) {
	sink := &recordingSink{}
	opts := testOptions()
	opts.Sink = sink
	m := NewManager(opts)
	src, err := m.CreateZone(10, "src")
	require.NoError(t, err)
	dst, err := m.CreateInstance(5, "dst", 77)
	require.NoError(t, err)

	p, sess := newPlayer(t, 1)
	left, leftSess := newPlayer(t, 2)
	arrival := newNpc()
	require.NoError(t, src.Enter(p, model.Position{}, 0))
	require.NoError(t, src.Enter(left, model.NewPosition(1, 0, 1), 0))
	require.NoError(t, dst.Enter(arrival, model.NewPosition(100, 0, 100), 0))
	id := p.ID()
	sess.reset()
	leftSess.reset()

	require.NoError(t, m.Transfer(p.Actor, 5, model.NewPosition(101, 0, 101), 2))

	assert.Equal(t, id, p.ID(), "id survives the transfer")
	assert.Equal(t, uint32(5), p.ZoneID())
	ic, ok := p.CurrentInstance()
	require.True(t, ok)
	assert.Equal(t, uint32(77), ic.InstanceContentID())

	assert.Equal(t, 1, src.Count())
	assert.Equal(t, 2, dst.Count())
	assert.False(t, left.IsInRangeSet(p.Actor))
	assert.True(t, inRange(p.Actor, arrival.Actor))

	assert.Equal(t, []uint16{serverpackets.OpcodeActorDespawn}, leftSess.opcodes())
	assert.Equal(t, []uint16{
		serverpackets.OpcodeActorDespawn,
		serverpackets.OpcodeWelcome,
		serverpackets.OpcodeNpcSpawn,
	}, sess.opcodes())

	types := sink.types()
	assert.Equal(t, []EventType{EventLeave, EventEnter, EventTransfer}, types[len(types)-3:])
}

func TestManager_Transfer_Errors(t *testing.T) {
	m := NewManager(testOptions())
	z, err := m.CreateZone(1, "z")
	require.NoError(t, err)
	_, err = m.CreateZone(2, "y")
	require.NoError(t, err)
	p, _ := newPlayer(t, 1)

	assert.ErrorIs(t, m.Transfer(p.Actor, 2, model.Position{}, 0), ErrActorNotInZone)

	require.NoError(t, z.Enter(p, model.Position{}, 0))
	assert.ErrorIs(t, m.Transfer(p.Actor, 1, model.Position{}, 0), ErrSameZone)
	assert.ErrorIs(t, m.Transfer(p.Actor, 3, model.Position{}, 0), ErrZoneNotFound)
	assert.Equal(t, uint32(1), p.ZoneID())
}

func TestManager_Transfer_RollsBack(t *testing.T) {
	m := NewManager(testOptions())
	src, err := m.CreateZone(1, "src")
	require.NoError(t, err)
	dst, err := m.CreateZone(2, "dst")
	require.NoError(t, err)

	p, _ := newPlayer(t, 1)
	require.NoError(t, src.Enter(p, model.NewPosition(5, 0, 5), 0))

	// an actor already holding p's id in the destination makes it refuse the entry
	squatter := model.NewActor(model.KindArea)
	squatter.SetID(p.ID())
	require.NoError(t, dst.Enter(squatter.Entity(), model.Position{}, 0))

	err = m.Transfer(p.Actor, 2, model.Position{}, 0)
	assert.ErrorIs(t, err, ErrAlreadyInZone)
	assert.Equal(t, uint32(1), p.ZoneID())
	assert.Equal(t, model.NewPosition(5, 0, 5), p.Position())
	_, ok := src.Actor(p.ID())
	assert.True(t, ok)
}

func TestManager_Run(t *testing.T) {
	opts := testOptions()
	opts.TickInterval = 5 * time.Millisecond
	m := NewManager(opts)
	_, err := m.CreateZone(1, "a")
	require.NoError(t, err)
	_, err = m.CreateZone(2, "b")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err = m.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
