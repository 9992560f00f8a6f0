package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonecore/internal/network/packet"
	"github.com/udisondev/zonecore/internal/network/serverpackets"
)

func TestNewChara_Panics(t *testing.T) {
	assert.Panics(t, func() { NewChara(KindPlayer, CharaParams{}) })
	assert.Panics(t, func() { NewChara(KindAetheryte, CharaParams{}) })
}

func TestChara_Vitals(t *testing.T) {
	c := NewChara(KindCompanion, CharaParams{Name: "Wind-up Airship", Level: 1, MaxHP: 100, MaxMP: 50})

	hp, maxHP := c.HP()
	assert.Equal(t, uint32(100), hp)
	assert.Equal(t, uint32(100), maxHP)
	mp, maxMP := c.MP()
	assert.Equal(t, uint32(50), mp)
	assert.Equal(t, uint32(50), maxMP)

	c.SetHP(500)
	hp, _ = c.HP()
	assert.Equal(t, uint32(100), hp, "hp is clamped to max")

	c.SetHP(40)
	assert.Equal(t, uint32(60), c.Heal(80))
	hp, _ = c.HP()
	assert.Equal(t, uint32(100), hp)

	c.SetHP(0)
	assert.False(t, c.IsAlive())
	assert.Zero(t, c.Heal(10), "dead charas are not healed")

	c.SetLevel(30)
	assert.Equal(t, uint8(30), c.Level())
}

func TestChara_SetTarget(t *testing.T) {
	npc := newTestNpc(t, 1, Position{})
	near, _ := newTestPlayer(t, 2, Position{})
	far, _ := newTestPlayer(t, 3, Position{})
	link(npc.Actor, near.Actor)

	assert.True(t, npc.SetTarget(near.Actor))
	assert.Same(t, near.Actor, npc.Target())

	assert.False(t, npc.SetTarget(far.Actor), "cannot target out of range")
	assert.Same(t, near.Actor, npc.Target())

	assert.True(t, npc.SetTarget(npc.Actor))
	assert.True(t, npc.SetTarget(nil))
	assert.Nil(t, npc.Target())
}

func TestChara_SpawnDespawn(t *testing.T) {
	retainer := NewChara(KindRetainer, CharaParams{Name: "Retainer", Level: 10, BaseID: 1001, NameID: 2002, MaxHP: 300})
	retainer.SetID(0x20000001)
	require.NoError(t, retainer.SetPositionXYZ(1, 2, 3))
	viewer, sess := newTestPlayer(t, 1, Position{})

	retainer.Entity().Spawn(viewer)
	retainer.Entity().Despawn(viewer)

	require.Len(t, sess.sent, 2)
	assert.Equal(t, serverpackets.OpcodeNpcSpawn, sess.sent[0].Opcode())
	assert.Equal(t, serverpackets.OpcodeActorDespawn, sess.sent[1].Opcode())

	r := packet.NewReader(sess.sent[0].Body())
	id, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x20000001), id)
	kind, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, uint8(KindRetainer), kind)
}
