package serverpackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonecore/internal/network/packet"
)

func TestActorMove(t *testing.T) {
	pkt := ActorMove{ActorID: 0x10000001, Transform: Transform{X: 1, Y: 2, Z: 3, Rot: 0.5}}.Packet()

	assert.Equal(t, OpcodeActorMove, pkt.Opcode())

	r := packet.NewReader(pkt.Body())
	id, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x10000001), id)

	tr, err := ReadTransform(r)
	require.NoError(t, err)
	assert.Equal(t, Transform{X: 1, Y: 2, Z: 3, Rot: 0.5}, tr)
	assert.Zero(t, r.Remaining())
}

func TestActorDespawn(t *testing.T) {
	pkt := ActorDespawn{ActorID: 42}.Packet()

	assert.Equal(t, OpcodeActorDespawn, pkt.Opcode())
	assert.Equal(t, []byte{42, 0, 0, 0}, pkt.Body())
}

func TestPlayerSpawn_CustomizePadded(t *testing.T) {
	pkt := PlayerSpawn{
		ActorID:   7,
		Name:      "Alisaie Leveilleur",
		Level:     90,
		Customize: []byte{1, 2, 3},
	}.Packet()

	r := packet.NewReader(pkt.Body())
	_, err := r.ReadUint32()
	require.NoError(t, err)
	_, err = r.ReadBytes(5) // level, class, race, tribe, gender
	require.NoError(t, err)

	customize, err := r.ReadBytes(CustomizeSize)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, customize[:3])
	assert.Equal(t, make([]byte, CustomizeSize-3), customize[3:])

	_, err = r.ReadBytes(16) // hp/mp block
	require.NoError(t, err)
	_, err = ReadTransform(r)
	require.NoError(t, err)

	name, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Alisaie Leveilleur", name)
}

func TestObjectSpawn_HousingFlag(t *testing.T) {
	pkt := ObjectSpawn{ActorID: 1, BaseID: 2, State: 3, Housing: true}.Packet()

	body := pkt.Body()
	assert.Equal(t, byte(3), body[8])
	assert.Equal(t, byte(1), body[9])
}
