// Package serverpackets builds server-to-client frames.
package serverpackets

// Server-to-client opcodes.
const (
	OpcodeWelcome      uint16 = 0x0010
	OpcodePlayerSpawn  uint16 = 0x0011
	OpcodeNpcSpawn     uint16 = 0x0012
	OpcodeObjectSpawn  uint16 = 0x0013
	OpcodeActorDespawn uint16 = 0x0014
	OpcodeActorMove    uint16 = 0x0015
)

// Transform is an actor's position and facing as sent to clients.
type Transform struct {
	X, Y, Z float32
	Rot     float32
}
