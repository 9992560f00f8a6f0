package serverpackets

import "github.com/udisondev/zonecore/internal/network/packet"

// CustomizeSize is the length of the character customize block.
const CustomizeSize = 26

// PlayerSpawn carries the full appearance of a player character.
// Sent to every player that starts seeing it.
type PlayerSpawn struct {
	ActorID   uint32
	Name      string
	Level     uint8
	ClassJob  uint8
	Race      uint8
	Tribe     uint8
	Gender    uint8
	Customize []byte // padded or truncated to CustomizeSize
	HP, MaxHP uint32
	MP, MaxMP uint32
	Transform Transform
}

// Packet serialises PlayerSpawn.
func (p PlayerSpawn) Packet() *packet.Packet {
	w := packet.Get()
	defer w.Put()

	w.WriteUint32(p.ActorID)
	_ = w.WriteByte(p.Level)
	_ = w.WriteByte(p.ClassJob)
	_ = w.WriteByte(p.Race)
	_ = w.WriteByte(p.Tribe)
	_ = w.WriteByte(p.Gender)

	var customize [CustomizeSize]byte
	copy(customize[:], p.Customize)
	w.WriteBytes(customize[:])

	w.WriteUint32(p.HP)
	w.WriteUint32(p.MaxHP)
	w.WriteUint32(p.MP)
	w.WriteUint32(p.MaxMP)
	writeTransform(w, p.Transform)
	w.WriteString(p.Name)

	return w.Packet(OpcodePlayerSpawn)
}
