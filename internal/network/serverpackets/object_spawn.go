package serverpackets

import "github.com/udisondev/zonecore/internal/network/packet"

// ObjectSpawn creates an event object (doors, levers, housing fixtures).
type ObjectSpawn struct {
	ActorID   uint32
	BaseID    uint32
	State     uint8
	Housing   bool
	Transform Transform
}

// Packet serialises ObjectSpawn.
func (p ObjectSpawn) Packet() *packet.Packet {
	w := packet.Get()
	defer w.Put()

	w.WriteUint32(p.ActorID)
	w.WriteUint32(p.BaseID)
	_ = w.WriteByte(p.State)
	var housing byte
	if p.Housing {
		housing = 1
	}
	_ = w.WriteByte(housing)
	writeTransform(w, p.Transform)

	return w.Packet(OpcodeObjectSpawn)
}
