package serverpackets

import "github.com/udisondev/zonecore/internal/network/packet"

// Welcome is the first frame a session receives after entering a zone.
type Welcome struct {
	ActorID   uint32
	ZoneID    uint32
	ZoneName  string
	Transform Transform
}

// Packet serialises Welcome.
func (p Welcome) Packet() *packet.Packet {
	w := packet.Get()
	defer w.Put()

	w.WriteUint32(p.ActorID)
	w.WriteUint32(p.ZoneID)
	w.WriteString(p.ZoneName)
	writeTransform(w, p.Transform)

	return w.Packet(OpcodeWelcome)
}
