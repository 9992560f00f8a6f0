package serverpackets

import "github.com/udisondev/zonecore/internal/network/packet"

// ActorDespawn removes an actor from the client's view.
// Sent when the actor leaves the receiver's range or the zone.
type ActorDespawn struct {
	ActorID uint32
}

// Packet serialises ActorDespawn.
func (p ActorDespawn) Packet() *packet.Packet {
	w := packet.Get()
	defer w.Put()

	w.WriteUint32(p.ActorID)

	return w.Packet(OpcodeActorDespawn)
}
