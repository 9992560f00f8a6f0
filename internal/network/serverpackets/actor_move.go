package serverpackets

import "github.com/udisondev/zonecore/internal/network/packet"

// ActorMove updates an actor's transform on clients that see it.
type ActorMove struct {
	ActorID   uint32
	Transform Transform
}

// Packet serialises ActorMove.
func (p ActorMove) Packet() *packet.Packet {
	w := packet.Get()
	defer w.Put()

	w.WriteUint32(p.ActorID)
	writeTransform(w, p.Transform)

	return w.Packet(OpcodeActorMove)
}
