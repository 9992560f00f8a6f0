package serverpackets

import "github.com/udisondev/zonecore/internal/network/packet"

// NpcSpawn creates a non-player living entity (battle/event npc, companion, retainer).
type NpcSpawn struct {
	ActorID   uint32
	Kind      uint8
	BaseID    uint32
	NameID    uint32
	Level     uint8
	HP, MaxHP uint32
	Transform Transform
}

// Packet serialises NpcSpawn.
func (p NpcSpawn) Packet() *packet.Packet {
	w := packet.Get()
	defer w.Put()

	w.WriteUint32(p.ActorID)
	_ = w.WriteByte(p.Kind)
	w.WriteUint32(p.BaseID)
	w.WriteUint32(p.NameID)
	_ = w.WriteByte(p.Level)
	w.WriteUint32(p.HP)
	w.WriteUint32(p.MaxHP)
	writeTransform(w, p.Transform)

	return w.Packet(OpcodeNpcSpawn)
}
