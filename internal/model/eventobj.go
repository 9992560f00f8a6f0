package model

import (
	"sync"

	"github.com/udisondev/zonecore/internal/network/serverpackets"
)

// EventObject is an interactive placed object: doors, levers, housing fixtures.
type EventObject struct {
	*Actor

	baseID uint32

	stateMu sync.RWMutex
	state   uint8
}

// NewEventObject creates a plain event object.
func NewEventObject(baseID uint32, state uint8) *EventObject {
	return newEventObject(KindEventObj, baseID, state)
}

// NewHousingObject creates a housing event object.
func NewHousingObject(baseID uint32, state uint8) *EventObject {
	return newEventObject(KindHousing, baseID, state)
}

func newEventObject(kind Kind, baseID uint32, state uint8) *EventObject {
	o := &EventObject{
		Actor:  newActor(kind),
		baseID: baseID,
		state:  state,
	}
	o.entity = o
	return o
}

// Base implements Entity.
func (o *EventObject) Base() *Actor {
	return o.Actor
}

// BaseID returns the object template id.
func (o *EventObject) BaseID() uint32 {
	return o.baseID
}

// State returns the animation/interaction state.
func (o *EventObject) State() uint8 {
	o.stateMu.RLock()
	defer o.stateMu.RUnlock()
	return o.state
}

// SetState changes the state and re-sends the object to every player in range.
func (o *EventObject) SetState(state uint8) {
	o.stateMu.Lock()
	o.state = state
	o.stateMu.Unlock()

	o.SendToInRangeSet(o.spawnPacket().Packet(), false)
}

func (o *EventObject) spawnPacket() serverpackets.ObjectSpawn {
	return serverpackets.ObjectSpawn{
		ActorID:   o.ID(),
		BaseID:    o.baseID,
		State:     o.State(),
		Housing:   o.IsHousingEventObj(),
		Transform: transformOf(o.Actor),
	}
}

// Spawn sends the object to target.
func (o *EventObject) Spawn(target *Player) {
	target.QueuePacket(o.spawnPacket().Packet())
}

// Despawn removes the object from target's client.
func (o *EventObject) Despawn(target *Player) {
	target.QueuePacket(serverpackets.ActorDespawn{ActorID: o.ID()}.Packet())
}
