package model

import "sync"

// BattleNpc is a hostile or neutral npc with aggro and a hate list.
type BattleNpc struct {
	*Chara

	aggroRange float32

	hateMu sync.Mutex
	hate   map[*Actor]uint32
}

// NewBattleNpc creates a battle npc.
func NewBattleNpc(p CharaParams, aggroRange float32) *BattleNpc {
	b := &BattleNpc{
		Chara:      newChara(KindBattleNpc, p),
		aggroRange: aggroRange,
		hate:       make(map[*Actor]uint32),
	}
	b.entity = b
	return b
}

// AggroRange returns the distance at which the npc engages.
func (b *BattleNpc) AggroRange() float32 {
	return b.aggroRange
}

// InAggroRange reports whether other is within aggro range.
func (b *BattleNpc) InAggroRange(other *Actor) bool {
	r := float64(b.aggroRange)
	return b.Position().DistanceSquared(other.Position()) <= r*r
}

// AddHate adds amount hate towards attacker.
func (b *BattleNpc) AddHate(attacker *Actor, amount uint32) {
	b.hateMu.Lock()
	defer b.hateMu.Unlock()
	b.hate[attacker] += amount
}

// TopHate returns the actor with the most hate (ties: lowest id).
func (b *BattleNpc) TopHate() (*Actor, bool) {
	b.hateMu.Lock()
	defer b.hateMu.Unlock()

	var (
		top    *Actor
		topID  uint32
		topVal uint32
	)
	for a, v := range b.hate {
		id := a.ID()
		if top == nil || v > topVal || (v == topVal && id < topID) {
			top, topID, topVal = a, id, v
		}
	}
	return top, top != nil
}

// OnRemoveInRangeActor drops the target lock and the hate entry of the departing actor.
func (b *BattleNpc) OnRemoveInRangeActor(other *Actor) {
	b.Chara.OnRemoveInRangeActor(other)

	b.hateMu.Lock()
	delete(b.hate, other)
	b.hateMu.Unlock()
}

// EventNpc is a quest or service npc bound to an event handler.
type EventNpc struct {
	*Chara

	eventID uint32
}

// NewEventNpc creates an event npc.
func NewEventNpc(p CharaParams, eventID uint32) *EventNpc {
	e := &EventNpc{
		Chara:   newChara(KindEventNpc, p),
		eventID: eventID,
	}
	e.entity = e
	return e
}

// EventID returns the event handler bound to this npc.
func (e *EventNpc) EventID() uint32 {
	return e.eventID
}
