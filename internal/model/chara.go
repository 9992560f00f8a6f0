package model

import (
	"fmt"
	"sync"

	"github.com/udisondev/zonecore/internal/network/serverpackets"
)

// CharaParams describes a living entity at construction.
type CharaParams struct {
	Name   string
	Level  uint8
	BaseID uint32 // npc base/template id, 0 for players
	NameID uint32
	MaxHP  uint32
	MaxMP  uint32
}

// Chara is a living entity: players, battle and event npcs, companions, retainers.
// It carries vitals and the current target lock.
type Chara struct {
	*Actor

	statMu sync.RWMutex
	name   string
	level  uint8
	baseID uint32
	nameID uint32
	hp     uint32
	maxHP  uint32
	mp     uint32
	maxMP  uint32
	target *Actor
}

func newChara(kind Kind, p CharaParams) *Chara {
	if !kind.IsChara() {
		panic(fmt.Sprintf("model: kind %s is not a chara kind", kind))
	}
	return &Chara{
		Actor:  newActor(kind),
		name:   p.Name,
		level:  p.Level,
		baseID: p.BaseID,
		nameID: p.NameID,
		hp:     p.MaxHP,
		maxHP:  p.MaxHP,
		mp:     p.MaxMP,
		maxMP:  p.MaxMP,
	}
}

// NewChara creates a plain living entity of the given kind (companions, retainers).
// Players and npcs with behaviour of their own have dedicated constructors.
func NewChara(kind Kind, p CharaParams) *Chara {
	if kind == KindPlayer {
		panic("model: NewChara with KindPlayer, use NewPlayer")
	}
	c := newChara(kind, p)
	c.entity = c
	return c
}

// Base implements Entity.
func (c *Chara) Base() *Actor {
	return c.Actor
}

func (c *Chara) chara() *Chara {
	return c
}

// Name returns the display name.
func (c *Chara) Name() string {
	c.statMu.RLock()
	defer c.statMu.RUnlock()
	return c.name
}

// Level returns the current level.
func (c *Chara) Level() uint8 {
	c.statMu.RLock()
	defer c.statMu.RUnlock()
	return c.level
}

// SetLevel sets the level.
func (c *Chara) SetLevel(level uint8) {
	c.statMu.Lock()
	defer c.statMu.Unlock()
	c.level = level
}

// HP returns current and max HP.
func (c *Chara) HP() (uint32, uint32) {
	c.statMu.RLock()
	defer c.statMu.RUnlock()
	return c.hp, c.maxHP
}

// MP returns current and max MP.
func (c *Chara) MP() (uint32, uint32) {
	c.statMu.RLock()
	defer c.statMu.RUnlock()
	return c.mp, c.maxMP
}

// SetHP sets current HP, clamped to max HP.
func (c *Chara) SetHP(hp uint32) {
	c.statMu.Lock()
	defer c.statMu.Unlock()
	c.hp = min(hp, c.maxHP)
}

// Heal restores amount HP (clamped) and returns the HP actually restored.
// Dead charas are not healed.
func (c *Chara) Heal(amount uint32) uint32 {
	c.statMu.Lock()
	defer c.statMu.Unlock()
	if c.hp == 0 {
		return 0
	}
	restored := min(amount, c.maxHP-c.hp)
	c.hp += restored
	return restored
}

// IsAlive reports whether HP is above zero.
func (c *Chara) IsAlive() bool {
	c.statMu.RLock()
	defer c.statMu.RUnlock()
	return c.hp > 0
}

// Target returns the locked target, or nil.
func (c *Chara) Target() *Actor {
	c.statMu.RLock()
	defer c.statMu.RUnlock()
	return c.target
}

// SetTarget locks onto target. Only actors in range can be targeted; returns false otherwise.
func (c *Chara) SetTarget(target *Actor) bool {
	if target != nil && target != c.Actor && !c.IsInRangeSet(target) {
		return false
	}
	c.statMu.Lock()
	defer c.statMu.Unlock()
	c.target = target
	return true
}

// OnRemoveInRangeActor drops the target lock when the target leaves range.
func (c *Chara) OnRemoveInRangeActor(other *Actor) {
	c.statMu.Lock()
	defer c.statMu.Unlock()
	if c.target == other {
		c.target = nil
	}
}

// Spawn sends the npc spawn payload to target.
func (c *Chara) Spawn(target *Player) {
	hp, maxHP := c.HP()
	target.QueuePacket(serverpackets.NpcSpawn{
		ActorID:   c.ID(),
		Kind:      uint8(c.Kind()),
		BaseID:    c.baseID,
		NameID:    c.nameID,
		Level:     c.Level(),
		HP:        hp,
		MaxHP:     maxHP,
		Transform: transformOf(c.Actor),
	}.Packet())
}

// Despawn removes this chara from target's client.
func (c *Chara) Despawn(target *Player) {
	target.QueuePacket(serverpackets.ActorDespawn{ActorID: c.ID()}.Packet())
}

func transformOf(a *Actor) serverpackets.Transform {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return serverpackets.Transform{X: a.pos.X, Y: a.pos.Y, Z: a.pos.Z, Rot: a.rot}
}
