package model

import (
	"fmt"
	"sync"
)

// Entity is the capability set every concrete actor variant implements.
// Zones dispatch spawn/despawn through it instead of type-switching on variants.
type Entity interface {
	// Base returns the actor the variant wraps.
	Base() *Actor

	// Spawn tells target's client to create this actor's representation.
	Spawn(target *Player)

	// Despawn tells target's client to destroy this actor's representation.
	Despawn(target *Player)
}

// InRangeListener is implemented by variants that react to a peer leaving their in-range set
// (e.g. dropping a target lock on the departing actor).
type InRangeListener interface {
	OnRemoveInRangeActor(other *Actor)
}

// Actor is the base of every live entity in a zone.
//
// Identity and kind are fixed once set. Transform is written by movement logic,
// zone and cell links by the owning zone only. The in-range sets live in inrange.go.
type Actor struct {
	kind   Kind
	entity Entity

	mu     sync.RWMutex
	id     uint32
	pos    Position
	rot    float32
	zoneID uint32
	zone   Zone
	cell   CellRef

	rangeMu        sync.RWMutex
	inRangeActors  map[*Actor]struct{}
	inRangePlayers map[*Actor]*Player
	observers      map[*Actor]struct{} // actors whose in-range set holds this one
}

func newActor(kind Kind) *Actor {
	if !kind.Valid() {
		panic(fmt.Sprintf("model: invalid actor kind 0x%02X", uint8(kind)))
	}
	return &Actor{
		kind:           kind,
		inRangeActors:  make(map[*Actor]struct{}, 16),
		inRangePlayers: make(map[*Actor]*Player, 8),
		observers:      make(map[*Actor]struct{}, 16),
	}
}

// NewActor creates an actor with no variant behavior: spawn and despawn are no-ops.
// Used for kinds without a client payload of their own (areas, cutscene markers, ...).
// Kinds backed by a variant (charas, event objects) must use their own constructor.
func NewActor(kind Kind) *Actor {
	if kind.IsChara() || kind == KindEventObj || kind == KindHousing {
		panic(fmt.Sprintf("model: NewActor(%s), use the variant constructor", kind))
	}
	a := newActor(kind)
	a.entity = plainEntity{a}
	return a
}

type plainEntity struct{ a *Actor }

func (e plainEntity) Base() *Actor  { return e.a }
func (plainEntity) Spawn(*Player)   {}
func (plainEntity) Despawn(*Player) {}

// Entity returns the concrete variant wrapping this actor.
func (a *Actor) Entity() Entity {
	return a.entity
}

// ID returns the actor id (0 until the zone assigns one).
func (a *Actor) ID() uint32 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.id
}

// SetID assigns the actor id. Valid exactly once and only before the actor is attached
// to a zone; anything else is a programming error and panics.
func (a *Actor) SetID(id uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case id == 0:
		panic("model: SetID with zero id")
	case a.id != 0:
		panic(fmt.Sprintf("model: SetID(%d) on actor that already has id %d", id, a.id))
	case a.zone != nil:
		panic(fmt.Sprintf("model: SetID(%d) on actor attached to zone %d", id, a.zoneID))
	}
	a.id = id
}

// Kind returns the immutable kind.
func (a *Actor) Kind() Kind {
	return a.kind
}

// Position returns a copy of the current position.
func (a *Actor) Position() Position {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pos
}

// SetPosition sets the position. Bounds and terrain are the caller's business;
// only non-finite components are rejected.
func (a *Actor) SetPosition(pos Position) error {
	if !pos.IsFinite() {
		return fmt.Errorf("position %+v: %w", pos, ErrNonFinite)
	}
	a.mu.Lock()
	a.pos = pos
	a.mu.Unlock()
	return nil
}

// SetPositionXYZ is SetPosition for separate components.
func (a *Actor) SetPositionXYZ(x, y, z float32) error {
	return a.SetPosition(Position{X: x, Y: y, Z: z})
}

// Rotation returns the facing angle in radians.
func (a *Actor) Rotation() float32 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rot
}

// SetRotation sets the facing angle.
func (a *Actor) SetRotation(rot float32) error {
	if !isFinite(rot) {
		return fmt.Errorf("rotation %v: %w", rot, ErrNonFinite)
	}
	a.mu.Lock()
	a.rot = rot
	a.mu.Unlock()
	return nil
}

// Capability predicates, pure functions of the kind.

func (a *Actor) IsChara() bool           { return a.kind.IsChara() }
func (a *Actor) IsPlayer() bool          { return a.kind == KindPlayer }
func (a *Actor) IsEventNpc() bool        { return a.kind == KindEventNpc }
func (a *Actor) IsBattleNpc() bool       { return a.kind == KindBattleNpc }
func (a *Actor) IsRetainer() bool        { return a.kind == KindRetainer }
func (a *Actor) IsCompanion() bool       { return a.kind == KindCompanion }
func (a *Actor) IsEventObj() bool        { return a.kind == KindEventObj }
func (a *Actor) IsHousingEventObj() bool { return a.kind == KindHousing }
func (a *Actor) IsAetheryte() bool       { return a.kind == KindAetheryte }

// AsChara narrows to the living-entity variant.
func (a *Actor) AsChara() (*Chara, bool) {
	switch a.kind {
	case KindPlayer, KindBattleNpc, KindEventNpc, KindRetainer, KindCompanion:
		h, ok := a.entity.(interface{ chara() *Chara })
		if !ok {
			return nil, false
		}
		return h.chara(), true
	case KindNone, KindTreasure, KindAetheryte, KindGatheringPoint, KindEventObj,
		KindMount, KindArea, KindHousing, KindCutscene, KindCardStand:
		return nil, false
	}
	return nil, false
}

// AsPlayer narrows to the player variant.
func (a *Actor) AsPlayer() (*Player, bool) {
	if a.kind != KindPlayer {
		return nil, false
	}
	p, ok := a.entity.(*Player)
	return p, ok
}

// AsEventObj narrows to the event object variant (plain and housing event objects).
func (a *Actor) AsEventObj() (*EventObject, bool) {
	switch a.kind {
	case KindEventObj, KindHousing:
		o, ok := a.entity.(*EventObject)
		return o, ok
	default:
		return nil, false
	}
}

// CurrentZone returns the zone the actor is attached to, or nil.
func (a *Actor) CurrentZone() Zone {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.zone
}

// ZoneID returns the id of the current zone (0 when detached).
func (a *Actor) ZoneID() uint32 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.zoneID
}

// SetCurrentZone attaches the actor to z, or detaches it when z is nil.
// Called by zone placement and transfer logic only. Detaching also drops the cell handle.
func (a *Actor) SetCurrentZone(z Zone) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.zone = z
	if z == nil {
		a.zoneID = 0
		a.cell = CellRef{}
		return
	}
	a.zoneID = z.ID()
	if a.cell.Valid() && a.cell.ZoneID() != a.zoneID {
		a.cell = CellRef{}
	}
}

// CurrentInstance returns the current zone when it hosts instance content.
func (a *Actor) CurrentInstance() (InstanceContent, bool) {
	ic, ok := a.CurrentZone().(InstanceContent)
	return ic, ok
}

// Cell returns the grid cell handle (zero value when not placed).
func (a *Actor) Cell() CellRef {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cell
}

// SetCell sets the grid cell handle. Only the zone's spatial grid calls this.
// A handle from a zone other than the current one panics.
func (a *Actor) SetCell(c CellRef) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c.Valid() {
		if a.zone == nil {
			panic(fmt.Sprintf("model: SetCell on actor %d without a zone", a.id))
		}
		if c.ZoneID() != a.zoneID {
			panic(fmt.Sprintf("model: SetCell on actor %d: cell of zone %d, actor in zone %d",
				a.id, c.ZoneID(), a.zoneID))
		}
	}
	a.cell = c
}

// String implements fmt.Stringer for logs.
func (a *Actor) String() string {
	return fmt.Sprintf("%s#%d", a.kind, a.ID())
}
