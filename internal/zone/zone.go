package zone

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/udisondev/zonecore/internal/model"
	"github.com/udisondev/zonecore/internal/network/serverpackets"
)

const (
	DefaultTickInterval = 100 * time.Millisecond
	DefaultCellSize     = 64
	DefaultViewDistance = 50
)

// Options configures a zone.
type Options struct {
	TickInterval time.Duration
	CellSize     float32
	ViewDistance float32

	// IDs is shared by every zone of a server so ids stay unique across transfers.
	IDs  *IDAllocator
	Sink EventSink
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.ViewDistance <= 0 {
		o.ViewDistance = DefaultViewDistance
	}
	if o.IDs == nil {
		o.IDs = NewIDAllocator()
	}
	if o.Sink == nil {
		o.Sink = nopSink{}
	}
	return o
}

// Zone owns the actors of one map. All in-range set updates and the broadcasts
// that depend on them happen under the zone lock, one tick at a time.
type Zone struct {
	id   uint32
	name string

	// self is what actors see as their current zone (the zone itself or the Instance wrapping it).
	self model.Zone

	mu     sync.Mutex
	actors map[uint32]model.Entity
	dirty  map[*model.Actor]struct{}
	grid   *Grid

	ids          *IDAllocator
	sink         EventSink
	tickInterval time.Duration
}

// New creates an empty zone.
func New(id uint32, name string, opts Options) *Zone {
	opts = opts.withDefaults()
	z := &Zone{
		id:           id,
		name:         name,
		actors:       make(map[uint32]model.Entity, 128),
		dirty:        make(map[*model.Actor]struct{}, 32),
		grid:         NewGrid(id, opts.CellSize, opts.ViewDistance),
		ids:          opts.IDs,
		sink:         opts.Sink,
		tickInterval: opts.TickInterval,
	}
	z.self = z
	return z
}

// ID returns the zone id.
func (z *Zone) ID() uint32 {
	return z.id
}

// Name returns the zone name.
func (z *Zone) Name() string {
	return z.name
}

// Enter attaches e to the zone at pos. The actor gets an id if it has none, is
// placed in the grid and linked both ways with every actor in view; players on
// either side receive the matching spawns.
func (z *Zone) Enter(e model.Entity, pos model.Position, rot float32) error {
	if !validTransform(pos, rot) {
		return fmt.Errorf("enter zone %d at %+v: %w", z.id, pos, ErrInvalidPosition)
	}
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.enterLocked(e, pos, rot)
}

func (z *Zone) enterLocked(e model.Entity, pos model.Position, rot float32) error {
	a := e.Base()
	if a.CurrentZone() != nil {
		return fmt.Errorf("enter zone %d: %s: %w", z.id, a, ErrAlreadyInZone)
	}
	if a.ID() == 0 {
		a.SetID(z.ids.Next(a.Kind()))
	}
	if _, dup := z.actors[a.ID()]; dup {
		return fmt.Errorf("enter zone %d: id %d taken: %w", z.id, a.ID(), ErrAlreadyInZone)
	}
	if err := a.SetPosition(pos); err != nil {
		return fmt.Errorf("enter zone %d: %w", z.id, err)
	}
	if err := a.SetRotation(rot); err != nil {
		return fmt.Errorf("enter zone %d: %w", z.id, err)
	}

	// Welcome уходит до spawn-пакетов соседей
	a.SetCurrentZone(z.self)
	z.grid.Place(a)
	z.actors[a.ID()] = e

	if p, ok := a.AsPlayer(); ok {
		p.QueuePacket(serverpackets.Welcome{
			ActorID:   a.ID(),
			ZoneID:    z.id,
			ZoneName:  z.name,
			Transform: serverpackets.Transform{X: pos.X, Y: pos.Y, Z: pos.Z, Rot: rot},
		}.Packet())
	}
	for _, other := range z.grid.Neighbours(a) {
		link(a, other)
	}

	z.sink.Record(Event{Time: time.Now(), Type: EventEnter, ZoneID: z.id, ActorID: a.ID(), Kind: a.Kind().String()})
	slog.Debug("actor entered zone", "zone", z.id, "actor", a.ID(), "kind", a.Kind(), "in_range", len(a.InRangeActors(false)))
	return nil
}

// Leave detaches a from the zone: peers despawn it, every in-range link to and
// from it is removed, and its cell and zone link are cleared.
func (z *Zone) Leave(a *model.Actor) error {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.leaveLocked(a)
}

func (z *Zone) leaveLocked(a *model.Actor) error {
	e, ok := z.actors[a.ID()]
	if !ok || e.Base() != a {
		return fmt.Errorf("leave zone %d: %s: %w", z.id, a, ErrActorNotInZone)
	}

	// Despawn в обе стороны, пока in-range связи ещё на месте
	self, isPlayer := a.AsPlayer()
	for _, other := range a.InRangeActors(false) {
		if p, ok := other.AsPlayer(); ok {
			e.Despawn(p)
		}
		if isPlayer {
			other.Entity().Despawn(self)
		}
	}
	a.RemoveFromInRange()

	z.grid.Remove(a)
	delete(z.actors, a.ID())
	delete(z.dirty, a)
	a.SetCurrentZone(nil)

	z.sink.Record(Event{Time: time.Now(), Type: EventLeave, ZoneID: z.id, ActorID: a.ID(), Kind: a.Kind().String()})
	slog.Debug("actor left zone", "zone", z.id, "actor", a.ID(), "kind", a.Kind())
	return nil
}

// Move updates the transform of a and schedules it for the next tick.
func (z *Zone) Move(a *model.Actor, pos model.Position, rot float32) error {
	if !validTransform(pos, rot) {
		return fmt.Errorf("move %s: %w", a, ErrInvalidPosition)
	}
	z.mu.Lock()
	defer z.mu.Unlock()

	if e, ok := z.actors[a.ID()]; !ok || e.Base() != a {
		return fmt.Errorf("move in zone %d: %s: %w", z.id, a, ErrActorNotInZone)
	}
	if err := a.SetPosition(pos); err != nil {
		return fmt.Errorf("move %s: %w", a, err)
	}
	if err := a.SetRotation(rot); err != nil {
		return fmt.Errorf("move %s: %w", a, err)
	}
	z.dirty[a] = struct{}{}
	return nil
}

// Tick processes every actor moved since the previous tick. All in-range sets
// are brought up to date first, then each mover's position is broadcast to the
// players that now see it.
func (z *Zone) Tick() {
	z.mu.Lock()
	defer z.mu.Unlock()

	if len(z.dirty) == 0 {
		return
	}

	movers := make([]*model.Actor, 0, len(z.dirty))
	for a := range z.dirty {
		movers = append(movers, a)
	}
	clear(z.dirty)
	slices.SortFunc(movers, func(a, b *model.Actor) int { return cmp.Compare(a.ID(), b.ID()) })

	for _, a := range movers {
		z.refresh(a)
	}
	for _, a := range movers {
		pos := a.Position()
		a.SendToInRangeSet(serverpackets.ActorMove{
			ActorID:   a.ID(),
			Transform: serverpackets.Transform{X: pos.X, Y: pos.Y, Z: pos.Z, Rot: a.Rotation()},
		}.Packet(), false)
	}

	slog.Debug("zone tick", "zone", z.id, "moved", len(movers))
}

// refresh re-files a in the grid and reconciles its in-range set with what it can see now.
func (z *Zone) refresh(a *model.Actor) {
	z.grid.Relocate(a)

	stale := make(map[*model.Actor]struct{})
	for _, other := range a.InRangeActors(false) {
		stale[other] = struct{}{}
	}
	for _, other := range z.grid.Neighbours(a) {
		if _, ok := stale[other]; ok {
			delete(stale, other)
			continue
		}
		link(a, other)
	}
	for other := range stale {
		unlink(a, other)
	}
}

// Run ticks the zone until ctx is cancelled.
func (z *Zone) Run(ctx context.Context) error {
	ticker := time.NewTicker(z.tickInterval)
	defer ticker.Stop()

	slog.Info("zone started", "zone", z.id, "name", z.name, "interval", z.tickInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("zone stopping", "zone", z.id)
			return ctx.Err()
		case <-ticker.C:
			z.Tick()
		}
	}
}

// Actor returns the entity with runtime id id.
func (z *Zone) Actor(id uint32) (model.Entity, bool) {
	z.mu.Lock()
	defer z.mu.Unlock()
	e, ok := z.actors[id]
	return e, ok
}

// Count returns the number of actors in the zone.
func (z *Zone) Count() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return len(z.actors)
}

// link makes a and b mutually in range and spawns each to the other if it is a player.
func link(a, b *model.Actor) {
	if a == b {
		panic(fmt.Sprintf("zone: linking %s with itself", a))
	}
	a.AddInRangeActor(b)
	b.AddInRangeActor(a)
	if p, ok := b.AsPlayer(); ok {
		a.Entity().Spawn(p)
	}
	if p, ok := a.AsPlayer(); ok {
		b.Entity().Spawn(p)
	}
}

// unlink is the inverse of link.
func unlink(a, b *model.Actor) {
	a.RemoveInRangeActor(b)
	b.RemoveInRangeActor(a)
	if p, ok := b.AsPlayer(); ok {
		a.Entity().Despawn(p)
	}
	if p, ok := a.AsPlayer(); ok {
		b.Entity().Despawn(p)
	}
}

func validTransform(pos model.Position, rot float32) bool {
	r := float64(rot)
	return pos.IsFinite() && !math.IsNaN(r) && !math.IsInf(r, 0)
}
