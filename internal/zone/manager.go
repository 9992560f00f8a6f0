package zone

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/zonecore/internal/model"
)

// Manager is the registry of every zone and instance on the server.
type Manager struct {
	opts Options

	mu    sync.RWMutex
	zones map[uint32]*Zone
}

// NewManager creates an empty registry. Zones created through it share one id allocator.
func NewManager(opts Options) *Manager {
	return &Manager{
		opts:  opts.withDefaults(),
		zones: make(map[uint32]*Zone),
	}
}

// CreateZone registers a new open-world zone.
func (m *Manager) CreateZone(id uint32, name string) (*Zone, error) {
	z := New(id, name, m.opts)
	if err := m.register(z); err != nil {
		return nil, err
	}
	return z, nil
}

// CreateInstance registers a new instance zone hosting contentID.
func (m *Manager) CreateInstance(id uint32, name string, contentID uint32) (*Instance, error) {
	inst := NewInstance(id, name, contentID, m.opts)
	if err := m.register(inst.Zone); err != nil {
		return nil, err
	}
	return inst, nil
}

func (m *Manager) register(z *Zone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.zones[z.id]; ok {
		return fmt.Errorf("register zone %d: %w", z.id, ErrZoneExists)
	}
	m.zones[z.id] = z
	slog.Info("zone registered", "zone", z.id, "name", z.name)
	return nil
}

// Zone returns the zone with id id.
func (m *Manager) Zone(id uint32) (*Zone, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z, ok := m.zones[id]
	if !ok {
		return nil, fmt.Errorf("zone %d: %w", id, ErrZoneNotFound)
	}
	return z, nil
}

// Zones returns every registered zone ordered by id.
func (m *Manager) Zones() []*Zone {
	m.mu.RLock()
	out := make([]*Zone, 0, len(m.zones))
	for _, z := range m.zones {
		out = append(out, z)
	}
	m.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Zone) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Transfer moves a from its current zone into zone to at pos. Both zones are
// locked for the whole move (lower id first), so no tick observes the actor in
// both or neither. If the destination refuses the actor it is put back where it was.
func (m *Manager) Transfer(a *model.Actor, to uint32, pos model.Position, rot float32) error {
	if !validTransform(pos, rot) {
		return fmt.Errorf("transfer %s: %w", a, ErrInvalidPosition)
	}
	if a.CurrentZone() == nil {
		return fmt.Errorf("transfer %s: %w", a, ErrActorNotInZone)
	}
	src, err := m.Zone(a.ZoneID())
	if err != nil {
		return fmt.Errorf("transfer %s: %w", a, err)
	}
	dst, err := m.Zone(to)
	if err != nil {
		return fmt.Errorf("transfer %s: %w", a, err)
	}
	if src == dst {
		return fmt.Errorf("transfer %s to zone %d: %w", a, to, ErrSameZone)
	}

	first, second := src, dst
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	e, ok := src.actors[a.ID()]
	if !ok || e.Base() != a {
		return fmt.Errorf("transfer %s: %w", a, ErrActorNotInZone)
	}
	oldPos, oldRot := a.Position(), a.Rotation()

	if err := src.leaveLocked(a); err != nil {
		return fmt.Errorf("transfer %s: %w", a, err)
	}
	if err := dst.enterLocked(e, pos, rot); err != nil {
		if rerr := src.enterLocked(e, oldPos, oldRot); rerr != nil {
			slog.Error("actor lost during transfer", "actor", a.ID(), "from", src.id, "to", dst.id, "error", rerr)
		}
		return fmt.Errorf("transfer %s to zone %d: %w", a, to, err)
	}

	src.sink.Record(Event{Time: time.Now(), Type: EventTransfer, ZoneID: src.id, ActorID: a.ID(), Kind: a.Kind().String(), ToZoneID: dst.id})
	slog.Info("actor transferred", "actor", a.ID(), "kind", a.Kind(), "from", src.id, "to", dst.id)
	return nil
}

// Run ticks every registered zone until ctx is cancelled or one loop fails.
func (m *Manager) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, z := range m.Zones() {
		g.Go(func() error {
			return z.Run(ctx)
		})
	}
	return g.Wait()
}
