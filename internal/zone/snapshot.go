package zone

import (
	"cmp"
	"slices"

	"github.com/udisondev/zonecore/internal/model"
)

// Snapshot is a JSON debug view of a zone.
type Snapshot struct {
	ZoneID            uint32          `json:"zone_id"`
	Name              string          `json:"name"`
	InstanceContentID uint32          `json:"instance_content_id,omitempty"`
	ActorCount        int             `json:"actor_count"`
	Actors            []ActorSnapshot `json:"actors"`
}

// ActorSnapshot describes one actor and what it currently sees.
type ActorSnapshot struct {
	ID      uint32   `json:"id"`
	Kind    string   `json:"kind"`
	X       float32  `json:"x"`
	Y       float32  `json:"y"`
	Z       float32  `json:"z"`
	Rot     float32  `json:"rot"`
	Cell    int      `json:"cell"`
	InRange []uint32 `json:"in_range"`
}

// Snapshot captures the zone's actors ordered by id.
func (z *Zone) Snapshot() Snapshot {
	z.mu.Lock()
	defer z.mu.Unlock()

	snap := Snapshot{
		ZoneID:     z.id,
		Name:       z.name,
		ActorCount: len(z.actors),
		Actors:     make([]ActorSnapshot, 0, len(z.actors)),
	}
	if ic, ok := z.self.(model.InstanceContent); ok {
		snap.InstanceContentID = ic.InstanceContentID()
	}

	for _, e := range z.actors {
		a := e.Base()
		pos := a.Position()

		peers := a.InRangeActors(false)
		inRange := make([]uint32, 0, len(peers))
		for _, p := range peers {
			inRange = append(inRange, p.ID())
		}
		slices.Sort(inRange)

		snap.Actors = append(snap.Actors, ActorSnapshot{
			ID:      a.ID(),
			Kind:    a.Kind().String(),
			X:       pos.X,
			Y:       pos.Y,
			Z:       pos.Z,
			Rot:     a.Rotation(),
			Cell:    a.Cell().Index(),
			InRange: inRange,
		})
	}
	slices.SortFunc(snap.Actors, func(a, b ActorSnapshot) int { return cmp.Compare(a.ID, b.ID) })
	return snap
}
