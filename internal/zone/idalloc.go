package zone

import (
	"sync/atomic"

	"github.com/udisondev/zonecore/internal/model"
)

// Actor id ranges:
//
//	0x00000000 - 0x0FFFFFFF: reserved (0 = unassigned)
//	0x10000000 - 0x1FFFFFFF: players
//	0x20000000 - 0x2FFFFFFF: npcs, companions, retainers
//	0x30000000 - 0x3FFFFFFF: objects and everything else
const (
	PlayerIDBase uint32 = 0x10000000
	NpcIDBase    uint32 = 0x20000000
	ObjectIDBase uint32 = 0x30000000
)

// IDAllocator hands out runtime actor ids. Ids are monotonic and never reused,
// so a stale id can never resolve to a different actor.
type IDAllocator struct {
	nextPlayer atomic.Uint32
	nextNpc    atomic.Uint32
	nextObject atomic.Uint32
}

// NewIDAllocator creates an allocator positioned at the start of each range.
func NewIDAllocator() *IDAllocator {
	a := &IDAllocator{}
	a.nextPlayer.Store(PlayerIDBase)
	a.nextNpc.Store(NpcIDBase)
	a.nextObject.Store(ObjectIDBase)
	return a
}

// Next returns a fresh id from the range that matches kind.
func (a *IDAllocator) Next(kind model.Kind) uint32 {
	switch {
	case kind == model.KindPlayer:
		return a.nextPlayer.Add(1)
	case kind.IsChara():
		return a.nextNpc.Add(1)
	default:
		return a.nextObject.Add(1)
	}
}
