package model

import "github.com/udisondev/zonecore/internal/network/packet"

// In-range tracking.
//
// Each actor keeps the set of actors it currently treats as nearby, plus a player-only
// index of the same set for broadcasts. The relation is not symmetric by itself: the zone
// grid adds and removes both directions. Every actor also tracks its observers (the actors
// whose set holds it), so RemoveFromInRange purges one-way entries as well and no peer is
// left with a stale back-reference when an actor leaves.
//
// Lock order: an actor holds at most one rangeMu at a time. Peer calls are made after the
// own lock is released.

// IsInRangeSet reports whether other is in this actor's in-range set.
func (a *Actor) IsInRangeSet(other *Actor) bool {
	if other == nil {
		return false
	}
	a.rangeMu.RLock()
	defer a.rangeMu.RUnlock()
	_, ok := a.inRangeActors[other]
	return ok
}

// AddInRangeActor adds other to the in-range set (and to the player index when other is a
// player). Adding nil, self or an already present actor does nothing.
func (a *Actor) AddInRangeActor(other *Actor) {
	if other == nil || other == a {
		return
	}
	a.rangeMu.Lock()
	if _, ok := a.inRangeActors[other]; ok {
		a.rangeMu.Unlock()
		return
	}
	a.inRangeActors[other] = struct{}{}
	if p, ok := other.AsPlayer(); ok {
		a.inRangePlayers[other] = p
	}
	a.rangeMu.Unlock()

	other.setObserver(a, true)
}

// RemoveInRangeActor removes other from both sets and notifies the variant through
// OnRemoveInRangeActor. Removing an absent actor does nothing.
func (a *Actor) RemoveInRangeActor(other *Actor) {
	if other == nil {
		return
	}
	a.rangeMu.Lock()
	_, ok := a.inRangeActors[other]
	if ok {
		delete(a.inRangeActors, other)
		delete(a.inRangePlayers, other)
	}
	a.rangeMu.Unlock()

	if !ok {
		return
	}
	other.setObserver(a, false)
	if l, isListener := a.entity.(InRangeListener); isListener {
		l.OnRemoveInRangeActor(other)
	}
}

// HasInRangeActor reports whether at least one actor is in range.
func (a *Actor) HasInRangeActor() bool {
	a.rangeMu.RLock()
	defer a.rangeMu.RUnlock()
	return len(a.inRangeActors) > 0
}

// InRangeActors returns a snapshot of the in-range set, with this actor appended when
// includeSelf is true. Order is unspecified. The snapshot is valid for the current tick only.
func (a *Actor) InRangeActors(includeSelf bool) []*Actor {
	a.rangeMu.RLock()
	out := make([]*Actor, 0, len(a.inRangeActors)+1)
	for other := range a.inRangeActors {
		out = append(out, other)
	}
	a.rangeMu.RUnlock()

	if includeSelf {
		out = append(out, a)
	}
	return out
}

// InRangePlayers returns a snapshot of the player index.
func (a *Actor) InRangePlayers() []*Player {
	a.rangeMu.RLock()
	defer a.rangeMu.RUnlock()
	out := make([]*Player, 0, len(a.inRangePlayers))
	for _, p := range a.inRangePlayers {
		out = append(out, p)
	}
	return out
}

// ClosestActor returns the in-range actor nearest to this one (squared distance,
// ties broken by lowest id). Returns false when nothing is in range.
func (a *Actor) ClosestActor() (*Actor, bool) {
	origin := a.Position()

	var (
		best     *Actor
		bestID   uint32
		bestDist float64
	)
	for _, other := range a.InRangeActors(false) {
		d := origin.DistanceSquared(other.Position())
		id := other.ID()
		if best == nil || d < bestDist || (d == bestDist && id < bestID) {
			best, bestID, bestDist = other, id, d
		}
	}
	return best, best != nil
}

// SendToInRangeSet queues pkt for every player in range, and for this actor too when
// toSelf is set and it is a player. Delivery is fire-and-forget: transport failures are
// handled by each player's session.
func (a *Actor) SendToInRangeSet(pkt *packet.Packet, toSelf bool) {
	if pkt == nil {
		return
	}
	if toSelf {
		if self, ok := a.AsPlayer(); ok {
			self.QueuePacket(pkt)
		}
	}
	for _, p := range a.InRangePlayers() {
		p.QueuePacket(pkt)
	}
}

// RemoveFromInRange removes this actor from every peer in its in-range set and from every
// peer that lists it, then clears its own sets. Used on despawn and zone transfer.
func (a *Actor) RemoveFromInRange() {
	a.rangeMu.RLock()
	peers := make([]*Actor, 0, len(a.inRangeActors)+len(a.observers))
	for other := range a.inRangeActors {
		peers = append(peers, other)
	}
	for other := range a.observers {
		if _, dup := a.inRangeActors[other]; !dup {
			peers = append(peers, other)
		}
	}
	a.rangeMu.RUnlock()

	for _, other := range peers {
		other.RemoveInRangeActor(a)
	}
	a.ClearInRangeSet()

	a.rangeMu.Lock()
	clear(a.observers)
	a.rangeMu.Unlock()
}

// ClearInRangeSet empties both sets without telling peers. Peers that still list this
// actor keep their entries; use RemoveFromInRange when they must be purged.
func (a *Actor) ClearInRangeSet() {
	a.rangeMu.Lock()
	dropped := make([]*Actor, 0, len(a.inRangeActors))
	for other := range a.inRangeActors {
		dropped = append(dropped, other)
	}
	clear(a.inRangeActors)
	clear(a.inRangePlayers)
	a.rangeMu.Unlock()

	for _, other := range dropped {
		other.setObserver(a, false)
	}
}

// ObserverCount returns how many actors hold this one in their in-range set.
func (a *Actor) ObserverCount() int {
	a.rangeMu.RLock()
	defer a.rangeMu.RUnlock()
	return len(a.observers)
}

// setObserver records (or forgets) that observer's in-range set holds a.
func (a *Actor) setObserver(observer *Actor, present bool) {
	a.rangeMu.Lock()
	defer a.rangeMu.Unlock()
	if present {
		a.observers[observer] = struct{}{}
		return
	}
	delete(a.observers, observer)
}
